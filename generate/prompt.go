package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/schemascan"
)

// MaxExcerptRunes bounds the page content embedded in a prompt.
const MaxExcerptRunes = 2000

// minExcerptRunes is the smallest excerpt the token budget may shrink to.
const minExcerptRunes = 100

// BuildPrompt renders the generation prompt for pc with the content
// excerpt cut to at most excerptRunes runes.
func BuildPrompt(pc *schemascan.PageContent, excerptRunes int) string {
	var b strings.Builder

	b.WriteString("Analyze the following web page and create appropriate schema.org structured data in JSON-LD format.\n\n")
	fmt.Fprintf(&b, "URL: %s\n", pc.URL)
	fmt.Fprintf(&b, "Title: %s\n", pc.Title)
	fmt.Fprintf(&b, "Description: %s\n", pc.Description)
	fmt.Fprintf(&b, "Keywords: %s\n\n", pc.Keywords)

	b.WriteString("Headings:\n")
	for _, h := range pc.Headings {
		fmt.Fprintf(&b, "%s: %s\n", h.Tag, h.Text)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Emails: %s\n", strings.Join(pc.Emails, ", "))
	fmt.Fprintf(&b, "Phones: %s\n", strings.Join(pc.Phones, ", "))
	fmt.Fprintf(&b, "Social media: %s\n\n", strings.Join(pc.SocialLinks, ", "))

	b.WriteString("Content excerpt:\n")
	b.WriteString(schemascan.Truncate(pc.Content, excerptRunes))
	b.WriteString("\n\n")

	b.WriteString(`Create suitable schema.org JSON-LD items for this page. Consider:
- Organization (if company information is present)
- WebSite
- WebPage
- LocalBusiness (if there is a physical location)
- Product/Service (if products or services are offered)
- ContactPoint (if contact details are present)

Respond ONLY with a valid JSON array of JSON-LD objects. Every object must include "@context": "https://schema.org" and "@type".`)

	return b.String()
}

// fitPrompt builds the prompt and, when a counter and budget are set,
// halves the excerpt until the prompt fits. Counting errors are returned so
// the caller can fall back.
func fitPrompt(ctx context.Context, pc *schemascan.PageContent, counter schemascan.TokenCounter, budget int) (string, error) {
	excerpt := MaxExcerptRunes
	prompt := BuildPrompt(pc, excerpt)
	if counter == nil || budget <= 0 {
		return prompt, nil
	}

	for {
		n, err := counter.CountTokens(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("count prompt tokens: %w", err)
		}
		if n <= budget {
			return prompt, nil
		}
		if excerpt <= minExcerptRunes {
			return "", fmt.Errorf("prompt exceeds token budget: %d > %d", n, budget)
		}
		excerpt /= 2
		prompt = BuildPrompt(pc, excerpt)
	}
}
