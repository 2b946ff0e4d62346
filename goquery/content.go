package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/schemascan"
)

var _ schemascan.ContentAnalyzer = (*ContentAnalyzer)(nil)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// phonePattern is deliberately loose and over-matches digit runs.
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
)

// ContentAnalyzer reads the page signals used to generate structured data.
type ContentAnalyzer struct {
	extractor schemascan.ContentExtractor
	converter schemascan.Converter
}

// NewContentAnalyzer creates a ContentAnalyzer. When extractor is set the
// content excerpt is the page's main content, rendered as markdown if
// converter is set too. Otherwise the excerpt is the visible body text.
func NewContentAnalyzer(extractor schemascan.ContentExtractor, converter schemascan.Converter) *ContentAnalyzer {
	return &ContentAnalyzer{extractor: extractor, converter: converter}
}

// Analyze builds PageContent from rendered html.
func (a *ContentAnalyzer) Analyze(html string, pageURL string) (*schemascan.PageContent, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, schemascan.Errorf(schemascan.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, schemascan.Errorf(schemascan.EINVALID, "failed to parse HTML: %v", err)
	}

	pc := &schemascan.PageContent{
		URL:         pageURL,
		Title:       collapse(doc.Find("title").First().Text()),
		Description: metaContent(doc, "description"),
		Keywords:    metaContent(doc, "keywords"),
		Headings:    headings(doc),
		SocialLinks: socialLinks(doc, base),
	}

	body := doc.Find("body")
	body.Find("script, style, noscript, template").Remove()
	text := collapse(body.Text())

	pc.Emails = unique(emailPattern.FindAllString(text, -1))
	pc.Phones = unique(phonePattern.FindAllString(text, -1))

	content := a.mainContent(html)
	if content == "" {
		content = text
	}
	pc.Content = schemascan.Truncate(content, schemascan.MaxContentRunes)

	return pc, nil
}

// mainContent returns the isolated main content or an empty string when
// no extractor is configured or extraction fails.
func (a *ContentAnalyzer) mainContent(html string) string {
	if a.extractor == nil {
		return ""
	}
	result, err := a.extractor.Extract(html)
	if err != nil || strings.TrimSpace(result.ContentHTML) == "" {
		return ""
	}

	if a.converter != nil {
		if md, err := a.converter.Convert(result.ContentHTML); err == nil && md != "" {
			return md
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.ContentHTML))
	if err != nil {
		return ""
	}
	return collapse(doc.Text())
}

func metaContent(doc *goquery.Document, name string) string {
	content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

func headings(doc *goquery.Document) []schemascan.Heading {
	out := []schemascan.Heading{}
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		text := collapse(sel.Text())
		if text == "" {
			return
		}
		out = append(out, schemascan.Heading{
			Tag:  strings.ToUpper(goquery.NodeName(sel)),
			Text: text,
		})
	})
	return out
}

// collapse trims s and folds every whitespace run into one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// unique drops repeated and blank values, keeping first occurrences.
func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
