package schemascan

// MaxContentRunes bounds PageContent.Content.
const MaxContentRunes = 5000

// Heading is a page heading in document order.
type Heading struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// PageContent summarizes the signals of a single page that the fallback
// generator works from. It is built once per analysis and never mutated.
type PageContent struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    string    `json:"keywords"`
	Content     string    `json:"content"`
	Emails      []string  `json:"emails"`
	Phones      []string  `json:"phones"`
	SocialLinks []string  `json:"socialLinks"`
	Headings    []Heading `json:"headings"`
}

// HasContactSignals reports whether the page exposes any email, phone or
// social profile.
func (pc *PageContent) HasContactSignals() bool {
	return len(pc.Emails) > 0 || len(pc.Phones) > 0 || len(pc.SocialLinks) > 0
}

// ContentAnalyzer builds PageContent from rendered HTML.
type ContentAnalyzer interface {
	// Analyze reads page signals from html. pageURL resolves relative links
	// and becomes PageContent.URL.
	Analyze(html string, pageURL string) (*PageContent, error)
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
