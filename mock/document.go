package mock

import "github.com/fwojciec/schemascan"

// Compile-time interface verification.
var (
	_ schemascan.DocumentParser  = (*DocumentParser)(nil)
	_ schemascan.ContentAnalyzer = (*ContentAnalyzer)(nil)
)

// DocumentParser is a mock implementation of schemascan.DocumentParser.
type DocumentParser struct {
	ParseFn func(html string) (schemascan.Document, error)
}

func (p *DocumentParser) Parse(html string) (schemascan.Document, error) {
	return p.ParseFn(html)
}

// ContentAnalyzer is a mock implementation of schemascan.ContentAnalyzer.
type ContentAnalyzer struct {
	AnalyzeFn func(html string, pageURL string) (*schemascan.PageContent, error)
}

func (a *ContentAnalyzer) Analyze(html string, pageURL string) (*schemascan.PageContent, error) {
	return a.AnalyzeFn(html, pageURL)
}
