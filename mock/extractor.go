package mock

import "github.com/fwojciec/schemascan"

var _ schemascan.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of schemascan.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*schemascan.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*schemascan.ExtractResult, error) {
	return e.ExtractFn(html)
}
