// Package readability isolates main page content with go-readability.
// It is the alternative to the trafilatura extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/schemascan"
	"github.com/go-shiori/go-readability"
)

var _ schemascan.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*schemascan.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, schemascan.Errorf(schemascan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &schemascan.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
