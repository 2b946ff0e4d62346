// Package trafilatura isolates the main content of a page with
// go-trafilatura, dropping navigation, footers and other boilerplate
// before a page is summarized.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/schemascan"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ schemascan.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with the readability and
// dom-distiller fallbacks enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{EnableFallback: true},
	}
}

// Extract returns the page title and its main content as HTML.
// ContentHTML is empty when no main content could be identified.
func (e *Extractor) Extract(rawHTML string) (*schemascan.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, schemascan.Errorf(schemascan.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &schemascan.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
