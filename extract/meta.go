package extract

import (
	"iter"
	"strings"

	"github.com/fwojciec/schemascan"
)

// Ensure types implement interfaces.
var (
	_ schemascan.FormatExtractor = (*OpenGraph)(nil)
	_ schemascan.FormatExtractor = (*TwitterCard)(nil)
)

// OpenGraph merges og:* meta properties into a single item.
type OpenGraph struct{}

// Name returns the format identifier.
func (OpenGraph) Name() string { return "opengraph" }

// Extract yields at most one item.
func (OpenGraph) Extract(doc schemascan.Document) iter.Seq2[schemascan.Item, error] {
	return metaItem(doc, `meta[property^="og:"]`, "property", schemascan.TypeOpenGraph)
}

// TwitterCard merges twitter:* meta tags into a single item.
type TwitterCard struct{}

// Name returns the format identifier.
func (TwitterCard) Name() string { return "twittercard" }

// Extract yields at most one item.
func (TwitterCard) Extract(doc schemascan.Document) iter.Seq2[schemascan.Item, error] {
	return metaItem(doc, `meta[name^="twitter:"]`, "name", schemascan.TypeTwitterCard)
}

// metaItem collects key/content pairs from the matching meta tags. Later
// tags with the same key overwrite earlier ones. Tags with an empty key or
// content are ignored.
func metaItem(doc schemascan.Document, selector, keyAttr, typ string) iter.Seq2[schemascan.Item, error] {
	return func(yield func(schemascan.Item, error) bool) {
		data := make(map[string]any)
		for _, node := range doc.Find(selector) {
			key, _ := node.Attr(keyAttr)
			content, _ := node.Attr("content")
			key = strings.TrimSpace(key)
			if key == "" || content == "" {
				continue
			}
			data[key] = content
		}
		if len(data) == 0 {
			return
		}
		yield(schemascan.Item{
			Type:   typ,
			Data:   data,
			Format: schemascan.FormatRDFa,
			Source: schemascan.SourceMeta,
		}, nil)
	}
}
