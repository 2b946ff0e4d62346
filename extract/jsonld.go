package extract

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.FormatExtractor = (*JSONLD)(nil)

const jsonLDSelector = `script[type="application/ld+json"]`

// JSONLD extracts items from application/ld+json script blocks.
type JSONLD struct{}

// Name returns the format identifier.
func (JSONLD) Name() string { return "json-ld" }

// Extract yields one item per script block. A block whose top level is an
// array yields one item per object element. Blank blocks are skipped
// without an error.
func (JSONLD) Extract(doc schemascan.Document) iter.Seq2[schemascan.Item, error] {
	return func(yield func(schemascan.Item, error) bool) {
		for i, node := range doc.Find(jsonLDSelector) {
			raw := strings.TrimSpace(node.Text())
			if raw == "" {
				continue
			}

			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				if !yield(schemascan.Item{}, fmt.Errorf("json-ld block %d: %w", i, err)) {
					return
				}
				continue
			}

			switch t := v.(type) {
			case map[string]any:
				if !yield(jsonLDItem(t), nil) {
					return
				}
			case []any:
				for j, elem := range t {
					obj, ok := elem.(map[string]any)
					if !ok {
						if !yield(schemascan.Item{}, fmt.Errorf("json-ld block %d element %d: not an object", i, j)) {
							return
						}
						continue
					}
					if !yield(jsonLDItem(obj), nil) {
						return
					}
				}
			default:
				if !yield(schemascan.Item{}, fmt.Errorf("json-ld block %d: top level is not an object", i)) {
					return
				}
			}
		}
	}
}

func jsonLDItem(obj map[string]any) schemascan.Item {
	return schemascan.Item{
		Type:   schemascan.TypeOf(obj, schemascan.TypeUnknown),
		Data:   obj,
		Format: schemascan.FormatJSONLD,
		Source: schemascan.SourceScript,
	}
}
