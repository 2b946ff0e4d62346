package extract

import (
	"iter"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.FormatExtractor = (*Microdata)(nil)

// Microdata turns each itemscope element into a flat property map.
//
// Every scope is visited independently, so the properties of a nested scope
// also appear in its ancestors.
type Microdata struct{}

// Name returns the format identifier.
func (Microdata) Name() string { return "microdata" }

// Extract yields one item per scope with at least one property.
func (Microdata) Extract(doc schemascan.Document) iter.Seq2[schemascan.Item, error] {
	return func(yield func(schemascan.Item, error) bool) {
		for _, scope := range doc.Find("[itemscope]") {
			typ, _ := scope.Attr("itemtype")
			if typ == "" {
				typ = schemascan.TypeMicrodata
			}

			data := make(map[string]any)
			for _, prop := range scope.Find("[itemprop]") {
				name, _ := prop.Attr("itemprop")
				if name == "" {
					continue
				}
				if v := propValue(prop); v != "" {
					data[name] = v
				}
			}
			if len(data) == 0 {
				continue
			}

			if !yield(schemascan.Item{
				Type:   typ,
				Data:   data,
				Format: schemascan.FormatMicrodata,
				Source: schemascan.SourceInline,
			}, nil) {
				return
			}
		}
	}
}

// propValue returns the first non-empty of the content attribute, the
// datetime attribute and the trimmed text.
func propValue(n schemascan.Node) string {
	if v, _ := n.Attr("content"); v != "" {
		return v
	}
	if v, _ := n.Attr("datetime"); v != "" {
		return v
	}
	return n.Text()
}
