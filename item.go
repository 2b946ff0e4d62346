package schemascan

// Format is the syntactic origin of an item.
type Format string

// Supported item formats.
const (
	FormatJSONLD    Format = "json-ld"
	FormatMicrodata Format = "microdata"
	FormatRDFa      Format = "rdfa"
)

// Source is where in the document an item was found.
type Source string

// Supported item sources.
const (
	SourceScript Source = "script"
	SourceMeta   Source = "meta"
	SourceInline Source = "inline"
)

// Synthetic type labels used when an item has no schema.org type of its own.
const (
	TypeOpenGraph   = "OpenGraph"
	TypeTwitterCard = "TwitterCard"
	TypeMicrodata   = "Microdata"
	TypeUnknown     = "Unknown"
	TypeGenerated   = "Generated"
)

// SchemaContext is the @context written into generated JSON-LD items.
const SchemaContext = "https://schema.org"

// Item is a single structured-data record.
//
// Format and Source are assigned when the item is extracted or generated and
// are never rewritten afterwards. Data holds a JSON value: extractors and
// generators always produce a map[string]any, while items decoded from a
// saved result may carry anything, which is why validation accepts any.
type Item struct {
	Type   string `json:"type"`
	Data   any    `json:"data"`
	Format Format `json:"format"`
	Source Source `json:"source"`
}

// Object returns the item's data as a JSON object.
func (i Item) Object() (map[string]any, bool) {
	m, ok := i.Data.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// Kind identifies which of the known payload shapes an item carries.
type Kind string

// Payload shapes.
const (
	KindJSONLD      Kind = "json-ld"
	KindOpenGraph   Kind = "open-graph"
	KindTwitterCard Kind = "twitter-card"
	KindMicrodata   Kind = "microdata"
	KindUnknown     Kind = "unknown"
)

// Kind derives the payload shape from the item's format and type label.
func (i Item) Kind() Kind {
	switch i.Format {
	case FormatJSONLD:
		return KindJSONLD
	case FormatMicrodata:
		return KindMicrodata
	case FormatRDFa:
		switch i.Type {
		case TypeOpenGraph:
			return KindOpenGraph
		case TypeTwitterCard:
			return KindTwitterCard
		}
	}
	return KindUnknown
}

// TypeOf returns the @type of a JSON-LD object. When @type is an array the
// first non-empty string element is used. Returns fallback when no usable
// type is present.
func TypeOf(obj map[string]any, fallback string) string {
	switch t := obj["@type"].(type) {
	case string:
		if t != "" {
			return t
		}
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}
