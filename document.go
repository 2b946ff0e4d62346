package schemascan

import "iter"

// Node is a read-only element of a parsed HTML document.
type Node interface {
	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the element's text content with surrounding whitespace trimmed.
	Text() string

	// Find returns the descendants matching a CSS selector, in document order.
	Find(selector string) []Node
}

// Document is an immutable snapshot of a rendered page.
// Implementations must be safe for concurrent reads.
type Document interface {
	// Find returns all elements matching a CSS selector, in document order.
	Find(selector string) []Node
}

// DocumentParser builds a Document from HTML.
type DocumentParser interface {
	Parse(html string) (Document, error)
}

// FormatExtractor produces candidate items for one structured-data format.
type FormatExtractor interface {
	// Name identifies the format (e.g., "json-ld", "opengraph").
	Name() string

	// Extract lazily yields the items found in doc. A candidate that cannot
	// be read is yielded as a non-nil error with a zero Item; consumers skip
	// it and keep iterating.
	Extract(doc Document) iter.Seq2[Item, error]
}

// ExtractionState tags the outcome of running every extractor over a page.
type ExtractionState string

// Extraction states.
const (
	// ExtractionEmpty means no extractor produced an item.
	ExtractionEmpty ExtractionState = "empty"

	// ExtractionExtracted means at least one item was found.
	ExtractionExtracted ExtractionState = "extracted"

	// ExtractionForceRegenerate means items may exist but the caller asked
	// for generation regardless.
	ExtractionForceRegenerate ExtractionState = "force_regenerate"
)

// FormatCount is the number of items one extractor produced.
type FormatCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Extraction is the aggregated result of running every FormatExtractor
// over a single document.
type Extraction struct {
	State  ExtractionState
	Items  []Item
	Counts []FormatCount

	// Skipped counts candidates that failed to parse. A zero-item extraction
	// with Skipped > 0 found markup but could not read any of it.
	Skipped int
}

// NeedsGeneration reports whether the fallback generator should run.
func (e *Extraction) NeedsGeneration() bool {
	return e.State == ExtractionEmpty || e.State == ExtractionForceRegenerate
}

// Force returns a copy of the extraction promoted to ExtractionForceRegenerate.
// Empty extractions stay empty.
func (e Extraction) Force() Extraction {
	if e.State == ExtractionExtracted {
		e.State = ExtractionForceRegenerate
	}
	return e
}
