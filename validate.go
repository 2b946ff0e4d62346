package schemascan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validation messages.
const (
	MsgInvalidData    = "missing or invalid data object"
	MsgMissingContext = "missing @context"
	MsgMissingType    = "missing @type"
	MsgContextSchema  = "@context should include schema.org"
)

// schemaTypes is the fixed set of recognized schema.org type names.
// Unknown types only produce a warning.
var schemaTypes = map[string]struct{}{
	"Organization":        {},
	"Person":              {},
	"WebSite":             {},
	"WebPage":             {},
	"Article":             {},
	"BlogPosting":         {},
	"Product":             {},
	"Service":             {},
	"LocalBusiness":       {},
	"ContactPoint":        {},
	"PostalAddress":       {},
	"Place":               {},
	"Event":               {},
	"Review":              {},
	"Rating":              {},
	"Offer":               {},
	"Brand":               {},
	"ImageObject":         {},
	"VideoObject":         {},
	"Recipe":              {},
	"FAQ":                 {},
	"Question":            {},
	"Answer":              {},
	"BreadcrumbList":      {},
	"ListItem":            {},
	"JobPosting":          {},
	"Course":              {},
	"Book":                {},
	"Movie":               {},
	"MusicGroup":          {},
	"Restaurant":          {},
	"Hotel":               {},
	"Store":               {},
	"NewsArticle":         {},
	"SoftwareApplication": {},
}

// IsKnownSchemaType reports whether name is on the schema.org type whitelist.
func IsKnownSchemaType(name string) bool {
	_, ok := schemaTypes[name]
	return ok
}

// ValidationOutcome is the conformance result for a single item.
type ValidationOutcome struct {
	Index    int      `json:"index"`
	Type     string   `json:"type"`
	Format   Format   `json:"format"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidationReport aggregates the outcomes of a collection.
type ValidationReport struct {
	TotalCount int                 `json:"totalCount"`
	ValidCount int                 `json:"validCount"`
	Items      []ValidationOutcome `json:"items"`
}

// Valid reports whether every item in the collection passed.
func (r *ValidationReport) Valid() bool {
	return r.ValidCount == r.TotalCount
}

// ValidateItem checks one item against the structural and schema.org rules.
// It never panics; every input yields an outcome. Warnings never affect
// validity.
func ValidateItem(item Item, index int) ValidationOutcome {
	out := ValidationOutcome{
		Index:    index,
		Type:     item.Type,
		Format:   item.Format,
		Errors:   []string{},
		Warnings: []string{},
	}

	data, ok := item.Object()
	if !ok {
		out.Errors = append(out.Errors, MsgInvalidData)
		return out
	}

	switch item.Kind() {
	case KindJSONLD:
		validateJSONLD(data, &out)
	case KindOpenGraph, KindTwitterCard, KindMicrodata, KindUnknown:
		// Only the data object rule applies.
	}

	out.Valid = len(out.Errors) == 0
	return out
}

func validateJSONLD(data map[string]any, out *ValidationOutcome) {
	ldContext, ok := data["@context"]
	if !ok || isEmptyValue(ldContext) {
		out.Errors = append(out.Errors, MsgMissingContext)
	} else if s, ok := ldContext.(string); ok && !strings.Contains(s, "schema.org") {
		out.Warnings = append(out.Warnings, MsgContextSchema)
	}

	typ, ok := data["@type"]
	if !ok || isEmptyValue(typ) {
		out.Errors = append(out.Errors, MsgMissingType)
		return
	}

	switch t := typ.(type) {
	case string:
		if !IsKnownSchemaType(t) {
			out.Warnings = append(out.Warnings, "unknown schema.org type: "+t)
		}
	case []any:
		for _, v := range t {
			s, _ := v.(string)
			if !IsKnownSchemaType(s) {
				out.Warnings = append(out.Warnings, fmt.Sprintf("unknown schema.org type: %v", v))
			}
		}
	default:
		out.Warnings = append(out.Warnings, fmt.Sprintf("unknown schema.org type: %v", t))
	}
}

// isEmptyValue reports whether a JSON value counts as absent: null, false,
// zero, an empty string or an empty array.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	return false
}

// ValidateCollection validates every item independently and summarizes the
// results in input order.
func ValidateCollection(items []Item) *ValidationReport {
	report := &ValidationReport{
		TotalCount: len(items),
		Items:      make([]ValidationOutcome, 0, len(items)),
	}
	for i, item := range items {
		outcome := ValidateItem(item, i)
		if outcome.Valid {
			report.ValidCount++
		}
		report.Items = append(report.Items, outcome)
	}
	return report
}
