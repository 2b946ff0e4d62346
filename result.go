package schemascan

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"
)

// ResultMetadata describes one saved analysis.
type ResultMetadata struct {
	URL                 string    `json:"url"`
	AnalyzedAt          time.Time `json:"analyzedAt"`
	Generated           bool      `json:"generated"`
	StructuredDataCount int       `json:"structuredDataCount"`
}

// TimestampFormat is the layout of analyzedAt: RFC 3339 with milliseconds.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// MarshalJSON writes AnalyzedAt in UTC with millisecond precision.
func (m ResultMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL                 string `json:"url"`
		AnalyzedAt          string `json:"analyzedAt"`
		Generated           bool   `json:"generated"`
		StructuredDataCount int    `json:"structuredDataCount"`
	}{
		URL:                 m.URL,
		AnalyzedAt:          m.AnalyzedAt.UTC().Format(TimestampFormat),
		Generated:           m.Generated,
		StructuredDataCount: m.StructuredDataCount,
	})
}

// Result is the envelope an analysis is persisted in.
type Result struct {
	Metadata       ResultMetadata `json:"metadata"`
	StructuredData []Item         `json:"structuredData"`
}

// NewResult builds an envelope for items found or generated for url.
func NewResult(url string, analyzedAt time.Time, generated bool, items []Item) *Result {
	if items == nil {
		items = []Item{}
	}
	return &Result{
		Metadata: ResultMetadata{
			URL:                 url,
			AnalyzedAt:          analyzedAt.UTC(),
			Generated:           generated,
			StructuredDataCount: len(items),
		},
		StructuredData: items,
	}
}

// ResultStore persists result envelopes.
type ResultStore interface {
	// WriteResult persists the envelope and returns where it was written.
	WriteResult(ctx context.Context, result *Result) (path string, err error)

	// ReadResult loads a previously written envelope.
	// Returns ENOTFOUND if nothing exists at path and EINVALID if the
	// content is not a result envelope.
	ReadResult(ctx context.Context, path string) (*Result, error)
}

// DecodeResult decodes a result envelope.
//
// The structuredData member must be a JSON array; anything else is EINVALID.
// Array elements that cannot be decoded as items are kept as items without
// data so that validation reports them instead of silently dropping them.
// Malformed metadata is ignored.
func DecodeResult(r io.Reader) (*Result, error) {
	var raw struct {
		Metadata       json.RawMessage `json:"metadata"`
		StructuredData json.RawMessage `json:"structuredData"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Errorf(EINVALID, "invalid result file: %v", err)
	}

	data := bytes.TrimSpace(raw.StructuredData)
	if len(data) == 0 || data[0] != '[' {
		return nil, Errorf(EINVALID, "invalid result file: missing structuredData array")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, Errorf(EINVALID, "invalid result file: %v", err)
	}

	result := &Result{StructuredData: make([]Item, 0, len(elems))}
	if len(raw.Metadata) > 0 {
		_ = json.Unmarshal(raw.Metadata, &result.Metadata)
	}
	for _, elem := range elems {
		var item Item
		if err := json.Unmarshal(elem, &item); err != nil {
			item = Item{}
		}
		result.StructuredData = append(result.StructuredData, item)
	}
	return result, nil
}
