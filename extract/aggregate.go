package extract

import (
	"log/slog"

	"github.com/fwojciec/schemascan"
)

// Aggregator runs a fixed list of extractors over one document.
type Aggregator struct {
	extractors []schemascan.FormatExtractor
	logger     *slog.Logger
}

// NewAggregator creates an Aggregator running JSON-LD, Open Graph, Twitter
// Card and Microdata extraction, in that order. A nil logger discards
// per-candidate failures.
func NewAggregator(logger *slog.Logger) *Aggregator {
	return NewAggregatorWith(logger, JSONLD{}, OpenGraph{}, TwitterCard{}, Microdata{})
}

// NewAggregatorWith creates an Aggregator over a custom extractor list.
// Extractors run in the given order.
func NewAggregatorWith(logger *slog.Logger, extractors ...schemascan.FormatExtractor) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{extractors: extractors, logger: logger}
}

// Extract collects the items of every extractor, grouped by extractor in
// run order. Candidate failures are logged and counted, never returned.
func (a *Aggregator) Extract(doc schemascan.Document) schemascan.Extraction {
	out := schemascan.Extraction{
		Items:  []schemascan.Item{},
		Counts: make([]schemascan.FormatCount, 0, len(a.extractors)),
	}

	for _, ex := range a.extractors {
		count := 0
		for item, err := range ex.Extract(doc) {
			if err != nil {
				out.Skipped++
				a.logger.Warn("skipping candidate", "format", ex.Name(), "error", err)
				continue
			}
			out.Items = append(out.Items, item)
			count++
		}
		out.Counts = append(out.Counts, schemascan.FormatCount{Name: ex.Name(), Count: count})
	}

	if len(out.Items) > 0 {
		out.State = schemascan.ExtractionExtracted
	} else {
		out.State = schemascan.ExtractionEmpty
	}

	a.logger.Debug("extraction complete", "items", len(out.Items), "skipped", out.Skipped)
	return out
}
