package schemascan

import (
	"context"
	"time"
)

// Analysis is the outcome of analyzing one page.
type Analysis struct {
	ID         string          `json:"id"`
	URL        string          `json:"url"`
	AnalyzedAt time.Time       `json:"analyzedAt"`
	State      ExtractionState `json:"state"`
	Generated  bool            `json:"generated"`
	Tier       GenerationTier  `json:"tier,omitempty"`
	Items      []Item          `json:"items"`
	Skipped    int             `json:"skipped"`
	ValidCount int             `json:"validCount"`
	OutputPath string          `json:"outputPath,omitempty"`

	// ContentHash is a digest of the serialized items, set by storage.
	ContentHash string `json:"contentHash,omitempty"`

	// Report is the validation report of Items. Not persisted.
	Report *ValidationReport `json:"-"`
}

// Validate returns an error if the analysis contains invalid fields.
func (a *Analysis) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "analysis URL required")
	}
	if a.AnalyzedAt.IsZero() {
		return Errorf(EINVALID, "analysis timestamp required")
	}
	return nil
}

// Result returns the persistence envelope for the analysis.
func (a *Analysis) Result() *Result {
	return NewResult(a.URL, a.AnalyzedAt, a.Generated, a.Items)
}

// AnalysisService represents a service for recording analyses.
type AnalysisService interface {
	// CreateAnalysis records a new analysis and assigns its ID.
	CreateAnalysis(ctx context.Context, a *Analysis) error

	// FindAnalysisByID retrieves an analysis by ID.
	// Returns ENOTFOUND if the analysis does not exist.
	FindAnalysisByID(ctx context.Context, id string) (*Analysis, error)

	// FindAnalyses retrieves analyses matching the filter, newest first.
	FindAnalyses(ctx context.Context, filter AnalysisFilter) ([]*Analysis, error)

	// DeleteAnalysis permanently removes an analysis.
	// Returns ENOTFOUND if the analysis does not exist.
	DeleteAnalysis(ctx context.Context, id string) error
}

// AnalysisFilter represents a filter for FindAnalyses.
type AnalysisFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
