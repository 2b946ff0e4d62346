// Package analyze orchestrates page analysis. It coordinates fetching,
// structured-data extraction, fallback generation, validation and storage
// of single pages and of batches.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/schemascan"
)

// Extractor runs every format extractor over a document.
type Extractor interface {
	Extract(doc schemascan.Document) schemascan.Extraction
}

// Generator synthesizes items for pages that carry none.
type Generator interface {
	Generate(ctx context.Context, pc *schemascan.PageContent) ([]schemascan.Item, schemascan.GenerationTier, error)
}

// Analyzer analyzes single pages.
//
// Fetcher, Parser and Extractor are required. Content and Generator are
// required once a page needs generation. Results, Analyses and RateLimiter
// are optional.
type Analyzer struct {
	Fetcher     schemascan.Fetcher
	Parser      schemascan.DocumentParser
	Extractor   Extractor
	Content     schemascan.ContentAnalyzer
	Generator   Generator
	Results     schemascan.ResultStore
	Analyses    schemascan.AnalysisService
	RateLimiter *DomainLimiter
	Logger      *slog.Logger

	// Force runs the generator even when the page already carries items.
	Force bool

	// RetryDelays overrides DefaultRetryDelays. An empty non-nil slice
	// disables retries.
	RetryDelays []time.Duration

	// Now returns the analysis timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Analyze runs the full pipeline for one URL and returns the analysis.
//
// Fetch, parse and persistence failures are returned as errors. Extraction
// and generation never fail a page: unreadable candidates are skipped and
// generation falls back to the heuristic tier.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*schemascan.Analysis, error) {
	pageURL, err := schemascan.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	logger := a.logger().With("url", pageURL)

	html, err := a.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := a.Parser.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	extraction := a.Extractor.Extract(doc)
	if a.Force {
		extraction = extraction.Force()
	}

	analysis := &schemascan.Analysis{
		URL:        pageURL,
		AnalyzedAt: a.now().UTC(),
		State:      extraction.State,
		Items:      extraction.Items,
		Skipped:    extraction.Skipped,
	}

	if extraction.NeedsGeneration() {
		logger.Info("generating structured data", "state", extraction.State, "found", len(extraction.Items))

		items, tier, err := a.generate(ctx, html, pageURL)
		if err != nil {
			return nil, err
		}
		analysis.Items = items
		analysis.Generated = true
		analysis.Tier = tier
	} else {
		logger.Info("found structured data", "count", len(extraction.Items))
	}

	analysis.Report = schemascan.ValidateCollection(analysis.Items)
	analysis.ValidCount = analysis.Report.ValidCount

	if a.Results != nil {
		path, err := a.Results.WriteResult(ctx, analysis.Result())
		if err != nil {
			return nil, fmt.Errorf("saving result: %w", err)
		}
		analysis.OutputPath = path
	}

	if a.Analyses != nil {
		if err := a.Analyses.CreateAnalysis(ctx, analysis); err != nil {
			return nil, fmt.Errorf("recording analysis: %w", err)
		}
	}

	return analysis, nil
}

func (a *Analyzer) fetch(ctx context.Context, pageURL string) (string, error) {
	if u, err := url.Parse(pageURL); err == nil {
		if err := a.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := a.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, pageURL, a.Fetcher.Fetch, delays, a.logger())
}

func (a *Analyzer) generate(ctx context.Context, html, pageURL string) ([]schemascan.Item, schemascan.GenerationTier, error) {
	if a.Content == nil || a.Generator == nil {
		return nil, "", schemascan.Errorf(schemascan.EINVALID, "generation is not configured")
	}

	pc, err := a.Content.Analyze(html, pageURL)
	if err != nil {
		return nil, "", fmt.Errorf("analyzing page content: %w", err)
	}

	return a.Generator.Generate(ctx, pc)
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
