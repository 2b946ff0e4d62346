package analyze

import (
	"context"
	"fmt"

	"github.com/fwojciec/schemascan"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages analyzed at once.
const DefaultConcurrency = 4

// PageAnalyzer analyzes a single page.
type PageAnalyzer interface {
	Analyze(ctx context.Context, url string) (*schemascan.Analysis, error)
}

var _ PageAnalyzer = (*Analyzer)(nil)

// Batch analyzes many pages with bounded concurrency.
type Batch struct {
	Analyzer    PageAnalyzer
	Concurrency int
}

// BatchResult holds the outcome of a batch.
type BatchResult struct {
	// Analyses holds successful analyses in input order.
	Analyses []*schemascan.Analysis

	// Failures holds one entry per page that could not be analyzed, in
	// input order.
	Failures []Failure
}

// Failure is a page that could not be analyzed.
type Failure struct {
	URL string
	Err error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Analysis  *schemascan.Analysis
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	position int
	url      string
	analysis *schemascan.Analysis
	err      error
}

// Run analyzes every URL once. Duplicates, compared after normalization,
// are dropped; invalid URLs are reported as failures. A failing page never
// stops the batch. Run returns an error only when ctx is canceled.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) (*BatchResult, error) {
	pages, invalid := dedupe(urls)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(pages) + len(invalid)
	notify := func(e ProgressEvent) {
		if progress != nil {
			e.Total = total
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted})

	results := make([]pageResult, 0, total)
	completed := 0
	for _, f := range invalid {
		completed++
		results = append(results, pageResult{position: f.position, url: f.url, err: f.err})
		notify(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: f.url, Error: f.err})
	}

	resultCh := make(chan pageResult, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, p := range pages {
			g.Go(func() error {
				analysis, err := b.Analyzer.Analyze(gctx, p.url)
				resultCh <- pageResult{position: p.position, url: p.url, analysis: analysis, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for r := range resultCh {
		completed++
		results = append(results, r)
		if r.err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: r.url, Error: r.err})
		} else {
			notify(ProgressEvent{Type: ProgressCompleted, Completed: completed, URL: r.url, Analysis: r.analysis})
		}
	}

	ordered := make([]*pageResult, len(urls))
	for i := range results {
		ordered[results[i].position] = &results[i]
	}

	out := &BatchResult{
		Analyses: []*schemascan.Analysis{},
		Failures: []Failure{},
	}
	for _, r := range ordered {
		if r == nil {
			continue
		}
		if r.err != nil {
			out.Failures = append(out.Failures, Failure{URL: r.url, Err: r.err})
		} else {
			out.Analyses = append(out.Analyses, r.analysis)
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total})

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

type page struct {
	position int
	url      string
	err      error
}

// dedupe splits urls into unique valid pages and invalid ones, keeping
// each page's input position.
func dedupe(urls []string) (pages, invalid []page) {
	seen := make(map[string]bool, len(urls))
	for i, raw := range urls {
		normalized, err := schemascan.NormalizeURL(raw)
		if err != nil {
			invalid = append(invalid, page{position: i, url: raw, err: err})
			continue
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		pages = append(pages, page{position: i, url: normalized})
	}
	return pages, invalid
}

// ExpandSitemaps replaces every site URL with the pages its sitemaps list.
// A site without sitemap pages is kept as a single page.
func ExpandSitemaps(ctx context.Context, sitemaps schemascan.SitemapService, urls []string, filter *schemascan.URLFilter) ([]string, error) {
	var out []string
	for _, site := range urls {
		pages, err := sitemaps.DiscoverURLs(ctx, site, filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery for %s: %w", site, err)
		}
		if len(pages) == 0 {
			out = append(out, site)
			continue
		}
		out = append(out, pages...)
	}
	return out, nil
}
