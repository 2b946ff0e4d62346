package main

import (
	"fmt"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	// Compile filters early so a bad pattern fails before any fetch.
	filter, err := schemascan.CompileURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemascan.ErrorMessage(err))
		return err
	}

	urls := c.URLs
	if c.Sitemap {
		urls, err = analyze.ExpandSitemaps(deps.Ctx, deps.Sitemaps, c.URLs, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemascan.ErrorMessage(err))
			return err
		}
	}

	progress := func(event analyze.ProgressEvent) {
		switch event.Type {
		case analyze.ProgressStarted:
			if event.Total > 1 {
				fmt.Fprintf(deps.Stdout, "Analyzing %d pages\n", event.Total)
			}
		case analyze.ProgressCompleted:
			printAnalysis(deps, event.Analysis)
		case analyze.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", event.URL, schemascan.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Batch.Run(deps.Ctx, urls, progress)
	if err != nil {
		return err
	}

	if len(result.Analyses)+len(result.Failures) > 1 {
		fmt.Fprintf(deps.Stdout, "Analyzed %d pages, %d failed\n", len(result.Analyses), len(result.Failures))
	}
	if n := len(result.Failures); n > 0 {
		return schemascan.Errorf(schemascan.EINTERNAL, "%d of %d pages failed", n, n+len(result.Analyses))
	}
	return nil
}

func printAnalysis(deps *Dependencies, a *schemascan.Analysis) {
	origin := "found"
	if a.Generated {
		origin = "generated (" + string(a.Tier) + ")"
	}
	fmt.Fprintf(deps.Stdout, "%s  %d items %s, %d/%d valid\n", a.URL, len(a.Items), origin, a.ValidCount, len(a.Items))
	if a.OutputPath != "" {
		fmt.Fprintf(deps.Stdout, "  saved %s\n", a.OutputPath)
	}
	if a.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  skipped %d unreadable blocks\n", a.Skipped)
	}
}
