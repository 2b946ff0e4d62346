package main

import (
	"fmt"

	"github.com/fwojciec/schemascan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Delete != "" {
		if err := deps.Analyses.DeleteAnalysis(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemascan.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted analysis %s\n", c.Delete)
		return nil
	}

	filter := schemascan.AnalysisFilter{Limit: c.Limit, Offset: c.Offset}
	if c.URL != "" {
		u, err := schemascan.NormalizeURL(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", schemascan.ErrorMessage(err))
			return err
		}
		filter.URL = &u
	}

	analyses, err := deps.Analyses.FindAnalyses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemascan.ErrorMessage(err))
		return err
	}

	if len(analyses) == 0 {
		fmt.Fprintln(deps.Stdout, "No analyses found. Use 'schemascan analyze' to create one.")
		return nil
	}

	for _, a := range analyses {
		origin := "found"
		if a.Generated {
			origin = string(a.Tier)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d/%d valid  %s\n",
			a.ID,
			a.AnalyzedAt.Format(schemascan.TimestampFormat),
			a.URL,
			a.ValidCount,
			len(a.Items),
			origin,
		)
	}

	return nil
}
