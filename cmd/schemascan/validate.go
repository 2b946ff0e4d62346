package main

import (
	"fmt"

	"github.com/fwojciec/schemascan"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	items, source, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", schemascan.ErrorMessage(err))
		return err
	}

	report := schemascan.ValidateCollection(items)

	fmt.Fprintf(deps.Stdout, "Validating %s\n", source)
	for _, outcome := range report.Items {
		status := "valid"
		if !outcome.Valid {
			status = "invalid"
		}
		typ := outcome.Type
		if typ == "" {
			typ = "(untyped)"
		}
		fmt.Fprintf(deps.Stdout, "  [%d] %s (%s): %s\n", outcome.Index, typ, outcome.Format, status)
		for _, e := range outcome.Errors {
			fmt.Fprintf(deps.Stdout, "      error: %s\n", e)
		}
		for _, w := range outcome.Warnings {
			fmt.Fprintf(deps.Stdout, "      warning: %s\n", w)
		}
	}
	fmt.Fprintf(deps.Stdout, "%d/%d items valid\n", report.ValidCount, report.TotalCount)

	if !report.Valid() {
		return schemascan.Errorf(schemascan.EINVALID, "%d of %d items invalid",
			report.TotalCount-report.ValidCount, report.TotalCount)
	}
	return nil
}

// load returns the items to validate and a label for their source.
func (c *ValidateCmd) load(deps *Dependencies) ([]schemascan.Item, string, error) {
	switch {
	case c.ID != "" && c.File != "":
		return nil, "", schemascan.Errorf(schemascan.EINVALID, "specify a file or --id, not both")
	case c.ID != "":
		a, err := deps.Analyses.FindAnalysisByID(deps.Ctx, c.ID)
		if err != nil {
			return nil, "", err
		}
		return a.Items, fmt.Sprintf("analysis %s (%s)", a.ID, a.URL), nil
	case c.File != "":
		result, err := deps.Results.ReadResult(deps.Ctx, c.File)
		if err != nil {
			return nil, "", err
		}
		return result.StructuredData, c.File, nil
	}
	return nil, "", schemascan.Errorf(schemascan.EINVALID, "a result file or --id is required")
}
