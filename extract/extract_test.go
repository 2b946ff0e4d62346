package extract_test

import (
	"testing"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) schemascan.Document {
	t.Helper()
	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return doc
}

func collect(t *testing.T, ex schemascan.FormatExtractor, doc schemascan.Document) ([]schemascan.Item, []error) {
	t.Helper()
	var items []schemascan.Item
	var errs []error
	for item, err := range ex.Extract(doc) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}
	return items, errs
}
