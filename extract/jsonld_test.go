package extract_test

import (
	"testing"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLD_Extract(t *testing.T) {
	t.Parallel()

	t.Run("single block", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head>
<script type="application/ld+json">{"@type":"Organization","name":"Acme"}</script>
</head><body></body></html>`)

		items, errs := collect(t, extract.JSONLD{}, doc)

		assert.Empty(t, errs)
		require.Len(t, items, 1)
		assert.Equal(t, schemascan.Item{
			Type:   "Organization",
			Data:   map[string]any{"@type": "Organization", "name": "Acme"},
			Format: schemascan.FormatJSONLD,
			Source: schemascan.SourceScript,
		}, items[0])
	})

	t.Run("malformed block is skipped", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><head>
<script type="application/ld+json">{"@type":</script>
<script type="application/ld+json">{"@type":"Person"}</script>
</head></html>`)

		items, errs := collect(t, extract.JSONLD{}, doc)

		assert.Len(t, errs, 1)
		require.Len(t, items, 1)
		assert.Equal(t, "Person", items[0].Type)
	})

	t.Run("missing type is unknown", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/ld+json">{"name":"x"}</script>`)

		items, _ := collect(t, extract.JSONLD{}, doc)

		require.Len(t, items, 1)
		assert.Equal(t, schemascan.TypeUnknown, items[0].Type)
	})

	t.Run("type array uses first string", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/ld+json">{"@type":["LocalBusiness","Store"]}</script>`)

		items, _ := collect(t, extract.JSONLD{}, doc)

		require.Len(t, items, 1)
		assert.Equal(t, "LocalBusiness", items[0].Type)
	})

	t.Run("top level array yields each object", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/ld+json">[{"@type":"WebSite"}, 7, {"@type":"Organization"}]</script>`)

		items, errs := collect(t, extract.JSONLD{}, doc)

		assert.Len(t, errs, 1)
		require.Len(t, items, 2)
		assert.Equal(t, "WebSite", items[0].Type)
		assert.Equal(t, "Organization", items[1].Type)
	})

	t.Run("scalar top level is a failure", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/ld+json">"text"</script>`)

		items, errs := collect(t, extract.JSONLD{}, doc)

		assert.Empty(t, items)
		assert.Len(t, errs, 1)
	})

	t.Run("blank block is ignored", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/ld+json">   </script>`)

		items, errs := collect(t, extract.JSONLD{}, doc)

		assert.Empty(t, items)
		assert.Empty(t, errs)
	})

	t.Run("other script types are ignored", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/json">{"@type":"Person"}</script><script>var x = 1;</script>`)

		items, errs := collect(t, extract.JSONLD{}, doc)

		assert.Empty(t, items)
		assert.Empty(t, errs)
	})

	t.Run("stops when consumer stops", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<script type="application/ld+json">{"@type":"A"}</script><script type="application/ld+json">{"@type":"B"}</script>`)

		var seen []string
		for item := range (extract.JSONLD{}).Extract(doc) {
			seen = append(seen, item.Type)
			break
		}

		assert.Equal(t, []string{"A"}, seen)
	})
}
