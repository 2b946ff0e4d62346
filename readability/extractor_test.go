package readability_test

import (
	"testing"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("")

	require.Error(t, err)
	assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Acme Bakery</title></head>
<body><article><p>Fresh bread every morning.</p></article></body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Acme Bakery", result.Title)
}

func TestExtractor_KeepsArticleDropsSidebar(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Services</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article>
<h1>Our services</h1>
<p>We repair bicycles of every make and model in our workshop near the central station.</p>
<ul><li>Tune-ups</li><li>Wheel building</li></ul>
</article>
<footer><p>Footer</p></footer>
</body>
</html>`

	result, err := readability.NewExtractor().Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "repair bicycles of every make")
	assert.Contains(t, result.ContentHTML, "<li")
	assert.NotContains(t, result.ContentHTML, "Sidebar navigation content")
}
