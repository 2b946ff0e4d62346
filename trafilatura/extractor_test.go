package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ")

		require.Error(t, err)
		assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Acme Widgets - Home</title>
<meta property="og:title" content="Acme Widgets">
</head>
<body>
<main>
<h1>Acme Widgets</h1>
<p>We build durable widgets for industrial customers across Europe since 1972.</p>
</main>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("keeps company description and drops boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>About Acme</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/products">Products</a></li>
<li><a href="/contact">Contact</a></li>
</ul>
</nav>
<article>
<h1>About us</h1>
<p>Acme is a family-owned manufacturer of precision widgets with three plants and over two hundred employees.</p>
<p>Our engineers design custom solutions for automotive and aerospace clients worldwide.</p>
</article>
<footer>
<p>Copyright 2024 Acme GmbH</p>
</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "family-owned manufacturer")
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Acme GmbH")
	})
}
