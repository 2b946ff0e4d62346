package analyze_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/analyze"
	"github.com/fwojciec/schemascan/extract"
	"github.com/fwojciec/schemascan/generate"
	"github.com/fwojciec/schemascan/goquery"
	"github.com/fwojciec/schemascan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productPage = `<html><head>
<title>Acme Anvil</title>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Product","name":"Anvil"}</script>
</head><body><h1>Anvil</h1></body></html>`

const plainPage = `<html><head>
<title>Acme Bakery</title>
<meta name="description" content="Fresh bread in Berlin">
</head><body><h1>Welcome</h1><p>Write to hello@acme.example</p></body></html>`

var fixedTime = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func staticFetcher(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) { return html, nil },
		CloseFn: func() error { return nil },
	}
}

func newAnalyzer(fetcher schemascan.Fetcher, text schemascan.TextGenerator) *analyze.Analyzer {
	return &analyze.Analyzer{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Extractor:   extract.NewAggregator(nil),
		Content:     goquery.NewContentAnalyzer(nil, nil),
		Generator:   generate.NewGenerator(text),
		RetryDelays: []time.Duration{},
		Now:         func() time.Time { return fixedTime },
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("keeps extracted items", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(staticFetcher(productPage), nil)

		got, err := a.Analyze(context.Background(), "https://Acme.example")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.example/", got.URL)
		assert.Equal(t, fixedTime, got.AnalyzedAt)
		assert.Equal(t, schemascan.ExtractionExtracted, got.State)
		assert.False(t, got.Generated)
		assert.Empty(t, got.Tier)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Product", got.Items[0].Type)
		require.NotNil(t, got.Report)
		assert.Equal(t, 1, got.ValidCount)
	})

	t.Run("generates when page has no structured data", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(staticFetcher(plainPage), nil)

		got, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, schemascan.ExtractionEmpty, got.State)
		assert.True(t, got.Generated)
		assert.Equal(t, schemascan.TierHeuristic, got.Tier)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "WebSite", got.Items[0].Type)
		assert.Equal(t, "Organization", got.Items[1].Type)
		assert.Equal(t, 2, got.ValidCount)
	})

	t.Run("force replaces extracted items", func(t *testing.T) {
		t.Parallel()

		text := &mock.TextGenerator{
			GenerateFn: func(context.Context, string) (string, error) {
				return `Here you go: [{"@context":"https://schema.org","@type":"Store","name":"Acme"}]`, nil
			},
		}
		a := newAnalyzer(staticFetcher(productPage), text)
		a.Force = true

		got, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, schemascan.ExtractionForceRegenerate, got.State)
		assert.True(t, got.Generated)
		assert.Equal(t, schemascan.TierGenerative, got.Tier)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Store", got.Items[0].Type)
	})

	t.Run("rejects invalid URL before fetching", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls.Add(1)
				return "", nil
			},
		}
		a := newAnalyzer(fetcher, nil)

		_, err := a.Analyze(context.Background(), "ftp://acme.example/")

		assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
		assert.Zero(t, calls.Load())
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("net::ERR_NAME_NOT_RESOLVED")
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "", boom },
		}
		a := newAnalyzer(fetcher, nil)

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		assert.ErrorIs(t, err, boom)
	})

	t.Run("writes result and records history", func(t *testing.T) {
		t.Parallel()

		var written *schemascan.Result
		results := &mock.ResultStore{
			WriteResultFn: func(_ context.Context, r *schemascan.Result) (string, error) {
				written = r
				return "out/acme_example.json", nil
			},
		}
		var recorded *schemascan.Analysis
		analyses := &mock.AnalysisService{
			CreateAnalysisFn: func(_ context.Context, a *schemascan.Analysis) error {
				a.ID = "id-1"
				recorded = a
				return nil
			},
		}
		a := newAnalyzer(staticFetcher(plainPage), nil)
		a.Results = results
		a.Analyses = analyses

		got, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		require.NotNil(t, written)
		assert.Equal(t, "https://acme.example/", written.Metadata.URL)
		assert.True(t, written.Metadata.Generated)
		assert.Equal(t, 2, written.Metadata.StructuredDataCount)
		assert.Same(t, got, recorded)
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, "out/acme_example.json", got.OutputPath)
	})

	t.Run("returns persistence errors", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultStore{
			WriteResultFn: func(context.Context, *schemascan.Result) (string, error) {
				return "", errors.New("disk full")
			},
		}
		a := newAnalyzer(staticFetcher(productPage), nil)
		a.Results = results

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "saving result")
	})

	t.Run("requires generator when generation is needed", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(staticFetcher(plainPage), nil)
		a.Generator = nil

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
	})

	t.Run("returns parse errors", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer(staticFetcher(plainPage), nil)
		a.Parser = &mock.DocumentParser{
			ParseFn: func(string) (schemascan.Document, error) {
				return nil, schemascan.Errorf(schemascan.EINVALID, "failed to parse HTML")
			},
		}

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing page")
		assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
	})

	t.Run("passes fetched html and normalized url to content analysis", func(t *testing.T) {
		t.Parallel()

		var gotHTML, gotURL string
		a := newAnalyzer(staticFetcher(plainPage), nil)
		a.Content = &mock.ContentAnalyzer{
			AnalyzeFn: func(html, pageURL string) (*schemascan.PageContent, error) {
				gotHTML, gotURL = html, pageURL
				return &schemascan.PageContent{URL: pageURL, Title: "Acme Bakery"}, nil
			},
		}

		got, err := a.Analyze(context.Background(), "https://ACME.example")

		require.NoError(t, err)
		assert.Equal(t, plainPage, gotHTML)
		assert.Equal(t, "https://acme.example/", gotURL)
		assert.True(t, got.Generated)
		assert.Equal(t, schemascan.TierHeuristic, got.Tier)
	})

	t.Run("returns content analysis errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("no body")
		a := newAnalyzer(staticFetcher(plainPage), nil)
		a.Content = &mock.ContentAnalyzer{
			AnalyzeFn: func(string, string) (*schemascan.PageContent, error) { return nil, boom },
		}

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "analyzing page content")
	})

	t.Run("counts skipped candidates", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script type="application/ld+json">{broken</script></head><body></body></html>`
		a := newAnalyzer(staticFetcher(html), nil)

		got, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, 1, got.Skipped)
		assert.Equal(t, schemascan.ExtractionEmpty, got.State)
		assert.True(t, got.Generated)
	})
}
