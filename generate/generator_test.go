package generate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/schemascan"
	"github.com/fwojciec/schemascan/generate"
	"github.com/fwojciec/schemascan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page() *schemascan.PageContent {
	return &schemascan.PageContent{
		URL:    "https://acme.example",
		Title:  "Acme Co",
		Emails: []string{"a@acme.example"},
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("nil page content is an error", func(t *testing.T) {
		t.Parallel()

		_, _, err := generate.NewGenerator(nil).Generate(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
	})

	t.Run("heuristic without text generator", func(t *testing.T) {
		t.Parallel()

		items, tier, err := generate.NewGenerator(nil).Generate(context.Background(), page())

		require.NoError(t, err)
		assert.Equal(t, schemascan.TierHeuristic, tier)
		require.Len(t, items, 2)
		assert.Equal(t, "WebSite", items[0].Type)
		assert.Equal(t, "Organization", items[1].Type)
	})

	t.Run("uses generated array", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		text := &mock.TextGenerator{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "Sure!\n```json\n[{\"@context\":\"https://schema.org\",\"@type\":\"LocalBusiness\",\"name\":\"Acme\"}, \"junk\", {\"name\":\"untyped\"}]\n```", nil
			},
		}

		items, tier, err := generate.NewGenerator(text).Generate(context.Background(), page())

		require.NoError(t, err)
		assert.Equal(t, schemascan.TierGenerative, tier)
		assert.Contains(t, gotPrompt, "Acme Co")
		require.Len(t, items, 2)
		assert.Equal(t, "LocalBusiness", items[0].Type)
		assert.Equal(t, schemascan.FormatJSONLD, items[0].Format)
		assert.Equal(t, schemascan.SourceScript, items[0].Source)
		assert.Equal(t, schemascan.TypeGenerated, items[1].Type)
	})

	fallbacks := []struct {
		name     string
		response string
		err      error
	}{
		{"capability error", "", errors.New("quota exceeded")},
		{"no array", "I cannot help with that.", nil},
		{"malformed array", "[{\"@type\": }]", nil},
		{"unbalanced array", "[{\"@type\":\"WebSite\"}", nil},
		{"empty array", "[]", nil},
		{"no objects", "[1, \"two\"]", nil},
	}
	for _, tt := range fallbacks {
		t.Run("falls back on "+tt.name, func(t *testing.T) {
			t.Parallel()

			text := &mock.TextGenerator{
				GenerateFn: func(context.Context, string) (string, error) {
					return tt.response, tt.err
				},
			}

			items, tier, err := generate.NewGenerator(text).Generate(context.Background(), page())

			require.NoError(t, err)
			assert.Equal(t, schemascan.TierHeuristic, tier)
			assert.Equal(t, generate.Heuristic(page()), items)
		})
	}

	t.Run("falls back when generator hangs", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)
		text := &mock.TextGenerator{
			GenerateFn: func(context.Context, string) (string, error) {
				<-release
				return "[]", nil
			},
		}

		start := time.Now()
		items, tier, err := generate.NewGenerator(text, generate.WithTimeout(20*time.Millisecond)).
			Generate(context.Background(), page())

		require.NoError(t, err)
		assert.Equal(t, schemascan.TierHeuristic, tier)
		assert.Len(t, items, 2)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("shrinks excerpt to token budget", func(t *testing.T) {
		t.Parallel()

		pc := page()
		pc.Content = strings.Repeat("word ", 1000)

		var prompts []string
		counter := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return len(text) / 4, nil
			},
		}
		text := &mock.TextGenerator{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				prompts = append(prompts, prompt)
				return `[{"@context":"https://schema.org","@type":"WebSite"}]`, nil
			},
		}

		_, tier, err := generate.NewGenerator(text, generate.WithTokenBudget(counter, 300)).
			Generate(context.Background(), pc)

		require.NoError(t, err)
		assert.Equal(t, schemascan.TierGenerative, tier)
		require.Len(t, prompts, 1)
		assert.LessOrEqual(t, len(prompts[0])/4, 300)
	})

	t.Run("falls back when token counting fails", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			},
		}
		text := &mock.TextGenerator{
			GenerateFn: func(context.Context, string) (string, error) {
				t.Error("should not call generator")
				return "", nil
			},
		}

		_, tier, err := generate.NewGenerator(text, generate.WithTokenBudget(counter, 100)).
			Generate(context.Background(), page())

		require.NoError(t, err)
		assert.Equal(t, schemascan.TierHeuristic, tier)
	})
}
