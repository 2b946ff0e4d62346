package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/schemascan/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenCounter(t *testing.T) {
	t.Parallel()

	t.Run("empty model uses the default tokenizer", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewTokenCounter("")

		require.NoError(t, err)
	})

	t.Run("unknown model", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewTokenCounter("not-a-gemini-model")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not-a-gemini-model")
	})
}

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("empty prompt costs nothing", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(ctx, "")

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("includes the system instruction", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(ctx, "Hi")

		require.NoError(t, err)
		assert.Greater(t, count, 15)
	})

	t.Run("grows with the page excerpt", func(t *testing.T) {
		t.Parallel()

		short, err := tc.CountTokens(ctx, "Acme Widgets")
		require.NoError(t, err)
		long, err := tc.CountTokens(ctx, strings.Repeat("Acme Widgets sells hand made widgets in Springfield. ", 20))
		require.NoError(t, err)

		assert.Greater(t, long, short)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(canceled, "Hello")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
