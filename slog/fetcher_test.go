package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/schemascan/mock"
	schemaslog "github.com/fwojciec/schemascan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		err     error
		wantLog []string
	}{
		{
			name:    "success at info",
			html:    "<html>product</html>",
			wantLog: []string{"level=INFO", "msg=fetch", "url=https://shop.example/products/1", "bytes=20", "duration="},
		},
		{
			name:    "failure at warn",
			err:     errors.New("net::ERR_NAME_NOT_RESOLVED"),
			wantLog: []string{"level=WARN", "msg=fetch", "bytes=0", `err=net::ERR_NAME_NOT_RESOLVED`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			inner := &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return tt.html, tt.err
				},
			}

			html, err := schemaslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil))).
				Fetch(context.Background(), "https://shop.example/products/1")

			assert.Equal(t, tt.html, html)
			assert.Equal(t, tt.err, err)
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("browser already gone")
	inner := &mock.Fetcher{
		CloseFn: func() error { return closeErr },
	}

	err := schemaslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler)).Close()

	require.ErrorIs(t, err, closeErr)
}
