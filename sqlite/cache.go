package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.TextGenerator = (*GenerationCache)(nil)

// GenerationCache wraps a TextGenerator and stores successful responses,
// keyed by model and prompt. Repeated analyses of an unchanged page reuse
// the stored response instead of calling the model again.
//
// The cache never fails a generation: read and write errors are logged and
// the wrapped generator's response is used as is.
type GenerationCache struct {
	db     *DB
	next   schemascan.TextGenerator
	model  string
	logger *slog.Logger
	now    func() time.Time
}

// CacheOption configures a GenerationCache.
type CacheOption func(*GenerationCache)

// WithLogger sets the logger used for cache read and write errors.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *GenerationCache) {
		c.logger = logger
	}
}

// NewGenerationCache creates a cache in front of next. model scopes the
// cache so that switching models never returns another model's answer.
func NewGenerationCache(db *DB, next schemascan.TextGenerator, model string, opts ...CacheOption) *GenerationCache {
	c := &GenerationCache{
		db:     db,
		next:   next,
		model:  model,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey returns the key a prompt is stored under for model.
func CacheKey(model, prompt string) string {
	return hashContent(model + "\x00" + prompt)
}

// Generate returns the cached response for prompt, or calls the wrapped
// generator and caches a non-empty result. Failures are never cached.
func (c *GenerationCache) Generate(ctx context.Context, prompt string) (string, error) {
	key := CacheKey(c.model, prompt)

	var response string
	err := c.db.QueryRowContext(ctx, "SELECT response FROM generations WHERE key = ?", key).Scan(&response)
	switch {
	case err == nil:
		return response, nil
	case !errors.Is(err, sql.ErrNoRows):
		c.logger.Warn("reading generation cache", "model", c.model, "error", err)
	}

	response, err = c.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if response == "" {
		return response, nil
	}

	if _, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO generations (key, model, response, created_at)
		VALUES (?, ?, ?, ?)
	`, key, c.model, response, formatTime(c.now())); err != nil {
		c.logger.Warn("writing generation cache", "model", c.model, "error", err)
	}

	return response, nil
}

// Purge removes cached responses older than maxAge and returns how many
// were removed.
func (c *GenerationCache) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := formatTime(c.now().Add(-maxAge))
	result, err := c.db.ExecContext(ctx, "DELETE FROM generations WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging generation cache: %w", err)
	}
	return result.RowsAffected()
}
