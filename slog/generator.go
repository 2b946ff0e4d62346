package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.TextGenerator = (*LoggingTextGenerator)(nil)

// LoggingTextGenerator wraps a TextGenerator with logging. Prompts and
// responses are logged by size only.
type LoggingTextGenerator struct {
	next   schemascan.TextGenerator
	logger *slog.Logger
	model  string
}

// NewLoggingTextGenerator creates a new LoggingTextGenerator. model is only
// used as a log attribute.
func NewLoggingTextGenerator(next schemascan.TextGenerator, model string, logger *slog.Logger) *LoggingTextGenerator {
	return &LoggingTextGenerator{next: next, logger: logger, model: model}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingTextGenerator) Generate(ctx context.Context, prompt string) (response string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"model", g.model,
			"prompt_bytes", len(prompt),
			"response_bytes", len(response),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}
