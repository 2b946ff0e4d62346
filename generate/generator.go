// Package generate synthesizes structured data for pages that carry none.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/schemascan"
)

// DefaultTimeout bounds a single generative call.
const DefaultTimeout = 60 * time.Second

// Generator produces items with a generative model when one is configured
// and falls back to the deterministic heuristic otherwise.
type Generator struct {
	text    schemascan.TextGenerator
	counter schemascan.TokenCounter
	budget  int
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTokenBudget shrinks the prompt's content excerpt until the prompt
// counts at most maxTokens tokens.
func WithTokenBudget(counter schemascan.TokenCounter, maxTokens int) Option {
	return func(g *Generator) {
		g.counter = counter
		g.budget = maxTokens
	}
}

// WithTimeout sets the deadline for one generative call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator. A nil text generator disables the
// generative tier.
func NewGenerator(text schemascan.TextGenerator, opts ...Option) *Generator {
	g := &Generator{
		text:    text,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	return g
}

// Generate returns items for pc and the tier that produced them.
// Failures of the generative tier are logged and answered by the heuristic
// tier; the only error is a missing pc.
func (g *Generator) Generate(ctx context.Context, pc *schemascan.PageContent) ([]schemascan.Item, schemascan.GenerationTier, error) {
	if pc == nil {
		return nil, "", schemascan.Errorf(schemascan.EINVALID, "page content required")
	}

	if g.text != nil {
		items, err := g.generative(ctx, pc)
		if err == nil {
			return items, schemascan.TierGenerative, nil
		}
		g.logger.Warn("generative tier failed, using heuristic", "url", pc.URL, "error", err)
	}

	return Heuristic(pc), schemascan.TierHeuristic, nil
}

func (g *Generator) generative(ctx context.Context, pc *schemascan.PageContent) ([]schemascan.Item, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt, err := fitPrompt(ctx, pc, g.counter, g.budget)
	if err != nil {
		return nil, err
	}

	response, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseItems(response)
}

// generate runs the call in its own goroutine so a generator that ignores
// ctx cannot block past the deadline.
func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := g.text.Generate(ctx, prompt)
		ch <- result{text, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("generate: %w", r.err)
		}
		return r.text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("generate: %w", ctx.Err())
	}
}

// ParseItems maps the first JSON array in response to items. Non-object
// elements are dropped. An array without any object is an error.
func ParseItems(response string) ([]schemascan.Item, error) {
	raw, err := FindJSONArray(response)
	if err != nil {
		return nil, err
	}

	var elems []any
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, fmt.Errorf("parse generated array: %w", err)
	}

	items := make([]schemascan.Item, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, generated(schemascan.TypeOf(obj, schemascan.TypeGenerated), obj))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("generated array contains no objects")
	}
	return items, nil
}
