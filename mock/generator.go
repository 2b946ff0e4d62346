package mock

import (
	"context"

	"github.com/fwojciec/schemascan"
)

var _ schemascan.TextGenerator = (*TextGenerator)(nil)

// TextGenerator is a mock implementation of schemascan.TextGenerator.
type TextGenerator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *TextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}
