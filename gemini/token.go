package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/schemascan"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ schemascan.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens locally with the Gemini tokenizer, so
// the generator can fit prompts to a budget without an API round trip.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
// An empty model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens the prompt occupies, including the system
// instruction sent with every request.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	// The system instruction is sent with every request, so it counts
	// against the same budget.
	contents := []*genai.Content{
		genai.NewContentFromText(schemascan.SystemInstruction, genai.RoleUser),
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, fmt.Errorf("counting tokens: %w", err)
	}

	return int(result.TotalTokens), nil
}
