// Package anthropic implements schemascan.TextGenerator with the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/schemascan"
)

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = string(anthropic.ModelClaudeSonnet4_20250514)

// DefaultMaxTokens bounds the length of a response.
const DefaultMaxTokens = 2048

var _ schemascan.TextGenerator = (*Generator)(nil)

// MessageCreator is the subset of the Anthropic client the Generator needs.
type MessageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

var _ MessageCreator = (*anthropic.MessageService)(nil)

// Generator implements schemascan.TextGenerator using Claude.
type Generator struct {
	messages MessageCreator
	model    string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(messages MessageCreator, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{messages: messages, model: model}
}

// NewClientGenerator creates a Generator backed by a client for apiKey.
func NewClientGenerator(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, schemascan.Errorf(schemascan.EINVALID, "ANTHROPIC_API_KEY required")
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewGenerator(&client.Messages, model), nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt as a user message and returns the first text block
// of the reply.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", schemascan.Errorf(schemascan.EINVALID, "prompt required")
	}

	resp, err := g.messages.New(ctx, BuildParams(g.model, prompt))
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", schemascan.Errorf(schemascan.EINTERNAL, "empty response from Claude")
}

// BuildParams returns the Messages API request for prompt.
func BuildParams(model, prompt string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   DefaultMaxTokens,
		Temperature: anthropic.Float(0.1),
		System: []anthropic.TextBlockParam{
			{Text: schemascan.SystemInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
}
