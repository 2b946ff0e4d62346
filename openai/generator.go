// Package openai implements schemascan.TextGenerator with the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/fwojciec/schemascan"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.GPT4oMini

// Temperature keeps responses close to deterministic.
const Temperature = 0.1

var _ schemascan.TextGenerator = (*Generator)(nil)

// ChatClient is the subset of *openai.Client the Generator needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ ChatClient = (*openai.Client)(nil)

// Generator implements schemascan.TextGenerator using OpenAI chat models.
type Generator struct {
	client ChatClient
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client ChatClient, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// NewClientGenerator creates a Generator backed by a client for apiKey.
func NewClientGenerator(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, schemascan.Errorf(schemascan.EINVALID, "OPENAI_API_KEY required")
	}
	return NewGenerator(openai.NewClient(apiKey), model), nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt as a user message and returns the first choice.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", schemascan.Errorf(schemascan.EINVALID, "prompt required")
	}

	resp, err := g.client.CreateChatCompletion(ctx, BuildRequest(g.model, prompt))
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", schemascan.Errorf(schemascan.EINTERNAL, "empty response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildRequest returns the chat completion request for prompt.
func BuildRequest(model, prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: schemascan.SystemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: Temperature,
	}
}
