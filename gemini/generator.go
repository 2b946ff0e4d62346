package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/schemascan"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements schemascan.TextGenerator at compile time.
var _ schemascan.TextGenerator = (*Generator)(nil)

// Generator implements schemascan.TextGenerator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// NewClientGenerator creates a Generator backed by a Gemini API client for
// apiKey.
func NewClientGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, schemascan.Errorf(schemascan.EINVALID, "GEMINI_API_KEY required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return NewGenerator(client, model), nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt to Gemini and returns the text of the response.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", schemascan.Errorf(schemascan.EINVALID, "prompt required")
	}
	if g.client == nil {
		return "", schemascan.Errorf(schemascan.EINVALID, "gemini client not configured")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", schemascan.Errorf(schemascan.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: schemascan.SystemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
