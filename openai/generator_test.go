package openai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/schemascan"
	schemaopenai "github.com/fwojciec/schemascan/openai"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatClientFn func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

func (fn chatClientFn) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return fn(ctx, req)
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns first choice", func(t *testing.T) {
		t.Parallel()

		var got openai.ChatCompletionRequest
		client := chatClientFn(func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			got = req
			return reply(`[{"@type":"WebSite"}]`), nil
		})

		out, err := schemaopenai.NewGenerator(client, "").Generate(context.Background(), "describe the page")

		require.NoError(t, err)
		assert.Equal(t, `[{"@type":"WebSite"}]`, out)
		assert.Equal(t, schemaopenai.DefaultModel, got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
		assert.Equal(t, schemascan.SystemInstruction, got.Messages[0].Content)
		assert.Equal(t, "describe the page", got.Messages[1].Content)
		assert.InDelta(t, 0.1, got.Temperature, 0.001)
	})

	t.Run("uses configured model", func(t *testing.T) {
		t.Parallel()

		var model string
		client := chatClientFn(func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			model = req.Model
			return reply("[]"), nil
		})

		_, err := schemaopenai.NewGenerator(client, "gpt-4o").Generate(context.Background(), "p")

		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", model)
	})

	t.Run("empty prompt", func(t *testing.T) {
		t.Parallel()

		_, err := schemaopenai.NewGenerator(nil, "").Generate(context.Background(), "")

		assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
	})

	t.Run("no choices", func(t *testing.T) {
		t.Parallel()

		client := chatClientFn(func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, nil
		})

		_, err := schemaopenai.NewGenerator(client, "").Generate(context.Background(), "p")

		assert.Equal(t, schemascan.EINTERNAL, schemascan.ErrorCode(err))
	})

	t.Run("client error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("rate limited")
		client := chatClientFn(func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, boom
		})

		_, err := schemaopenai.NewGenerator(client, "").Generate(context.Background(), "p")

		assert.ErrorIs(t, err, boom)
	})
}

func TestNewClientGenerator_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := schemaopenai.NewClientGenerator("", "")

	assert.Equal(t, schemascan.EINVALID, schemascan.ErrorCode(err))
}
