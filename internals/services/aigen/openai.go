// file: internals/services/aigen/openai.go
package aigen

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultTimeout = 30 * time.Second

type openaiGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIGenerator(apiKey, model string) Generator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openaiGenerator{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: defaultTimeout,
	}
}

func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		// the provider answered but declined; not an upstream failure
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
