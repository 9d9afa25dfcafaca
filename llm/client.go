// Package llm implements the AI stages of the analysis pipeline: pulling
// candidate substance names out of OCR text and writing the plain-language
// risk summary. Both stages talk to the OpenAI chat completions API and both
// degrade gracefully, the pipeline never fails because the AI did.
package llm

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompleter is the slice of the OpenAI client the stages use. Tests
// substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps the OpenAI API with the model and timeout configuration
// shared by both AI stages.
type Client struct {
	api     chatCompleter
	model   string
	timeout time.Duration
}

// NewClient creates a client for the given API key. Model defaults to
// gpt-4o-mini and timeout to 30s when unset.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// complete sends a single-message chat completion and returns the text of
// the first choice.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
