package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Name() string {
	return c.modelName
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   1024,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("no response from anthropic")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}
