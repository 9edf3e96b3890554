package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

const defaultMaxTokens = 2000

// AnthropicClient implements Client using the Anthropic API. The API key is
// read from the environment by the SDK.
type AnthropicClient struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

// Available reports whether an API key is present in the environment, which
// decides whether the model translation path is configured at all.
func Available() bool {
	return os.Getenv("ANTHROPIC_API_KEY") != ""
}

// NewAnthropicClient creates a client for the given model identifier.
func NewAnthropicClient(log *slog.Logger, model string, maxTokens int64) *AnthropicClient {
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
		log:       log,
	}
}

// Complete sends the prompts to the model and returns the first text block.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()
	c.log.Debug("anthropic call starting", "model", c.model, "userPromptLen", len(userPrompt))

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}
	c.log.Debug("anthropic call completed", "duration", time.Since(start), "stopReason", msg.StopReason)

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
