package genai

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/TheJegede/Negotiator/internal/config"
)

type anthropicClient struct {
	client  anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

func newAnthropic(cfg config.AIConfig) *anthropicClient {
	model := anthropic.Model(cfg.Model)
	if model == "" {
		model = anthropic.ModelClaude3_5HaikuLatest
	}
	return &anthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey(cfg, "ANTHROPIC_API_KEY"))),
		model:   model,
		timeout: cfg.Timeout,
	}
}

func (c *anthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
