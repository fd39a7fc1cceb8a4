package genai

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/TheJegede/Negotiator/internal/config"
)

type openAIClient struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func newOpenAI(cfg config.AIConfig) *openAIClient {
	model := cfg.Model
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &openAIClient{
		client:  openai.NewClient(option.WithAPIKey(apiKey(cfg, "OPENAI_API_KEY"))),
		model:   model,
		timeout: cfg.Timeout,
	}
}

func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
