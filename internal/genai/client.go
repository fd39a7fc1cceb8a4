// Package genai abstracts the generative-text provider that plays the
// seller. Providers are interchangeable behind Generator; the chat layer
// never sees SDK types, only prompts in and text out.
package genai

import (
	"context"
	"fmt"
	"os"

	"github.com/TheJegede/Negotiator/internal/config"
)

// FallbackMessage is returned to the learner when the provider errors.
// The negotiation continues; one lost turn should not end the exercise.
const FallbackMessage = "I'm sorry, I seem to be having trouble processing that request. Could you try again?"

// EmptyReplyMessage covers the rarer case of a successful call with no
// usable text in the response.
const EmptyReplyMessage = "I apologize, but I didn't receive a proper response. Could you please try again?"

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the provider named in cfg. An empty API key is not an error
// here: calls will fail and the chat layer substitutes FallbackMessage, so
// the service still comes up in environments without credentials.
func New(cfg config.AIConfig) (Generator, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAI(cfg), nil
	case "anthropic":
		return newAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("genai: unknown provider %q", cfg.Provider)
	}
}

func apiKey(cfg config.AIConfig, defaultEnv string) string {
	env := cfg.APIKeyEnv
	if env == "" {
		env = defaultEnv
	}
	return os.Getenv(env)
}
