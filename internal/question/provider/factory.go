package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gokatarajesh/eduquiz/internal/config"
	"github.com/gokatarajesh/eduquiz/internal/question"
)

// New builds the Completer selected by cfg.Provider. Callers decide beforehand
// whether a credential is present; New fails on an empty key.
func New(ctx context.Context, cfg config.AI) (question.Completer, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "groq", "":
		return checked(NewChatCompleter(ChatConfig{
			Name:       "groq",
			APIKey:     cfg.APIKey,
			BaseURL:    orDefault(cfg.BaseURL, GroqBaseURL),
			Model:      orDefault(cfg.Model, DefaultGroqModel),
			HTTPClient: httpClient,
		}))
	case "openai":
		return checked(NewChatCompleter(ChatConfig{
			Name:       "openai",
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      orDefault(cfg.Model, DefaultOpenAIModel),
			HTTPClient: httpClient,
		}))
	case "gemini":
		return checked(NewGeminiCompleter(ctx, GeminiConfig{
			APIKey:     cfg.APIKey,
			Model:      orDefault(cfg.Model, DefaultGeminiModel),
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		}))
	case "anthropic":
		return checked(NewAnthropicCompleter(AnthropicConfig{
			APIKey:     cfg.APIKey,
			Model:      orDefault(cfg.Model, DefaultAnthropicModel),
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		}))
	default:
		return nil, fmt.Errorf("unknown AI provider %q (expected groq, openai, gemini or anthropic)", cfg.Provider)
	}
}

// checked keeps a failed constructor from leaking a typed nil into the interface.
func checked[T question.Completer](c T, err error) (question.Completer, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
