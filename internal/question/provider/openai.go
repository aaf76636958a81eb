package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gokatarajesh/eduquiz/internal/question"
)

// Groq serves an OpenAI-compatible chat completions API.
const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultGroqModel = "llama-3.3-70b-versatile"

	DefaultOpenAIModel = "gpt-4o-mini"
)

// ChatConfig configures a ChatCompleter.
type ChatConfig struct {
	// Name labels errors and logs, e.g. "groq" or "openai".
	Name       string
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// ChatCompleter talks to any OpenAI-compatible chat completions endpoint.
type ChatCompleter struct {
	client *openai.Client
	name   string
	model  string
}

func NewChatCompleter(cfg ChatConfig) (*ChatCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Name)
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	}
	return &ChatCompleter{
		client: openai.NewClientWithConfig(config),
		name:   cfg.Name,
		model:  cfg.Model,
	}, nil
}

func (c *ChatCompleter) Name() string { return c.name }

func (c *ChatCompleter) Complete(ctx context.Context, req question.CompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", &question.ProviderError{Provider: c.name, StatusCode: openAIStatus(err), Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &question.ProviderError{Provider: c.name, Err: question.ErrEmptyCompletion}
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
