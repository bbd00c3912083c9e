package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is the provider-agnostic chat message shape shared by the
// orchestrator and the completion client.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer issues a single chat completion per call. Implementations make at
// most one attempt; retrying is the caller's decision.
type Completer interface {
	Complete(ctx context.Context, history []Message, userMessage string) (string, error)
}

type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	Timeout      time.Duration
}

// Client calls an OpenAI-compatible chat-completions endpoint. Model,
// max_tokens, and temperature are fixed at construction.
type Client struct {
	client       *resty.Client
	apiKey       string
	model        string
	systemPrompt string
	maxTokens    int
	temperature  float64
	timeout      time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:       resty.New().SetBaseURL(cfg.BaseURL),
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		timeout:      timeout,
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, history []Message, userMessage string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: c.systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: userMessage})

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result completionResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.apiKey).
		SetBody(completionRequest{
			Model:       c.model,
			Messages:    messages,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
		}).
		SetResult(&result).
		Post("/chat/completions")

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrUpstreamTimeout
		}
		return "", fmt.Errorf("error calling llm provider: %w", err)
	}

	if !res.IsSuccess() {
		slog.Error("llm provider returned error", "status_code", res.StatusCode(), "body", res.String())
		return "", &UpstreamError{Status: res.StatusCode(), Body: res.String()}
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("llm provider returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
