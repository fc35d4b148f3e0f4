// Package openai provides a completer for OpenAI-compatible chat completion
// APIs (OpenRouter by default) using the official SDK. It converts between
// domain types and SDK types and makes exactly one attempt per request.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/pdfnotes/internal/domain"
	"github.com/davidbz/pdfnotes/internal/observability"
)

const (
	// ProviderName identifies this completer in the registry.
	ProviderName = "openrouter"

	defaultTimeout = 60 * time.Second
	appTitle       = "PDF AI Notes"
)

// Provider implements the domain.Completer interface for OpenAI-compatible APIs.
type Provider struct {
	client openai.Client
	name   string
}

// NewProvider creates a new provider. A missing API key is not an error here;
// calls fail with the provider's authentication error instead.
func NewProvider(config Config) (*Provider, error) {
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", config.BaseURL)
	}

	timeout := defaultTimeout
	if config.Timeout > 0 {
		timeout = time.Duration(config.Timeout) * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithBaseURL(config.BaseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
		option.WithHeader("X-Title", appTitle),
	}

	return &Provider{
		client: openai.NewClient(opts...),
		name:   ProviderName,
	}, nil
}

// Complete sends a single chat completion request and returns the first choice.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling completion API",
		observability.Int("messages", len(req.Messages)),
		observability.Int("max_tokens", req.MaxTokens))

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(req))
	if err != nil {
		logger.Error("completion API call failed", observability.Error(err))
		return nil, err
	}

	logger.Debug("completion API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
		observability.Int("choices", len(resp.Choices)))

	return toDomainResult(resp), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// toSDKParams converts domain request to SDK ChatCompletionNewParams.
func (p *Provider) toSDKParams(req *domain.CompletionRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}

	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	return params
}

// toDomainResult converts SDK response to domain result.
func toDomainResult(resp *openai.ChatCompletion) *domain.CompletionResult {
	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &domain.CompletionResult{
		ID:      resp.ID,
		Model:   string(resp.Model),
		Content: content,
		Usage: domain.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}
}
