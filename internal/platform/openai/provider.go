// Package openai adapts the OpenAI chat completions API to the
// generation.Provider interface.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/ideaforge-api/internal/generation"
	gopenai "github.com/sashabaranov/go-openai"
)

// Name identifies this provider in logs and metrics.
const Name = "openai"

const finishReasonContentFilter = "content_filter"

// Options configures the OpenAI provider.
type Options struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a proxy or a test server.
	BaseURL string
	// HTTPClient is used for all requests; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Provider implements generation.Provider using go-openai.
type Provider struct {
	client *gopenai.Client
	logger *slog.Logger
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates an OpenAI provider. Timeouts and retries are applied by
// the caller per attempt, so the HTTP client should not set its own timeout.
func NewProvider(opts Options, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}

	cfg := gopenai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	return &Provider{
		client: gopenai.NewClientWithConfig(cfg),
		logger: logger.With("component", "openai_provider"),
	}, nil
}

// Name implements generation.Provider
func (p *Provider) Name() string {
	return Name
}

// Complete implements generation.Provider
func (p *Provider) Complete(ctx context.Context, c generation.Completion) (*generation.ProviderResponse, error) {
	req := gopenai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleUser, Content: c.Prompt},
		},
		MaxTokens:   c.MaxTokens,
		Temperature: float32(c.Temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, toFailure(err)
	}

	p.logger.DebugContext(ctx, "chat completion received",
		"model", resp.Model,
		"choices", len(resp.Choices),
		"total_tokens", resp.Usage.TotalTokens)

	out := &generation.ProviderResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Choices: make([]generation.Choice, 0, len(resp.Choices)),
	}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, generation.Choice{
			Text:         choice.Message.Content,
			FinishReason: string(choice.FinishReason),
		})
	}

	// A filtered reply arrives as a successful response with no content.
	if len(out.Choices) > 0 && out.Choices[0].Text == "" &&
		out.Choices[0].FinishReason == finishReasonContentFilter {
		return nil, &generation.Failure{
			Code:    generation.CodeContentFilter,
			Message: "completion was blocked by the content filter",
		}
	}

	if u := resp.Usage; u.PromptTokens != 0 || u.CompletionTokens != 0 || u.TotalTokens != 0 {
		out.Usage = &generation.Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}

	return out, nil
}

// toFailure converts go-openai errors into a generation.Failure. Transport
// errors are returned wrapped so that network and timeout causes stay
// visible to the classifier.
func toFailure(err error) error {
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		return &generation.Failure{
			Status:  apiErr.HTTPStatusCode,
			Code:    apiErrorCode(apiErr),
			Message: apiErr.Message,
			Err:     err,
		}
	}

	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) {
		return &generation.Failure{
			Status:  reqErr.HTTPStatusCode,
			Message: http.StatusText(reqErr.HTTPStatusCode),
			Err:     err,
		}
	}

	return fmt.Errorf("openai: %w", err)
}

func apiErrorCode(e *gopenai.APIError) string {
	if e.InnerError != nil && e.InnerError.Code == "ResponsibleAIPolicyViolation" {
		return generation.CodeContentFilter
	}
	if code, ok := e.Code.(string); ok && code != "" {
		return code
	}
	return e.Type
}
