package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/ideaforge-api/internal/generation"
	"google.golang.org/genai"
)

// Name identifies this provider in logs and metrics.
const Name = "gemini"

// Options configures the Gemini provider.
type Options struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a test server.
	BaseURL string
	// HTTPClient is used for all requests; a default client when nil.
	HTTPClient *http.Client
}

// Provider implements generation.Provider using the genai SDK.
type Provider struct {
	logger *slog.Logger
	client *genai.Client
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a new Gemini provider.
//
// Parameters:
//   - ctx: Context for client initialization
//   - opts: API key and optional endpoint overrides
//   - logger: A structured logger for operation logging
//
// Returns:
//   - A ready Provider, or an error wrapping generation.ErrInvalidConfig
func NewProvider(ctx context.Context, opts Options, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Provider{
		logger: logger.With("component", "gemini_provider"),
		client: client,
	}, nil
}

// Name implements generation.Provider
func (p *Provider) Name() string {
	return Name
}

// Complete sends one GenerateContent request and converts the reply.
//
// Parameters:
//   - ctx: Context carrying the per-attempt deadline
//   - c: Model, prompt and sampling settings for the request
//
// Returns:
//   - The provider-neutral response
//   - A generation.Failure (or a wrapped transport error) on failure
func (p *Provider) Complete(ctx context.Context, c generation.Completion) (*generation.ProviderResponse, error) {
	temperature := float32(c.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(c.MaxTokens),
	}

	resp, err := p.client.Models.GenerateContent(ctx, c.Model, genai.Text(c.Prompt), config)
	if err != nil {
		return nil, toFailure(err)
	}

	p.logger.DebugContext(ctx, "Gemini response received",
		"model_version", resp.ModelVersion,
		"candidates", len(resp.Candidates))

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, &generation.Failure{
			Code:    generation.CodeContentFilter,
			Message: fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason),
		}
	}

	out := &generation.ProviderResponse{
		ID:      resp.ResponseID,
		Model:   resp.ModelVersion,
		Choices: make([]generation.Choice, 0, len(resp.Candidates)),
	}
	if out.Model == "" {
		out.Model = c.Model
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		out.Choices = append(out.Choices, generation.Choice{
			Text:         candidateText(candidate),
			FinishReason: string(candidate.FinishReason),
		})
	}

	if len(out.Choices) > 0 && out.Choices[0].Text == "" && blockedFinish(resp.Candidates[0].FinishReason) {
		return nil, &generation.Failure{
			Code:    generation.CodeContentFilter,
			Message: fmt.Sprintf("candidate blocked: %s", resp.Candidates[0].FinishReason),
		}
	}

	if u := resp.UsageMetadata; u != nil {
		out.Usage = &generation.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	return out, nil
}

// candidateText concatenates the non-thought text parts of a candidate.
func candidateText(candidate *genai.Candidate) string {
	if candidate.Content == nil {
		return ""
	}
	var text string
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text += part.Text
	}
	return text
}

func blockedFinish(reason genai.FinishReason) bool {
	switch reason {
	case genai.FinishReasonSafety,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSPII:
		return true
	}
	return false
}
