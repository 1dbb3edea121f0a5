package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	connectionTestPrompt    = "Hello"
	connectionTestMaxTokens = 10
	// ErrorCodeMissingAPIKey is reported by TestConnection when no credential
	// is configured.
	ErrorCodeMissingAPIKey = "missing_api_key"
)

// Service runs the full generation pipeline. It holds only the immutable
// configuration and stateless collaborators, so one instance serves any
// number of concurrent requests.
type Service struct {
	cfg      Config
	provider Provider
	client   *ResilientClient
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

type serviceOptions struct {
	observer   Observer
	now        func() time.Time
	clientOpts []ClientOption
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

// WithServiceObserver reports generations, attempts and backoffs to o.
func WithServiceObserver(o Observer) ServiceOption {
	return func(so *serviceOptions) {
		so.observer = o
	}
}

// WithClock overrides the clock used for result timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(so *serviceOptions) {
		so.now = now
	}
}

// WithClientOptions passes options through to the ResilientClient.
func WithClientOptions(opts ...ClientOption) ServiceOption {
	return func(so *serviceOptions) {
		so.clientOpts = append(so.clientOpts, opts...)
	}
}

// NewService creates a Service. provider may be nil, in which case every
// generation fails with CONFIG_INVALID; this lets the process start and
// report its configuration problems instead of refusing to boot.
func NewService(cfg Config, provider Provider, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	so := serviceOptions{observer: noopObserver{}, now: time.Now}
	for _, opt := range opts {
		opt(&so)
	}
	if so.observer == nil {
		so.observer = noopObserver{}
	}

	s := &Service{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With("component", "generation_service"),
		observer: so.observer,
		now:      so.now,
	}
	if provider != nil {
		clientOpts := append([]ClientOption{WithObserver(so.observer)}, so.clientOpts...)
		s.client = NewResilientClient(provider, logger, clientOpts...)
	}
	return s
}

// Generate validates the configuration, builds the prompt, executes it and
// parses the reply. Every failure is a *ProviderError. An invalid
// configuration is reported as CONFIG_INVALID before any provider call.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := s.ready(); err != nil {
		s.logger.ErrorContext(ctx, "generation rejected", "detail", err.Detail())
		s.observer.ObserveGeneration(s.providerName(), err)
		return nil, err
	}

	prompt := BuildPrompt(req)
	s.logger.DebugContext(ctx, "generating ideas",
		"model", s.cfg.Model,
		"categories", len(req.Categories),
		"prompt_length", len(prompt))

	resp, err := s.client.Execute(ctx, prompt, s.cfg)
	if err != nil {
		pe := Classify(err)
		s.observer.ObserveGeneration(s.providerName(), pe)
		return nil, pe
	}

	result, err := ParseResponse(resp, req.Prompt, req.Categories, s.now)
	if err != nil {
		pe := Classify(err)
		s.logger.WarnContext(ctx, "provider reply could not be parsed", "detail", pe.Detail())
		s.observer.ObserveGeneration(s.providerName(), pe)
		return nil, pe
	}

	s.observer.ObserveGeneration(s.providerName(), nil)
	s.logger.InfoContext(ctx, "ideas generated",
		"model", result.Metadata.Model,
		"response_id", result.Metadata.ResponseID)
	return result, nil
}

// ConstructPrompt returns the prompt Generate would send for req without
// calling the provider.
func (s *Service) ConstructPrompt(req Request) string {
	return BuildPrompt(req)
}

// ConfigReport describes the active configuration without secrets.
type ConfigReport struct {
	Valid    bool       `json:"valid"`
	Issues   []string   `json:"issues"`
	Provider string     `json:"provider"`
	Config   SafeConfig `json:"config"`
}

// ConfigReport validates the configuration and returns a credential-free
// summary.
func (s *Service) ConfigReport() ConfigReport {
	v := s.cfg.Validate()
	return ConfigReport{
		Valid:    v.Valid,
		Issues:   v.Issues,
		Provider: s.providerName(),
		Config:   s.cfg.Safe(),
	}
}

// ConnectionReport is the outcome of TestConnection.
type ConnectionReport struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

// TestConnection sends a minimal completion to the provider with a single
// attempt and reports whether it succeeded.
func (s *Service) TestConnection(ctx context.Context) ConnectionReport {
	if s.cfg.APIKey == "" || s.client == nil {
		return ConnectionReport{
			Success: false,
			Message: "AI provider API key not configured",
			Error:   ErrorCodeMissingAPIKey,
			Kind:    KindConfigInvalid,
		}
	}

	cfg := s.cfg
	cfg.MaxTokens = connectionTestMaxTokens
	cfg.MaxRetries = 1

	resp, err := s.client.Execute(ctx, connectionTestPrompt, cfg)
	if err != nil {
		pe := Classify(err)
		s.logger.WarnContext(ctx, "provider connection test failed", "detail", pe.Detail())
		return ConnectionReport{
			Success: false,
			Message: "AI provider connection failed",
			Error:   pe.Message,
			Kind:    pe.Kind,
		}
	}

	model := cfg.Model
	if resp != nil && resp.Model != "" {
		model = resp.Model
	}
	return ConnectionReport{
		Success: true,
		Message: "AI provider connection successful",
		Model:   model,
	}
}

func (s *Service) ready() *ProviderError {
	if v := s.cfg.Validate(); !v.Valid {
		return NewProviderError(KindConfigInvalid,
			fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(v.Issues, "; ")))
	}
	if s.client == nil {
		return NewProviderError(KindConfigInvalid, ErrProviderUnavailable)
	}
	return nil
}

func (s *Service) providerName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}
