package generation

import "context"

// Provider sends one completion request to an AI provider. It is the
// boundary between the pipeline and a concrete transport.
//
// Implementations must honour ctx cancellation and should return failures as
// a *Failure (possibly wrapped) so that Classify can read the provider's
// status and error code. Transport errors from net/http may be returned as-is.
type Provider interface {
	Complete(ctx context.Context, c Completion) (*ProviderResponse, error)
	Name() string
}

// Completion is a transport-neutral completion request.
type Completion struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ProviderResponse is a transport-neutral provider reply.
type ProviderResponse struct {
	ID      string
	Model   string
	Choices []Choice
	// Usage is nil when the provider did not report token counts.
	Usage *Usage
}

// Choice is one candidate completion.
type Choice struct {
	Text         string
	FinishReason string
}

// Usage reports token counts for a completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
