package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/ideaforge-api/internal/generation"
)

// ProviderResult is one scripted outcome of MockProvider.Complete.
type ProviderResult struct {
	Response *generation.ProviderResponse
	Err      error
}

// MockProvider implements generation.Provider for testing.
//
// Complete resolves its outcome in this order: CompleteFn if set, then the
// next entry of Script, then Response/Err. Once Script is exhausted its last
// entry is repeated.
type MockProvider struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, c generation.Completion) (*generation.ProviderResponse, error)

	// Script lists outcomes returned by successive calls
	Script []ProviderResult

	// Default response values
	Response *generation.ProviderResponse
	Err      error

	// ProviderName is returned by Name; defaults to "mock"
	ProviderName string

	mu          sync.Mutex
	completions []generation.Completion
}

var _ generation.Provider = (*MockProvider)(nil)

// Complete implements the generation.Provider interface
func (m *MockProvider) Complete(
	ctx context.Context,
	c generation.Completion,
) (*generation.ProviderResponse, error) {
	m.mu.Lock()
	call := len(m.completions)
	m.completions = append(m.completions, c)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, c)
	}

	if len(m.Script) > 0 {
		idx := call
		if idx >= len(m.Script) {
			idx = len(m.Script) - 1
		}
		return m.Script[idx].Response, m.Script[idx].Err
	}

	return m.Response, m.Err
}

// Name implements the generation.Provider interface
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Calls returns how many times Complete was called
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.completions)
}

// Completions returns a copy of every completion request received
func (m *MockProvider) Completions() []generation.Completion {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]generation.Completion, len(m.completions))
	copy(out, m.completions)
	return out
}

// NewMockProviderWithText creates a MockProvider that answers every request
// with a single choice containing text
func NewMockProviderWithText(text string) *MockProvider {
	return &MockProvider{
		Response: &generation.ProviderResponse{
			ID:    "resp-mock",
			Model: "mock-model",
			Choices: []generation.Choice{
				{Text: text, FinishReason: "stop"},
			},
			Usage: &generation.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		},
	}
}

// NewMockProviderWithError creates a MockProvider that fails every request
// with err
func NewMockProviderWithError(err error) *MockProvider {
	return &MockProvider{Err: err}
}
