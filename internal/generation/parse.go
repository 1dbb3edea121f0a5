package generation

import (
	"fmt"
	"time"
)

// Result is the canonical outcome of a successful generation.
type Result struct {
	Success       bool     `json:"success"`
	GeneratedText string   `json:"generated_content"`
	Metadata      Metadata `json:"metadata"`
}

// Metadata describes how a Result was produced. Token counts are nil when the
// provider did not report usage.
type Metadata struct {
	Model            string    `json:"model"`
	PromptTokens     *int      `json:"prompt_tokens,omitempty"`
	CompletionTokens *int      `json:"completion_tokens,omitempty"`
	TotalTokens      *int      `json:"total_tokens,omitempty"`
	FinishReason     string    `json:"finish_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	OriginalPrompt   string    `json:"original_prompt"`
	CategoriesUsed   []string  `json:"categories_used"`
	ResponseID       string    `json:"response_id,omitempty"`
}

// ParseResponse extracts the generated text and metadata from resp. The text
// of the first choice is required; everything else is optional and read
// defensively. A reply without usable text yields a PARSE_ERROR failure.
func ParseResponse(
	resp *ProviderResponse,
	originalPrompt string,
	categories []Category,
	now func() time.Time,
) (*Result, error) {
	if resp == nil {
		return nil, parseError("nil response")
	}
	if len(resp.Choices) == 0 {
		return nil, parseError("no choices in response")
	}

	first := resp.Choices[0]
	if first.Text == "" {
		return nil, parseError("empty text in first choice")
	}

	if now == nil {
		now = time.Now
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	meta := Metadata{
		Model:          resp.Model,
		FinishReason:   first.FinishReason,
		CreatedAt:      now().UTC(),
		OriginalPrompt: originalPrompt,
		CategoriesUsed: names,
		ResponseID:     resp.ID,
	}
	if resp.Usage != nil {
		meta.PromptTokens = intPtr(resp.Usage.PromptTokens)
		meta.CompletionTokens = intPtr(resp.Usage.CompletionTokens)
		meta.TotalTokens = intPtr(resp.Usage.TotalTokens)
	}

	return &Result{
		Success:       true,
		GeneratedText: first.Text,
		Metadata:      meta,
	}, nil
}

func parseError(reason string) *ProviderError {
	return NewProviderError(KindParse, fmt.Errorf("%w: %s", ErrInvalidResponse, reason))
}

func intPtr(v int) *int {
	return &v
}
