package generation

import (
	"fmt"
	"time"
)

// Bounds accepted by the providers for a single completion.
const (
	MinMaxTokens   = 1
	MaxMaxTokens   = 4096
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Defaults applied when the process configuration leaves a value unset.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = time.Second
)

// Config holds the settings for talking to the AI provider. It is built once
// at process start and treated as immutable afterwards.
type Config struct {
	Model       string
	APIKey      string `json:"-"`
	MaxTokens   int
	Temperature float64
	// Timeout bounds a single attempt, not the whole call.
	Timeout    time.Duration
	MaxRetries int
	// RetryDelay is the base of the exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config populated with the default values and no
// credential.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  DefaultRetryDelay,
	}
}

// ValidationResult lists every problem found in a Config.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// Validate checks the configuration and collects all issues found. It never
// stops at the first problem.
func (c Config) Validate() ValidationResult {
	issues := make([]string, 0)

	if c.APIKey == "" {
		issues = append(issues, "IDEAFORGE_LLM_API_KEY environment variable is required")
	}
	if c.Model == "" {
		issues = append(issues, "IDEAFORGE_LLM_MODEL must not be empty")
	}
	if c.MaxTokens < MinMaxTokens || c.MaxTokens > MaxMaxTokens {
		issues = append(issues, fmt.Sprintf(
			"IDEAFORGE_LLM_MAX_TOKENS must be between %d and %d", MinMaxTokens, MaxMaxTokens))
	}
	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		issues = append(issues, fmt.Sprintf(
			"IDEAFORGE_LLM_TEMPERATURE must be between %g and %g", MinTemperature, MaxTemperature))
	}
	if c.Timeout <= 0 {
		issues = append(issues, "IDEAFORGE_LLM_TIMEOUT_MS must be positive")
	}
	if c.MaxRetries < 0 {
		issues = append(issues, "IDEAFORGE_LLM_MAX_RETRIES must not be negative")
	}
	if c.RetryDelay <= 0 {
		issues = append(issues, "IDEAFORGE_LLM_RETRY_DELAY_MS must be positive")
	}

	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// attempts returns how many times a request may be sent. A MaxRetries of zero
// still allows a single attempt.
func (c Config) attempts() int {
	if c.MaxRetries < 1 {
		return 1
	}
	return c.MaxRetries
}

// SafeConfig is the credential-free view of a Config.
type SafeConfig struct {
	Model        string  `json:"model"`
	MaxTokens    int     `json:"max_tokens"`
	Temperature  float64 `json:"temperature"`
	TimeoutMS    int64   `json:"timeout_ms"`
	MaxRetries   int     `json:"max_retries"`
	RetryDelayMS int64   `json:"retry_delay_ms"`
	HasAPIKey    bool    `json:"has_api_key"`
}

// Safe returns the configuration with the credential replaced by a presence
// flag.
func (c Config) Safe() SafeConfig {
	return SafeConfig{
		Model:        c.Model,
		MaxTokens:    c.MaxTokens,
		Temperature:  c.Temperature,
		TimeoutMS:    c.Timeout.Milliseconds(),
		MaxRetries:   c.MaxRetries,
		RetryDelayMS: c.RetryDelay.Milliseconds(),
		HasAPIKey:    c.APIKey != "",
	}
}
