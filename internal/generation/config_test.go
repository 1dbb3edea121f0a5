package generation_test

import (
	"testing"
	"time"

	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
)

func validConfig() generation.Config {
	cfg := generation.DefaultConfig()
	cfg.APIKey = "sk-test-key"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(c *generation.Config)
		wantValid  bool
		wantIssues []string
	}{
		{
			name:      "valid config",
			mutate:    func(c *generation.Config) {},
			wantValid: true,
		},
		{
			name:       "missing api key",
			mutate:     func(c *generation.Config) { c.APIKey = "" },
			wantIssues: []string{"IDEAFORGE_LLM_API_KEY environment variable is required"},
		},
		{
			name:       "max tokens too high",
			mutate:     func(c *generation.Config) { c.MaxTokens = 5000 },
			wantIssues: []string{"IDEAFORGE_LLM_MAX_TOKENS must be between 1 and 4096"},
		},
		{
			name:       "max tokens zero",
			mutate:     func(c *generation.Config) { c.MaxTokens = 0 },
			wantIssues: []string{"IDEAFORGE_LLM_MAX_TOKENS must be between 1 and 4096"},
		},
		{
			name:       "negative temperature",
			mutate:     func(c *generation.Config) { c.Temperature = -0.1 },
			wantIssues: []string{"IDEAFORGE_LLM_TEMPERATURE must be between 0 and 2"},
		},
		{
			name:       "temperature above range",
			mutate:     func(c *generation.Config) { c.Temperature = 2.1 },
			wantIssues: []string{"IDEAFORGE_LLM_TEMPERATURE must be between 0 and 2"},
		},
		{
			name:      "boundary values",
			mutate:    func(c *generation.Config) { c.MaxTokens = 4096; c.Temperature = 2 },
			wantValid: true,
		},
		{
			name:      "zero retries allowed",
			mutate:    func(c *generation.Config) { c.MaxRetries = 0 },
			wantValid: true,
		},
		{
			name: "all issues collected",
			mutate: func(c *generation.Config) {
				c.APIKey = ""
				c.MaxTokens = 5000
				c.Temperature = -0.1
			},
			wantIssues: []string{
				"IDEAFORGE_LLM_API_KEY environment variable is required",
				"IDEAFORGE_LLM_MAX_TOKENS must be between 1 and 4096",
				"IDEAFORGE_LLM_TEMPERATURE must be between 0 and 2",
			},
		},
		{
			name: "timing fields",
			mutate: func(c *generation.Config) {
				c.Timeout = 0
				c.RetryDelay = -time.Second
				c.MaxRetries = -1
				c.Model = ""
			},
			wantIssues: []string{
				"IDEAFORGE_LLM_MODEL must not be empty",
				"IDEAFORGE_LLM_TIMEOUT_MS must be positive",
				"IDEAFORGE_LLM_MAX_RETRIES must not be negative",
				"IDEAFORGE_LLM_RETRY_DELAY_MS must be positive",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			result := cfg.Validate()

			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantValid {
				assert.Empty(t, result.Issues)
				assert.NotNil(t, result.Issues)
			} else {
				assert.Equal(t, tt.wantIssues, result.Issues)
			}
		})
	}
}

func TestConfigSafe(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	safe := cfg.Safe()

	assert.True(t, safe.HasAPIKey)
	assert.Equal(t, generation.DefaultModel, safe.Model)
	assert.Equal(t, int64(30000), safe.TimeoutMS)
	assert.Equal(t, int64(1000), safe.RetryDelayMS)

	cfg.APIKey = ""
	assert.False(t, cfg.Safe().HasAPIKey)
}
