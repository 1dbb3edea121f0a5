package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "IDEAFORGE"

// keys lists every configuration key so that viper resolves it from the
// environment during Unmarshal.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.log_format",
	"database.url",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"llm.provider",
	"llm.api_key",
	"llm.base_url",
	"llm.model",
	"llm.max_tokens",
	"llm.temperature",
	"llm.timeout_ms",
	"llm.max_retries",
	"llm.retry_delay_ms",
	"cache.redis_url",
	"cache.category_ttl_seconds",
}

// providerKeyFallbacks are conventional provider variables consulted when
// IDEAFORGE_LLM_API_KEY is unset.
var providerKeyFallbacks = []string{"OPENAI_API_KEY", "GEMINI_API_KEY"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_ms", 30000)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_ms", 1000)
	v.SetDefault("cache.category_ttl_seconds", 600)
}

// Load reads configuration from config.yaml in the working directory (if
// present), a .env file (if present) and the environment, then validates it.
// Environment variables take precedence over the config file.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory for config.yaml and .env.
func LoadFrom(dir string) (*Config, error) {
	// .env never overrides variables that are already set.
	if err := godotenv.Load(dir + "/.env"); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = firstEnv(providerKeyFallbacks)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
