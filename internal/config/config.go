package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`
}

// DatabaseConfig contains the category database settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains bearer-token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// LLMConfig contains the AI provider settings.
//
// The numeric fields are deliberately not range-checked here: an out-of-range
// value must not stop the server from starting. The generation package
// validates them and reports problems through the config endpoint and as
// CONFIG_INVALID errors.
type LLMConfig struct {
	Provider     string  `mapstructure:"provider"       validate:"required,oneof=openai gemini"`
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"       validate:"omitempty,url"`
	Model        string  `mapstructure:"model"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
	TimeoutMS    int     `mapstructure:"timeout_ms"`
	MaxRetries   int     `mapstructure:"max_retries"`
	RetryDelayMS int     `mapstructure:"retry_delay_ms"`
}

// CacheConfig contains the optional Redis category cache settings. An empty
// RedisURL disables the cache.
type CacheConfig struct {
	RedisURL           string `mapstructure:"redis_url"            validate:"omitempty,url"`
	CategoryTTLSeconds int    `mapstructure:"category_ttl_seconds" validate:"gte=0"`
}
