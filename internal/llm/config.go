package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single Generate call including retries. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-2.5-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Any OpenAI-compatible endpoint.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.5-flash"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays QUIZGEN_* environment variables onto c.
func (c *Config) ApplyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Provider, "QUIZGEN_LLM_PROVIDER")

	setString(&c.Gemini.APIKey, "QUIZGEN_GEMINI_API_KEY")
	setString(&c.Gemini.Model, "QUIZGEN_GEMINI_MODEL")

	setString(&c.OpenAI.APIKey, "QUIZGEN_OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "QUIZGEN_OPENAI_MODEL")
	setString(&c.OpenAI.BaseURL, "QUIZGEN_OPENAI_BASE_URL")

	setString(&c.Anthropic.APIKey, "QUIZGEN_ANTHROPIC_API_KEY")
	setString(&c.Anthropic.Model, "QUIZGEN_ANTHROPIC_MODEL")

	setString(&c.OpenRouter.APIKey, "QUIZGEN_OPENROUTER_API_KEY")
	setString(&c.OpenRouter.Model, "QUIZGEN_OPENROUTER_MODEL")

	if v := os.Getenv("QUIZGEN_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("QUIZGEN_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retry.MaxAttempts = n
		}
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	if cfg.discoverKey() {
		return cfg, true
	}
	return Config{}, false
}

// FillFromStandardEnv fills in a missing API key from the provider's
// standard variable (GEMINI_API_KEY and friends). When the selected
// provider has no key anywhere, it switches to the first provider that has
// one. Reports whether c ended up with a usable key.
func (c *Config) FillFromStandardEnv() bool {
	if c.Validate() == nil {
		return true
	}
	if key := os.Getenv(standardKeyVar(c.Provider)); key != "" {
		c.setKey(c.Provider, key)
		return true
	}
	return c.discoverKey()
}

func (c *Config) discoverKey() bool {
	for _, p := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		if k := os.Getenv(standardKeyVar(p)); k != "" {
			c.Provider = p
			c.setKey(p, k)
			return true
		}
	}
	return false
}

func standardKeyVar(provider string) string {
	switch provider {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	}
	return ""
}

func (c *Config) setKey(provider, key string) {
	switch provider {
	case "gemini":
		c.Gemini.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or QUIZGEN_GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY (or QUIZGEN_OPENAI_API_KEY) is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY (or QUIZGEN_ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY (or QUIZGEN_OPENROUTER_API_KEY) is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
