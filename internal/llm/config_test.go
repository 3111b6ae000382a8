package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearKeyEnv blanks every variable the config layer reads.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZGEN_LLM_PROVIDER", "QUIZGEN_LLM_TIMEOUT", "QUIZGEN_LLM_MAX_ATTEMPTS",
		"QUIZGEN_GEMINI_API_KEY", "QUIZGEN_GEMINI_MODEL",
		"QUIZGEN_OPENAI_API_KEY", "QUIZGEN_OPENAI_MODEL", "QUIZGEN_OPENAI_BASE_URL",
		"QUIZGEN_ANTHROPIC_API_KEY", "QUIZGEN_ANTHROPIC_MODEL",
		"QUIZGEN_OPENROUTER_API_KEY", "QUIZGEN_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestConfigFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("QUIZGEN_LLM_PROVIDER", "openai")
	t.Setenv("QUIZGEN_OPENAI_API_KEY", "sk-env")
	t.Setenv("QUIZGEN_OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("QUIZGEN_LLM_TIMEOUT", "5s")
	t.Setenv("QUIZGEN_LLM_MAX_ATTEMPTS", "1")

	cfg := ConfigFromEnv()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_IgnoresBadNumbers(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("QUIZGEN_LLM_TIMEOUT", "soon")
	t.Setenv("QUIZGEN_LLM_MAX_ATTEMPTS", "-2")

	cfg := ConfigFromEnv()
	assert.Equal(t, DefaultConfig().Timeout, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestDiscoverConfig_GeminiFirst(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
}

func TestDiscoverConfig_None(t *testing.T) {
	clearKeyEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)
}

func TestFillFromStandardEnv(t *testing.T) {
	t.Run("already valid", func(t *testing.T) {
		clearKeyEnv(t)
		cfg := DefaultConfig()
		cfg.Gemini.APIKey = "explicit"
		require.True(t, cfg.FillFromStandardEnv())
		assert.Equal(t, "explicit", cfg.Gemini.APIKey)
	})

	t.Run("selected provider standard key", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "a-key")
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg := DefaultConfig()
		cfg.Provider = "anthropic"
		require.True(t, cfg.FillFromStandardEnv())
		assert.Equal(t, "anthropic", cfg.Provider)
		assert.Equal(t, "a-key", cfg.Anthropic.APIKey)
	})

	t.Run("falls back to another provider", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("OPENROUTER_API_KEY", "or-key")
		cfg := DefaultConfig()
		require.True(t, cfg.FillFromStandardEnv())
		assert.Equal(t, "openrouter", cfg.Provider)
		assert.Equal(t, "or-key", cfg.OpenRouter.APIKey)
	})

	t.Run("nothing found", func(t *testing.T) {
		clearKeyEnv(t)
		cfg := DefaultConfig()
		assert.False(t, cfg.FillFromStandardEnv())
	})
}
