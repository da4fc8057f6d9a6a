package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"DocumentExtractionSystem/pkg/providers"
)

var configEnv = []string{
	"PORT", "LLM_PROVIDER",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"LLM_TEMPERATURE", "LLM_REQUESTS_PER_SECOND", "LLM_TIMEOUT", "MAX_UPLOAD_BYTES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, providers.OpenAI, cfg.Provider)
	require.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	require.Equal(t, "gpt-4", cfg.OpenAIModel)
	require.InDelta(t, 0.1, cfg.Temperature, 1e-6)
	require.Zero(t, cfg.RequestsPerSecond)
	require.Zero(t, cfg.Timeout)
	require.EqualValues(t, 10485760, cfg.MaxUploadBytes)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("LLM_TEMPERATURE", "0")
	t.Setenv("LLM_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, providers.Gemini, cfg.Provider)
	require.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	require.Zero(t, cfg.Temperature)
	require.Equal(t, 2.5, cfg.RequestsPerSecond)
	require.Equal(t, 90*time.Second, cfg.Timeout)
	require.EqualValues(t, 1024, cfg.MaxUploadBytes)
}

func TestFromEnvMissingCredential(t *testing.T) {
	tests := []struct {
		name     string
		provider string
	}{
		{"openai", "openai"},
		{"gemini", "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LLM_PROVIDER", tt.provider)

			_, err := FromEnv()
			require.ErrorIs(t, err, providers.ErrMissingAPIKey)
		})
	}
}

func TestFromEnvInvalidValues(t *testing.T) {
	tests := map[string]string{
		"LLM_PROVIDER":            "llama",
		"LLM_TEMPERATURE":         "warm",
		"LLM_REQUESTS_PER_SECOND": "many",
		"LLM_TIMEOUT":             "soon",
		"MAX_UPLOAD_BYTES":        "10MB",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv(key, value)

			_, err := FromEnv()
			require.Error(t, err)
		})
	}
}

func TestInitCompleter(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	c, err := InitCompleter(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &providers.OpenAICompleter{}, c)

	cfg.RequestsPerSecond = 1
	c, err = InitCompleter(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &providers.Limited{}, c)
}
