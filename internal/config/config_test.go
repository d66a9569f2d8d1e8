package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("timeout accessors convert seconds to duration", func(t *testing.T) {
		cfg := &Config{STTTimeoutSeconds: 45, TTSTimeoutSeconds: 30, AITimeoutSeconds: 20}
		assert.Equal(t, 45*time.Second, cfg.STTTimeout())
		assert.Equal(t, 30*time.Second, cfg.TTSTimeout())
		assert.Equal(t, 20*time.Second, cfg.AITimeout())
	})

	t.Run("SessionIdleTTL converts hours to duration", func(t *testing.T) {
		cfg := &Config{SessionIdleTTLHours: 24}
		assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL())
	})
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "LOG_LEVEL",
		"HASAB_BASE_URL", "HASAB_API_KEY", "AI_API_KEY", "AI_MODEL",
		"STT_TIMEOUT_SECONDS", "RECORD_MAX_SECONDS",
	}
	originalEnv := map[string]string{}
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	setRequired := func() {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("HASAB_BASE_URL", "https://api.hasab.example")
		os.Setenv("HASAB_API_KEY", "test-key")
		os.Setenv("AI_API_KEY", "test-key")
	}

	t.Run("loads config with defaults", func(t *testing.T) {
		setRequired()
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("AI_MODEL")
		os.Unsetenv("STT_TIMEOUT_SECONDS")
		os.Unsetenv("RECORD_MAX_SECONDS")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
		assert.Equal(t, 45, cfg.STTTimeoutSeconds)
		assert.Equal(t, 20, cfg.RecordMaxSeconds)
		assert.Equal(t, "amh", cfg.VoiceLanguage)
		assert.Equal(t, "am-ET", cfg.SayLanguage)
	})

	t.Run("loads custom values", func(t *testing.T) {
		setRequired()
		os.Setenv("PORT", "9090")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("STT_TIMEOUT_SECONDS", "60")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 60*time.Second, cfg.STTTimeout())
	})

	t.Run("fails when required values are missing", func(t *testing.T) {
		setRequired()
		os.Unsetenv("DATABASE_URL")

		_, err := Load()
		assert.Error(t, err)
	})
}
