package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL,required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Hasab speech services (STT + TTS)
	HasabBaseURL string `env:"HASAB_BASE_URL,required"`
	HasabAPIKey  string `env:"HASAB_API_KEY,required"`

	// AI collaborator (OpenAI-compatible endpoint)
	AIAPIKey  string `env:"AI_API_KEY,required"`
	AIBaseURL string `env:"AI_BASE_URL" envDefault:""`
	AIModel   string `env:"AI_MODEL" envDefault:"gpt-4o-mini"`

	// Per-collaborator timeout budgets. The telephony platform keeps its own
	// record window open; every downstream call must finish inside it.
	STTTimeoutSeconds int `env:"STT_TIMEOUT_SECONDS" envDefault:"45"`
	TTSTimeoutSeconds int `env:"TTS_TIMEOUT_SECONDS" envDefault:"30"`
	AITimeoutSeconds  int `env:"AI_TIMEOUT_SECONDS" envDefault:"20"`

	// Voice prompt rendering
	VoiceLanguage    string `env:"VOICE_LANGUAGE" envDefault:"amh"`
	VoiceSpeaker     string `env:"VOICE_SPEAKER" envDefault:"selam"`
	SayLanguage      string `env:"SAY_LANGUAGE" envDefault:"am-ET"`
	RecordMaxSeconds int    `env:"RECORD_MAX_SECONDS" envDefault:"20"`

	TTSCacheTTLSeconds  int `env:"TTS_CACHE_TTL_SECONDS" envDefault:"3600"`
	SessionIdleTTLHours int `env:"SESSION_IDLE_TTL_HOURS" envDefault:"24"`

	RateLimitPerMin int `env:"RATE_LIMIT_PER_MIN" envDefault:"60"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) STTTimeout() time.Duration {
	return time.Duration(c.STTTimeoutSeconds) * time.Second
}

func (c *Config) TTSTimeout() time.Duration {
	return time.Duration(c.TTSTimeoutSeconds) * time.Second
}

func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

func (c *Config) TTSCacheTTL() time.Duration {
	return time.Duration(c.TTSCacheTTLSeconds) * time.Second
}

func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionIdleTTLHours) * time.Hour
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
