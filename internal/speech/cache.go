package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/redis"
)

// CachedBridge fronts a Bridge with a redis cache of synthesized audio URLs.
// The engine replays the same fixed prompts on every call, so most TTS round
// trips are avoidable. Cache failures degrade to a plain synthesis call.
type CachedBridge struct {
	inner Bridge
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedBridge(inner Bridge, redisClient *redis.Client, ttl time.Duration) *CachedBridge {
	return &CachedBridge{inner: inner, redis: redisClient, ttl: ttl}
}

func (c *CachedBridge) Transcribe(ctx context.Context, audioURL, language string) (string, error) {
	return c.inner.Transcribe(ctx, audioURL, language)
}

func (c *CachedBridge) Synthesize(ctx context.Context, text string, opts VoiceOptions) (string, error) {
	key := redis.TTSCacheKey(digest(text, opts))

	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && err != goredis.Nil {
		log.Warn().Err(err).Msg("tts cache lookup failed")
	}

	audioURL, err := c.inner.Synthesize(ctx, text, opts)
	if err != nil {
		return "", err
	}

	if err := c.redis.Set(ctx, key, audioURL, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("tts cache store failed")
	}
	return audioURL, nil
}

func digest(text string, opts VoiceOptions) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", opts.Language, opts.Speaker, text)))
	return hex.EncodeToString(sum[:])
}
