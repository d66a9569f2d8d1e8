package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeAdvice(t *testing.T) {
	t.Run("decodes well-formed reply", func(t *testing.T) {
		raw := `{"intent":"general_advice","confidence_level":"high","response_for_farmer":"ማዳበሪያ ይጠቀሙ።"}`
		reply := DecodeAdvice(raw)
		assert.Equal(t, "ማዳበሪያ ይጠቀሙ።", reply.ResponseForFarmer)
		assert.Equal(t, "high", reply.ConfidenceLevel)
	})

	t.Run("decodes fenced reply", func(t *testing.T) {
		raw := "```json\n{\"response_for_farmer\":\"ውሃ ያጠጡ።\"}\n```"
		reply := DecodeAdvice(raw)
		assert.Equal(t, "ውሃ ያጠጡ።", reply.ResponseForFarmer)
	})

	t.Run("falls back to raw text for prose reply", func(t *testing.T) {
		reply := DecodeAdvice("  Use fertilizer twice per season.  ")
		assert.Equal(t, "Use fertilizer twice per season.", reply.ResponseForFarmer)
		assert.Equal(t, "low", reply.ConfidenceLevel)
	})

	t.Run("falls back when JSON lacks farmer message", func(t *testing.T) {
		raw := `{"intent":"weather"}`
		reply := DecodeAdvice(raw)
		assert.Equal(t, raw, reply.ResponseForFarmer)
	})
}

func TestDecodeIntent(t *testing.T) {
	t.Run("decodes well-formed reply", func(t *testing.T) {
		reply := DecodeIntent(`{"intent":"sell_crops","confidence_level":"high"}`)
		assert.Equal(t, "sell_crops", reply.Intent)
		assert.Equal(t, "high", reply.ConfidenceLevel)
	})

	t.Run("defaults missing confidence to low", func(t *testing.T) {
		reply := DecodeIntent(`{"intent":"check_prices"}`)
		assert.Equal(t, "low", reply.ConfidenceLevel)
	})

	t.Run("falls back to unknown for prose reply", func(t *testing.T) {
		reply := DecodeIntent("the farmer probably wants to sell")
		assert.Equal(t, "unknown", reply.Intent)
		assert.Equal(t, "low", reply.ConfidenceLevel)
	})
}

func TestDecodeVerification(t *testing.T) {
	t.Run("decodes and clamps score", func(t *testing.T) {
		reply, ok := DecodeVerification(`{"score":140,"quality_label":"high","reasons":["plausible price"]}`)
		assert.True(t, ok)
		assert.Equal(t, float64(100), reply.Score)
		assert.Equal(t, []string{"plausible price"}, reply.Reasons)
	})

	t.Run("reports unusable reply", func(t *testing.T) {
		_, ok := DecodeVerification("looks fine to me")
		assert.False(t, ok)
	})
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"fence with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripFences(tc.raw))
		})
	}
}
