package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrica/voice-gateway-go/internal/model"
)

type stubAI struct {
	intent     model.Intent
	confidence model.Confidence
	err        error
	calls      int
}

func (s *stubAI) ClassifyIntent(ctx context.Context, text string) (model.Intent, model.Confidence, error) {
	s.calls++
	if s.err != nil {
		return model.IntentUnknown, model.ConfidenceLow, s.err
	}
	return s.intent, s.confidence, nil
}

func TestClassifyKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected model.Intent
	}{
		{"amharic registration", "መመዝገብ እፈልጋለሁ", model.IntentRegisterFarmer},
		{"english registration", "I want to register", model.IntentRegisterFarmer},
		{"amharic sell", "ጤፍ መሸጥ እፈልጋለሁ", model.IntentSellCrops},
		{"amharic price", "የጤፍ ዋጋ ስንት ነው", model.IntentCheckPrices},
		{"amharic advice", "ምክር እፈልጋለሁ", model.IntentFarmingAdvice},
		{"uppercase english", "REGISTER me please", model.IntentRegisterFarmer},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ai := &stubAI{}
			classifier := NewClassifier(ai)

			intent, confidence := classifier.Classify(context.Background(), tc.text)

			assert.Equal(t, tc.expected, intent)
			assert.Equal(t, model.ConfidenceMedium, confidence)
			assert.Zero(t, ai.calls, "keyword hit must not invoke the AI fallback")
		})
	}
}

func TestClassifyAIFallback(t *testing.T) {
	t.Run("delegates unmatched text to the collaborator", func(t *testing.T) {
		ai := &stubAI{intent: model.IntentFarmingAdvice, confidence: model.ConfidenceHigh}
		classifier := NewClassifier(ai)

		intent, confidence := classifier.Classify(context.Background(), "የበቆሎ ተባይ እንዴት እከላከላለሁ")

		assert.Equal(t, model.IntentFarmingAdvice, intent)
		assert.Equal(t, model.ConfidenceHigh, confidence)
		assert.Equal(t, 1, ai.calls)
	})

	t.Run("collaborator failure degrades to unknown low", func(t *testing.T) {
		ai := &stubAI{err: errors.New("model unreachable")}
		classifier := NewClassifier(ai)

		intent, confidence := classifier.Classify(context.Background(), "ስለ አየር ሁኔታ")

		assert.Equal(t, model.IntentUnknown, intent)
		assert.Equal(t, model.ConfidenceLow, confidence)
	})
}
