package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/model"
)

type fakeClient struct {
	reply string
	err   error
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func TestAdvisorAdvise(t *testing.T) {
	t.Run("returns farmer-facing text", func(t *testing.T) {
		advisor := NewAdvisor(&fakeClient{reply: `{"response_for_farmer":"ጤፍዎን በደንብ ያጠጡ።"}`})
		text, err := advisor.Advise(context.Background(), "ጤፍ እንዴት ይተክላል?")
		require.NoError(t, err)
		assert.Equal(t, "ጤፍዎን በደንብ ያጠጡ።", text)
	})

	t.Run("maps transport failure to AI error", func(t *testing.T) {
		advisor := NewAdvisor(&fakeClient{err: errors.New("connection reset")})
		_, err := advisor.Advise(context.Background(), "question")
		assert.Equal(t, apperrors.ErrCodeAI, apperrors.GetCode(err))
	})

	t.Run("tolerates prose reply", func(t *testing.T) {
		advisor := NewAdvisor(&fakeClient{reply: "Water your teff weekly."})
		text, err := advisor.Advise(context.Background(), "question")
		require.NoError(t, err)
		assert.Equal(t, "Water your teff weekly.", text)
	})
}

func TestAdvisorClassifyIntent(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		intent     model.Intent
		confidence model.Confidence
	}{
		{"valid intent", `{"intent":"sell_crops","confidence_level":"high"}`, model.IntentSellCrops, model.ConfidenceHigh},
		{"out-of-set intent downgraded", `{"intent":"weather","confidence_level":"high"}`, model.IntentUnknown, model.ConfidenceHigh},
		{"prose reply", "probably selling", model.IntentUnknown, model.ConfidenceLow},
		{"bad confidence defaulted", `{"intent":"check_prices","confidence_level":"certain"}`, model.IntentCheckPrices, model.ConfidenceLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			advisor := NewAdvisor(&fakeClient{reply: tc.reply})
			intent, confidence, err := advisor.ClassifyIntent(context.Background(), "text")
			require.NoError(t, err)
			assert.Equal(t, tc.intent, intent)
			assert.Equal(t, tc.confidence, confidence)
		})
	}
}

func TestAdvisorScoreListing(t *testing.T) {
	t.Run("returns decoded score", func(t *testing.T) {
		advisor := NewAdvisor(&fakeClient{reply: `{"score":85,"quality_label":"high","reasons":[]}`})
		reply, err := advisor.ScoreListing(context.Background(), "listing")
		require.NoError(t, err)
		assert.Equal(t, float64(85), reply.Score)
	})

	t.Run("neutral fallback for unusable reply", func(t *testing.T) {
		advisor := NewAdvisor(&fakeClient{reply: "seems legit"})
		reply, err := advisor.ScoreListing(context.Background(), "listing")
		require.NoError(t, err)
		assert.Equal(t, float64(50), reply.Score)
		assert.NotEmpty(t, reply.Reasons)
	})
}
