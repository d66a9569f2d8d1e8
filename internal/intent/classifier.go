// Package intent turns transcribed caller speech into one of the gateway's
// fixed intents. A cheap keyword pass handles the common unambiguous phrases;
// everything else goes to the AI collaborator.
package intent

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/model"
)

// AIClassifier is the collaborator-backed fallback for utterances the keyword
// pass cannot place.
type AIClassifier interface {
	ClassifyIntent(ctx context.Context, text string) (model.Intent, model.Confidence, error)
}

// Classifier never fails: a collaborator outage degrades to unknown/low so the
// dialogue engine can simply re-ask.
type Classifier struct {
	ai AIClassifier
}

func NewClassifier(ai AIClassifier) *Classifier {
	return &Classifier{ai: ai}
}

// Keyword families in both working languages. Order matters: registration and
// selling phrases are checked before the broader advice family because "ገበያ"
// style words show up inside longer advice questions too.
var keywordIntents = []struct {
	intent   model.Intent
	keywords []string
}{
	{model.IntentRegisterFarmer, []string{"register", "ምዝገባ", "መመዝገብ", "ተመዝገብ"}},
	{model.IntentSellCrops, []string{"sell", "መሸጥ", "ልሸጥ", "እሸጣለሁ", "ገበያ"}},
	{model.IntentCheckPrices, []string{"price", "ዋጋ", "ስንት ነው", "ገንዘብ"}},
	{model.IntentFarmingAdvice, []string{"advice", "ምክር", "ጥያቄ", "እርዳታ"}},
}

// Classify returns the best intent for a transcript. Keyword matches come back
// with medium confidence; the AI path reports its own confidence.
func (c *Classifier) Classify(ctx context.Context, text string) (model.Intent, model.Confidence) {
	if intent, ok := matchKeywords(text); ok {
		return intent, model.ConfidenceMedium
	}

	intent, confidence, err := c.ai.ClassifyIntent(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("intent classification fell back to unknown")
		return model.IntentUnknown, model.ConfidenceLow
	}
	return intent, confidence
}

func matchKeywords(text string) (model.Intent, bool) {
	normalized := strings.ToLower(text)
	for _, family := range keywordIntents {
		for _, keyword := range family.keywords {
			if strings.Contains(normalized, keyword) {
				return family.intent, true
			}
		}
	}
	return model.IntentUnknown, false
}
