package ai

import (
	"context"

	apperrors "github.com/agrica/voice-gateway-go/internal/errors"
	"github.com/agrica/voice-gateway-go/internal/model"
)

// Advisor wraps the raw Client with the gateway's prompt contracts. Errors
// mean the collaborator was unreachable; an ill-shaped reply is not an error,
// it decodes to a fallback value.
type Advisor struct {
	client Client
}

func NewAdvisor(client Client) *Advisor {
	return &Advisor{client: client}
}

// Advise answers a free-form farmer question with farmer-facing Amharic text.
func (a *Advisor) Advise(ctx context.Context, message string) (string, error) {
	raw, err := a.client.Generate(ctx, advicePrompt(message))
	if err != nil {
		return "", apperrors.AIFailure(err)
	}
	return DecodeAdvice(raw).ResponseForFarmer, nil
}

// MarketGuidance answers a price inquiry for one crop.
func (a *Advisor) MarketGuidance(ctx context.Context, cropType string) (string, error) {
	raw, err := a.client.Generate(ctx, marketGuidancePrompt(cropType))
	if err != nil {
		return "", apperrors.AIFailure(err)
	}
	return DecodeAdvice(raw).ResponseForFarmer, nil
}

// ClassifyIntent maps transcribed speech onto the fixed intent set.
func (a *Advisor) ClassifyIntent(ctx context.Context, text string) (model.Intent, model.Confidence, error) {
	raw, err := a.client.Generate(ctx, intentPrompt(text))
	if err != nil {
		return model.IntentUnknown, model.ConfidenceLow, apperrors.AIFailure(err)
	}

	reply := DecodeIntent(raw)
	intent := model.Intent(reply.Intent)
	switch intent {
	case model.IntentFarmingAdvice, model.IntentRegisterFarmer,
		model.IntentSellCrops, model.IntentCheckPrices:
	default:
		intent = model.IntentUnknown
	}

	confidence := model.Confidence(reply.ConfidenceLevel)
	switch confidence {
	case model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh:
	default:
		confidence = model.ConfidenceLow
	}

	return intent, confidence, nil
}

// ScoreListing asks the collaborator how trustworthy a listing sounds. An
// unusable reply decodes to a neutral mid score rather than an error.
func (a *Advisor) ScoreListing(ctx context.Context, description string) (VerificationReply, error) {
	raw, err := a.client.Generate(ctx, verificationPrompt(description))
	if err != nil {
		return VerificationReply{}, apperrors.AIFailure(err)
	}

	reply, ok := DecodeVerification(raw)
	if !ok {
		return VerificationReply{
			Score:        50,
			QualityLabel: "medium",
			Reasons:      []string{"automatic verification returned no usable score"},
		}, nil
	}
	return reply, nil
}
