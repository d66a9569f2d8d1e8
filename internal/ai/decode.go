package ai

import (
	"encoding/json"
	"strings"
)

// The collaborator is asked for a fixed JSON shape but may answer with plain
// prose or fenced markdown. Every call site decodes through here and gets a
// guaranteed-usable value back instead of a parse error.

type AdviceReply struct {
	LanguageDetected  string   `json:"language_detected"`
	Intent            string   `json:"intent"`
	ConfidenceLevel   string   `json:"confidence_level"`
	ResponseForFarmer string   `json:"response_for_farmer"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

type IntentReply struct {
	Intent          string `json:"intent"`
	ConfidenceLevel string `json:"confidence_level"`
}

type VerificationReply struct {
	Score        float64  `json:"score"`
	QualityLabel string   `json:"quality_label"`
	Reasons      []string `json:"reasons"`
}

// DecodeAdvice falls back to treating the whole reply as the farmer-facing
// message when it is not the requested JSON shape.
func DecodeAdvice(raw string) AdviceReply {
	reply, ok := decode[AdviceReply](raw)
	if !ok || reply.ResponseForFarmer == "" {
		return AdviceReply{
			Intent:            "general_advice",
			ConfidenceLevel:   "low",
			ResponseForFarmer: strings.TrimSpace(raw),
		}
	}
	return reply
}

// DecodeIntent falls back to an unknown/low classification.
func DecodeIntent(raw string) IntentReply {
	reply, ok := decode[IntentReply](raw)
	if !ok || reply.Intent == "" {
		return IntentReply{Intent: "unknown", ConfidenceLevel: "low"}
	}
	if reply.ConfidenceLevel == "" {
		reply.ConfidenceLevel = "low"
	}
	return reply
}

// DecodeVerification reports ok=false when the reply is unusable; the caller
// decides what an unverifiable listing looks like.
func DecodeVerification(raw string) (VerificationReply, bool) {
	reply, ok := decode[VerificationReply](raw)
	if !ok {
		return VerificationReply{}, false
	}
	if reply.Score < 0 {
		reply.Score = 0
	}
	if reply.Score > 100 {
		reply.Score = 100
	}
	return reply, true
}

func decode[T any](raw string) (T, bool) {
	var out T
	trimmed := stripFences(raw)
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return out, false
	}
	return out, true
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
