package ai

import "fmt"

func advicePrompt(message string) string {
	return fmt.Sprintf(`
Respond ONLY in valid JSON.

{
  "language_detected": "",
  "intent": "crop_diagnosis | weather | market_price | general_advice",
  "confidence_level": "low | medium | high",
  "response_for_farmer": "",
  "follow_up_questions": []
}

The farmer speaks Amharic; write response_for_farmer in Amharic.

User message:
%q
`, message)
}

func intentPrompt(text string) string {
	return fmt.Sprintf(`
Classify what an Ethiopian farmer calling a voice hotline wants.
Respond ONLY in valid JSON.

{
  "intent": "farming_advice | register_farmer | sell_crops | check_prices | unknown",
  "confidence_level": "low | medium | high"
}

Transcribed speech (Amharic or English):
%q
`, text)
}

func marketGuidancePrompt(cropType string) string {
	return fmt.Sprintf(`
Respond ONLY in valid JSON.

{
  "language_detected": "",
  "intent": "market_price",
  "confidence_level": "low | medium | high",
  "response_for_farmer": "",
  "follow_up_questions": []
}

Provide current market guidance for %s crops in Ethiopia, in Amharic,
in response_for_farmer.
`, cropType)
}

func verificationPrompt(description string) string {
	return fmt.Sprintf(`
You are an honest agricultural marketplace verifier.

Task:
- Evaluate how realistic and trustworthy this crop listing sounds.
- Return ONLY valid JSON with:
{
  "score": 0,
  "quality_label": "low | medium | high",
  "reasons": []
}
score is 0-100.

Listing data:
%s
`, description)
}
