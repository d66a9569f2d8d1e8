package dialogue

import "github.com/agrica/voice-gateway-go/internal/model"

// All caller-facing text is Amharic; each prompt asks for exactly one field
// so the expected utterance stays short and survives noisy transcription.

var statePrompts = map[model.SessionState]string{
	model.StateAwaitingIntent:    "እባክዎ የፈለጉትን ነገር ይናገሩ። ምክር ለመጠየቅ፣ ምርት ለመሸጥ ወይም ለመመዝገብ ትክክለኛውን ቃል ይናገሩ።",
	model.StateRegisterFullName:  "እባክዎ ሙሉ ስምዎን ይናገሩ።",
	model.StateRegisterRegion:    "እባክዎ የሚኖሩበትን ክልል ይናገሩ።",
	model.StateRegisterWoreda:    "እባክዎ ወረዳዎን ይናገሩ።",
	model.StateRegisterLanguage:  "የመመርጠውን ቋንቋ ይናገሩ። ለምሳሌ አማርኛ።",
	model.StateSellCropType:      "ምን ዓይነት ሰብል ለመሸጥ ትፈልጋላችሁ? ለምሳሌ ጤፍ ወይም ስንዴ።",
	model.StateSellQuantity:      "መጠኑ ስንት ነው? ቁጥር ብቻ ይናገሩ።",
	model.StateSellUnit:          "የመጠኑ መለኪያ ምንድነው? ኪሎ ወይም ቂንጣር ይናገሩ።",
	model.StateSellPrice:         "ተፈላጊ ዋጋ ስንት ነው? ቁጥር ብቻ ይናገሩ።",
	model.StateSellLocation:      "ምርቱ የሚገኝበት ቦታ ይናገሩ።",
	model.StateSellHarvestDate:   "የመከር ቀን መቼ ነው? ቀን ወይም ወር በቃል ይናገሩ።",
	model.StatePriceCropType:     "ዋጋ ለመፈለግ የሚፈልጉትን ሰብል ይናገሩ።",
}

// retryPrompts re-ask the current field after a failed validation.
var retryPrompts = map[model.SessionState]string{
	model.StateRegisterFullName: "ስም አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
	model.StateRegisterRegion:   "ክልሉ አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
	model.StateRegisterWoreda:   "ወረዳ አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
	model.StateRegisterLanguage: "ቋንቋ አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
	model.StateSellCropType:     "የሰብል አይነት አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
	model.StateSellQuantity:     "መጠኑ አልተሰማም። ቁጥር ብቻ ይናገሩ።",
	model.StateSellUnit:         "መለኪያ አልተረዳም። ኪሎ ወይም ቂንጣር ብለው ይናገሩ።",
	model.StateSellPrice:        "ዋጋ አልተሰማም። ቁጥር ብቻ ይናገሩ።",
	model.StateSellLocation:     "ቦታ አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
	model.StateSellHarvestDate:  "የመከር ቀን አልተሰማም። እባክዎ ደግሞ ይናገሩ።",
}

const (
	// apologyMessage is the last-resort response; nothing may reach the
	// caller as silence or a protocol error.
	apologyMessage = "ይቅርታ፣ አገልግሎቱ ለጊዜው አልተገኘም።"

	// repeatMessage is spoken when the opening utterance was not heard.
	repeatMessage = "ይቅርታ፣ በደንብ አልሰማሁም። እባክዎ እንደገና ይናገሩ።"

	// ReRecordMessage is spoken when a recording callback arrives without a
	// recording; the gateway uses it without invoking the engine.
	ReRecordMessage = "እባክዎ ድምፅዎን እንደገና ይቅዱ።"

	registrationDoneMessage = "ምዝገባዎ ተጠናቀቀ። እናመሰግናለን።"
	listingDoneMessage      = "ምርትዎ ተመዝግቧል። እናመሰግናለን።"
)

// PromptFor returns the question asked while sitting in a state.
func PromptFor(state model.SessionState) string {
	if prompt, ok := statePrompts[state]; ok {
		return prompt
	}
	return statePrompts[model.StateAwaitingIntent]
}

func retryFor(state model.SessionState) string {
	if prompt, ok := retryPrompts[state]; ok {
		return prompt
	}
	return PromptFor(state)
}

// Apology is the generic fallback directive for collaborator failures.
func Apology() Directive {
	return Say(apologyMessage)
}
