package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agrica/voice-gateway-go/internal/model"
)

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Spoken Amharic numerals; values below one hundred add, multipliers scale
// the running value ("አምስት ሺህ" is five thousand).
var amharicNumerals = map[string]float64{
	"አንድ": 1, "ሁለት": 2, "ሶስት": 3, "ሦስት": 3, "አራት": 4, "አምስት": 5,
	"ስድስት": 6, "ሰባት": 7, "ስምንት": 8, "ዘጠኝ": 9, "አስር": 10, "አሥር": 10,
	"ሃያ": 20, "ሀያ": 20, "ሰላሳ": 30, "ሠላሳ": 30, "አርባ": 40,
	"ሃምሳ": 50, "አምሳ": 50, "ስልሳ": 60, "ስድሳ": 60,
	"ሰባ": 70, "ሰማንያ": 80, "ዘጠና": 90,
}

var amharicMultipliers = map[string]float64{
	"መቶ": 100, "ሺህ": 1000, "ሺ": 1000, "ሚሊዮን": 1000000,
}

// extractNumber pulls the first decimal number out of a transcript, falling
// back to spoken Amharic numerals when no digits were transcribed. Zero and
// negative results count as not found.
func extractNumber(text string) (float64, bool) {
	if match := numberPattern.FindString(text); match != "" {
		value, err := strconv.ParseFloat(match, 64)
		if err == nil && value > 0 {
			return value, true
		}
		return 0, false
	}
	return parseAmharicNumber(text)
}

func parseAmharicNumber(text string) (float64, bool) {
	var total, current float64
	matched := false

	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, "።፣፤፥,.!?")
		if value, ok := amharicNumerals[token]; ok {
			current += value
			matched = true
			continue
		}
		if factor, ok := amharicMultipliers[token]; ok {
			if current == 0 {
				current = 1
			}
			current *= factor
			if factor >= 1000 {
				total += current
				current = 0
			}
			matched = true
		}
	}

	total += current
	if !matched || total <= 0 {
		return 0, false
	}
	return total, true
}

var (
	kgKeywords      = []string{"kg", "kilo", "ኪሎ"}
	quintalKeywords = []string{"quintal", "ቂንጣር", "ኩንታል"}
)

// detectUnit matches the transcript against kilogram-family and
// quintal-family keywords in both working languages.
func detectUnit(text string) (model.Unit, bool) {
	normalized := strings.ToLower(text)
	for _, keyword := range kgKeywords {
		if strings.Contains(normalized, keyword) {
			return model.UnitKg, true
		}
	}
	for _, keyword := range quintalKeywords {
		if strings.Contains(normalized, keyword) {
			return model.UnitQuintal, true
		}
	}
	return "", false
}
