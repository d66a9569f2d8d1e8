package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrica/voice-gateway-go/internal/model"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
		found    bool
	}{
		{"plain integer", "50", 50, true},
		{"decimal with unit", "20.5 kg", 20.5, true},
		{"number embedded in speech", "ወደ 300 ብር ነው", 300, true},
		{"first number wins", "between 10 and 20", 10, true},
		{"zero rejected", "0", 0, false},
		{"no digits and no words", "ጤፍ ነው", 0, false},
		{"empty", "", 0, false},
		{"amharic fifty", "ሃምሳ", 50, true},
		{"amharic five thousand", "አምስት ሺህ", 5000, true},
		{"amharic compound", "ሁለት መቶ ሃምሳ", 250, true},
		{"amharic hundred alone", "መቶ", 100, true},
		{"amharic with trailing punctuation", "ሃምሳ።", 50, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, found := extractNumber(tc.text)
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.expected, value)
			}
		})
	}
}

func TestDetectUnit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected model.Unit
		found    bool
	}{
		{"latin kg", "20.5 kg", model.UnitKg, true},
		{"latin kilo", "fifty kilos", model.UnitKg, true},
		{"amharic kilo", "ኪሎ ነው", model.UnitKg, true},
		{"latin quintal", "two quintals", model.UnitQuintal, true},
		{"amharic quintal", "ቂንጣር", model.UnitQuintal, true},
		{"amharic quintal alternate spelling", "ኩንታል ነው", model.UnitQuintal, true},
		{"uppercase latin", "KG", model.UnitKg, true},
		{"unmatched text", "ብዙ ነው", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			unit, found := detectUnit(tc.text)
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.expected, unit)
			}
		})
	}
}

func TestValidField(t *testing.T) {
	assert.True(t, validField("ጤፍ"))
	assert.True(t, validField("Bahir Dar"))
	assert.False(t, validField("ል"))
	assert.False(t, validField(" "))
	assert.False(t, validField(""))
}
