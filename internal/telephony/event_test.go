package telephony

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEvent(t *testing.T) {
	t.Run("reads canonical field names", func(t *testing.T) {
		form := url.Values{
			"sessionId":    {"ATSid_123"},
			"callerNumber": {"+251911223344"},
			"recordingUrl": {"https://voice.example/rec/1.wav"},
		}
		event := ParseEvent(form)
		assert.Equal(t, "ATSid_123", event.SessionID)
		assert.Equal(t, "+251911223344", event.CallerNumber)
		assert.Equal(t, "https://voice.example/rec/1.wav", event.RecordingURL)
	})

	t.Run("falls back through alias spellings", func(t *testing.T) {
		form := url.Values{
			"session_id":    {"ATSid_456"},
			"caller_number": {"0911223344"},
			"recording_url": {"https://voice.example/rec/2.wav"},
		}
		event := ParseEvent(form)
		assert.Equal(t, "ATSid_456", event.SessionID)
		assert.Equal(t, "+0911223344", event.CallerNumber)
		assert.Equal(t, "https://voice.example/rec/2.wav", event.RecordingURL)
	})

	t.Run("earlier alias wins over later alias", func(t *testing.T) {
		form := url.Values{
			"sessionId":  {"primary"},
			"session_id": {"secondary"},
		}
		event := ParseEvent(form)
		assert.Equal(t, "primary", event.SessionID)
	})

	t.Run("defaults missing fields", func(t *testing.T) {
		event := ParseEvent(url.Values{})
		assert.Equal(t, "unknown", event.SessionID)
		assert.Equal(t, "unknown", event.CallerNumber)
		assert.Equal(t, "", event.RecordingURL)
	})
}

func TestNormalizeCallerNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"local prefix gains plus", "0911223344", "+0911223344"},
		{"bare international prefix gains plus", "251911223344", "+251911223344"},
		{"already normalized passes through", "+251911223344", "+251911223344"},
		{"other international numbers pass through", "+4915112345678", "+4915112345678"},
		{"whitespace trimmed", "  0911223344  ", "+0911223344"},
		{"empty becomes unknown", "", "unknown"},
		{"blank becomes unknown", "   ", "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeCallerNumber(tc.input))
		})
	}

	t.Run("idempotent under repeated normalization", func(t *testing.T) {
		once := NormalizeCallerNumber("0911223344")
		assert.Equal(t, once, NormalizeCallerNumber(once))
	})
}
