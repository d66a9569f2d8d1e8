package telephony

import (
	"net/url"
	"strings"
)

// The provider has renamed its webhook fields across integration iterations;
// accept every spelling that has been seen, first match wins.
var (
	sessionIDKeys    = []string{"sessionId", "sessionID", "session_id"}
	callerNumberKeys = []string{"callerNumber", "phoneNumber", "caller", "caller_number"}
	recordingURLKeys = []string{"recordingUrl", "RecordingUrl", "recordingURL", "recording_url"}
)

// Event is the canonical inbound webhook event. RecordingURL is empty on a
// call-start event and on a malformed recording callback.
type Event struct {
	SessionID    string
	CallerNumber string
	RecordingURL string
}

// ParseEvent normalizes a provider webhook form payload.
func ParseEvent(form url.Values) Event {
	return Event{
		SessionID:    firstValue(form, sessionIDKeys, "unknown"),
		CallerNumber: NormalizeCallerNumber(firstValue(form, callerNumberKeys, "")),
		RecordingURL: firstValue(form, recordingURLKeys, ""),
	}
}

func firstValue(form url.Values, keys []string, fallback string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(form.Get(key)); v != "" {
			return v
		}
	}
	return fallback
}

// NormalizeCallerNumber rewrites local and bare-international dialing forms
// to a leading-plus form. In form-encoded payloads a leading "+" may already
// have been eaten as whitespace, so a bare "251" prefix is treated as
// international. Already-normalized input passes through unchanged.
func NormalizeCallerNumber(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown"
	}

	if trimmed[0] == '0' || strings.HasPrefix(trimmed, "251") {
		return "+" + strings.TrimPrefix(trimmed, "+")
	}
	return trimmed
}
