package telephony

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteXML(t *testing.T) {
	t.Run("say response speaks and opens a recording window", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteXML(rec, SayResponse("እባክዎ ይናገሩ።", "am-ET", RecordWindow{
			MaxLength:   20,
			FinishOnKey: "#",
			CallbackURL: "/api/ivr/recording",
		}))

		assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, `<Say language="am-ET">እባክዎ ይናገሩ።</Say>`)
		assert.Contains(t, body, `maxLength="20"`)
		assert.Contains(t, body, `finishOnKey="#"`)
		assert.Contains(t, body, `callbackUrl="/api/ivr/recording"`)
	})

	t.Run("play response carries only the audio url", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteXML(rec, PlayResponse("https://cdn.example/audio/1.mp3"))

		body := rec.Body.String()
		assert.Contains(t, body, "<Play>https://cdn.example/audio/1.mp3</Play>")
		assert.NotContains(t, body, "<Record")
		assert.NotContains(t, body, "<Say")
	})

	t.Run("escapes markup-significant prompt text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteXML(rec, SayResponse("a < b & c", "am-ET", RecordWindow{MaxLength: 20}))
		assert.Contains(t, rec.Body.String(), "a &lt; b &amp; c")
	})
}
