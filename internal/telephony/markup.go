package telephony

import (
	"encoding/xml"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Voice markup rendered back to the telephony provider. A response either
// speaks text and opens another recording window, or plays a pre-rendered
// audio file and ends the turn.

type Response struct {
	XMLName xml.Name `xml:"Response"`
	Say     *Say     `xml:"Say,omitempty"`
	Record  *Record  `xml:"Record,omitempty"`
	Play    *Play    `xml:"Play,omitempty"`
}

type Say struct {
	Language string `xml:"language,attr"`
	Text     string `xml:",chardata"`
}

type Record struct {
	MaxLength   int    `xml:"maxLength,attr"`
	FinishOnKey string `xml:"finishOnKey,attr"`
	CallbackURL string `xml:"callbackUrl,attr"`
}

type Play struct {
	URL string `xml:",chardata"`
}

// RecordWindow configures the recording window opened after every spoken
// prompt.
type RecordWindow struct {
	MaxLength   int
	FinishOnKey string
	CallbackURL string
}

func SayResponse(message, language string, window RecordWindow) Response {
	return Response{
		Say: &Say{Language: language, Text: message},
		Record: &Record{
			MaxLength:   window.MaxLength,
			FinishOnKey: window.FinishOnKey,
			CallbackURL: window.CallbackURL,
		},
	}
}

func PlayResponse(audioURL string) Response {
	return Response{
		Play: &Play{URL: audioURL},
	}
}

// WriteXML renders the response with the provider's expected content type.
// The telephony platform has no graceful way to end a turn without a valid
// body, so marshalling failures still produce a minimal response.
func WriteXML(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "text/xml")

	body, err := xml.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal voice response")
		w.Write([]byte(xml.Header + "<Response></Response>"))
		return
	}

	w.Write([]byte(xml.Header))
	w.Write(body)
}
