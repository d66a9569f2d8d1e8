package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/dialogue"
	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/speech"
	"github.com/agrica/voice-gateway-go/internal/telephony"
)

// DialogueEngine is the per-turn decision maker behind the webhook surface.
type DialogueEngine interface {
	Greeting() dialogue.Directive
	HandleTurn(ctx context.Context, session *model.Session, transcript string) dialogue.Directive
}

// SessionGetter resolves the session row for an inbound event.
type SessionGetter interface {
	GetOrCreate(ctx context.Context, sessionID, callerNumber string) (*model.Session, error)
}

// Transcriber turns a recording URL into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL, language string) (string, error)
}

// IVRHandler terminates the telephony provider's webhooks. Its one hard rule:
// every request gets valid voice markup back, whatever breaks underneath.
type IVRHandler struct {
	engine      DialogueEngine
	sessions    SessionGetter
	transcriber Transcriber
	sayLanguage string
	window      telephony.RecordWindow
}

func NewIVRHandler(
	engine DialogueEngine,
	sessions SessionGetter,
	transcriber Transcriber,
	sayLanguage string,
	window telephony.RecordWindow,
) *IVRHandler {
	return &IVRHandler{
		engine:      engine,
		sessions:    sessions,
		transcriber: transcriber,
		sayLanguage: sayLanguage,
		window:      window,
	}
}

func (h *IVRHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/entry", h.Entry)
	r.Post("/recording", h.Recording)
	return r
}

// Entry answers a call-start event with the greeting and opens the first
// recording window.
func (h *IVRHandler) Entry(w http.ResponseWriter, r *http.Request) {
	defer h.recoverToApology(w)

	event := h.parseEvent(r)

	if _, err := h.sessions.GetOrCreate(r.Context(), event.SessionID, event.CallerNumber); err != nil {
		log.Error().Err(err).Str("sessionId", event.SessionID).Msg("session lookup failed on entry")
		h.write(w, dialogue.Apology())
		return
	}

	log.Info().
		Str("sessionId", event.SessionID).
		Str("callerNumber", event.CallerNumber).
		Msg("call started")

	h.write(w, h.engine.Greeting())
}

// Recording consumes one recorded utterance and renders the engine's next
// directive. A callback without a recording URL gets a re-record prompt
// without waking the engine; a transcription failure is fed to the engine as
// silence so the current question is simply asked again.
func (h *IVRHandler) Recording(w http.ResponseWriter, r *http.Request) {
	defer h.recoverToApology(w)

	event := h.parseEvent(r)

	if event.RecordingURL == "" {
		log.Warn().Str("sessionId", event.SessionID).Msg("recording callback without recording url")
		h.write(w, dialogue.Say(dialogue.ReRecordMessage))
		return
	}

	session, err := h.sessions.GetOrCreate(r.Context(), event.SessionID, event.CallerNumber)
	if err != nil {
		log.Error().Err(err).Str("sessionId", event.SessionID).Msg("session lookup failed on recording")
		h.write(w, dialogue.Apology())
		return
	}

	transcript, err := h.transcriber.Transcribe(r.Context(), event.RecordingURL, session.Language)
	if err != nil {
		log.Error().Err(err).Str("sessionId", event.SessionID).Msg("transcription failed")
		transcript = ""
	}

	h.write(w, h.engine.HandleTurn(r.Context(), session, transcript))
}

func (h *IVRHandler) parseEvent(r *http.Request) telephony.Event {
	if err := r.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("malformed webhook form")
	}
	return telephony.ParseEvent(r.PostForm)
}

func (h *IVRHandler) write(w http.ResponseWriter, directive dialogue.Directive) {
	switch directive.Type {
	case dialogue.DirectivePlay:
		telephony.WriteXML(w, telephony.PlayResponse(directive.AudioURL))
	default:
		telephony.WriteXML(w, telephony.SayResponse(directive.Message, h.sayLanguage, h.window))
	}
}

func (h *IVRHandler) recoverToApology(w http.ResponseWriter) {
	if rec := recover(); rec != nil {
		log.Error().Interface("panic", rec).Msg("panic while handling ivr webhook")
		h.write(w, dialogue.Apology())
	}
}

var _ Transcriber = (speech.Bridge)(nil)
