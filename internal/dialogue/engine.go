package dialogue

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/repository"
	"github.com/agrica/voice-gateway-go/internal/speech"
)

// SessionStore is the engine's view of per-call state. The session row is
// the sole source of truth for where the conversation stands.
type SessionStore interface {
	GetOrCreate(ctx context.Context, sessionID, callerNumber string) (*model.Session, error)
	Update(ctx context.Context, sessionID string, params repository.UpdateSessionParams) (*model.Session, error)
	Reset(ctx context.Context, sessionID string) (*model.Session, error)
}

// Classifier maps transcribed speech onto the fixed intent set. It never
// fails; an unclassifiable utterance comes back as unknown.
type Classifier interface {
	Classify(ctx context.Context, text string) (model.Intent, model.Confidence)
}

// Advisor produces farmer-facing text from the AI collaborator.
type Advisor interface {
	Advise(ctx context.Context, message string) (string, error)
	MarketGuidance(ctx context.Context, cropType string) (string, error)
}

// Marketplace is the write-path sink the engine feeds on flow completion.
type Marketplace interface {
	FindFarmerByPhone(ctx context.Context, phoneNumber string) (*model.Farmer, error)
	UpsertFarmer(ctx context.Context, params model.UpsertFarmerParams) (*model.Farmer, error)
	CreateListing(ctx context.Context, params model.CreateListingParams) (*model.CropListing, error)
}

// Engine is the deterministic state machine at the heart of the IVR. Given
// the session and the latest transcript it decides the next state, what to
// persist, and the outgoing directive. Every turn ends in a valid directive;
// collaborator failures degrade to the generic apology.
type Engine struct {
	sessions   SessionStore
	classifier Classifier
	advisor    Advisor
	speech     speech.Bridge
	market     Marketplace
	voice      speech.VoiceOptions
}

func NewEngine(
	sessions SessionStore,
	classifier Classifier,
	advisor Advisor,
	bridge speech.Bridge,
	market Marketplace,
	voice speech.VoiceOptions,
) *Engine {
	return &Engine{
		sessions:   sessions,
		classifier: classifier,
		advisor:    advisor,
		speech:     bridge,
		market:     market,
		voice:      voice,
	}
}

// Greeting opens a call.
func (e *Engine) Greeting() Directive {
	return Say(PromptFor(model.StateAwaitingIntent))
}

// HandleTurn consumes one transcript for one session. An empty transcript
// (caller silence or a transcription failure) never advances state.
func (e *Engine) HandleTurn(ctx context.Context, session *model.Session, transcript string) Directive {
	transcript = strings.TrimSpace(transcript)

	if transcript == "" {
		if session.State == model.StateAwaitingIntent {
			return Say(repeatMessage)
		}
		return Say(PromptFor(session.State))
	}

	switch {
	case session.State == model.StateAwaitingIntent:
		return e.handleIntent(ctx, session, transcript)
	case isRegisterState(session.State):
		return e.handleRegistration(ctx, session, transcript)
	case isSellState(session.State):
		return e.handleSell(ctx, session, transcript)
	case session.State == model.StatePriceCropType:
		return e.handlePriceQuery(ctx, session, transcript)
	default:
		// Unreachable in correct operation; the session row only ever
		// holds values this switch covers.
		log.Error().
			Str("sessionId", session.SessionID).
			Str("state", string(session.State)).
			Msg("session in unrecognized state")
		return Say(PromptFor(model.StateAwaitingIntent))
	}
}

func (e *Engine) handleIntent(ctx context.Context, session *model.Session, transcript string) Directive {
	intent, confidence := e.classifier.Classify(ctx, transcript)

	log.Info().
		Str("sessionId", session.SessionID).
		Str("intent", string(intent)).
		Str("confidence", string(confidence)).
		Msg("intent classified")

	switch intent {
	case model.IntentFarmingAdvice:
		return e.playAdvice(ctx, session, func() (string, error) {
			return e.advisor.Advise(ctx, transcript)
		})

	case model.IntentRegisterFarmer:
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State:  model.StateRegisterFullName,
			Intent: &intent,
			Data:   &model.SessionData{Registration: &model.RegistrationDraft{}},
		})

	case model.IntentSellCrops:
		draft := &model.SellDraft{}
		farmer, err := e.market.FindFarmerByPhone(ctx, session.CallerNumber)
		if err != nil {
			// Pre-binding is best-effort; an unregistered listing is
			// still a valid listing.
			log.Warn().Err(err).Str("sessionId", session.SessionID).Msg("farmer lookup failed")
		} else if farmer != nil {
			draft.FarmerID = &farmer.ID
		}
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State:  model.StateSellCropType,
			Intent: &intent,
			Data:   &model.SessionData{Sell: draft},
		})

	case model.IntentCheckPrices:
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State:  model.StatePriceCropType,
			Intent: &intent,
		})

	default:
		return Say(PromptFor(model.StateAwaitingIntent))
	}
}

func (e *Engine) handleRegistration(ctx context.Context, session *model.Session, text string) Directive {
	draft := model.RegistrationDraft{}
	if session.Data.Registration != nil {
		draft = *session.Data.Registration
	}

	if !validField(text) {
		return Say(retryFor(session.State))
	}

	switch session.State {
	case model.StateRegisterFullName:
		draft.FullName = text
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateRegisterRegion,
			Data:  &model.SessionData{Registration: &draft},
		})

	case model.StateRegisterRegion:
		draft.Region = text
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateRegisterWoreda,
			Data:  &model.SessionData{Registration: &draft},
		})

	case model.StateRegisterWoreda:
		draft.Woreda = text
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateRegisterLanguage,
			Data:  &model.SessionData{Registration: &draft},
		})

	case model.StateRegisterLanguage:
		_, err := e.market.UpsertFarmer(ctx, model.UpsertFarmerParams{
			FullName:          draft.FullName,
			PhoneNumber:       session.CallerNumber,
			Region:            draft.Region,
			Woreda:            draft.Woreda,
			PreferredLanguage: text,
		})
		if err != nil {
			log.Error().Err(err).Str("sessionId", session.SessionID).Msg("farmer upsert failed")
			return Apology()
		}

		log.Info().
			Str("sessionId", session.SessionID).
			Str("callerNumber", session.CallerNumber).
			Msg("farmer registered")

		return e.finish(ctx, session.SessionID, registrationDoneMessage)

	default:
		return Say(PromptFor(model.StateAwaitingIntent))
	}
}

func (e *Engine) handleSell(ctx context.Context, session *model.Session, text string) Directive {
	draft := model.SellDraft{}
	if session.Data.Sell != nil {
		draft = *session.Data.Sell
	}

	switch session.State {
	case model.StateSellCropType:
		if !validField(text) {
			return Say(retryFor(session.State))
		}
		draft.CropType = text
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateSellQuantity,
			Data:  &model.SessionData{Sell: &draft},
		})

	case model.StateSellQuantity:
		quantity, ok := extractNumber(text)
		if !ok {
			return Say(retryFor(session.State))
		}
		draft.Quantity = quantity
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateSellUnit,
			Data:  &model.SessionData{Sell: &draft},
		})

	case model.StateSellUnit:
		unit, ok := detectUnit(text)
		if !ok {
			return Say(retryFor(session.State))
		}
		draft.Unit = unit
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateSellPrice,
			Data:  &model.SessionData{Sell: &draft},
		})

	case model.StateSellPrice:
		price, ok := extractNumber(text)
		if !ok {
			return Say(retryFor(session.State))
		}
		draft.ExpectedPrice = price
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateSellLocation,
			Data:  &model.SessionData{Sell: &draft},
		})

	case model.StateSellLocation:
		if !validField(text) {
			return Say(retryFor(session.State))
		}
		draft.Location = text
		return e.advance(ctx, session.SessionID, repository.UpdateSessionParams{
			State: model.StateSellHarvestDate,
			Data:  &model.SessionData{Sell: &draft},
		})

	case model.StateSellHarvestDate:
		if !validField(text) {
			return Say(retryFor(session.State))
		}

		listing, err := e.market.CreateListing(ctx, model.CreateListingParams{
			FarmerID:      draft.FarmerID,
			PhoneNumber:   session.CallerNumber,
			CropType:      draft.CropType,
			Quantity:      draft.Quantity,
			Unit:          draft.Unit,
			ExpectedPrice: draft.ExpectedPrice,
			Location:      draft.Location,
			HarvestDate:   text,
			Source:        model.SourceIVR,
		})
		if err != nil {
			log.Error().Err(err).Str("sessionId", session.SessionID).Msg("listing creation failed")
			return Apology()
		}

		log.Info().
			Str("sessionId", session.SessionID).
			Str("listingId", listing.ID).
			Str("callerNumber", session.CallerNumber).
			Msg("crop listing created")

		return e.finish(ctx, session.SessionID, listingDoneMessage)

	default:
		return Say(PromptFor(model.StateAwaitingIntent))
	}
}

func (e *Engine) handlePriceQuery(ctx context.Context, session *model.Session, cropType string) Directive {
	return e.playAdvice(ctx, session, func() (string, error) {
		return e.advisor.MarketGuidance(ctx, cropType)
	})
}

// playAdvice runs a terminal AI-then-TTS step. The session is reset only
// after both collaborators succeed, so a failed turn leaves the caller free
// to repeat the same request.
func (e *Engine) playAdvice(ctx context.Context, session *model.Session, generate func() (string, error)) Directive {
	text, err := generate()
	if err != nil {
		log.Error().Err(err).Str("sessionId", session.SessionID).Msg("advice generation failed")
		return Apology()
	}

	audioURL, err := e.speech.Synthesize(ctx, text, e.voice)
	if err != nil {
		log.Error().Err(err).Str("sessionId", session.SessionID).Msg("speech synthesis failed")
		return Apology()
	}

	if reset, err := e.sessions.Reset(ctx, session.SessionID); err != nil || reset == nil {
		log.Error().Err(err).Str("sessionId", session.SessionID).Msg("session reset failed")
		return Apology()
	}

	return Play(audioURL)
}

// advance persists the transition and speaks the new state's prompt.
func (e *Engine) advance(ctx context.Context, sessionID string, params repository.UpdateSessionParams) Directive {
	updated, err := e.sessions.Update(ctx, sessionID, params)
	if err != nil || updated == nil {
		log.Error().Err(err).Str("sessionId", sessionID).Msg("session update failed")
		return Apology()
	}
	return Say(PromptFor(updated.State))
}

// finish resets the session after a completed sub-flow and speaks the
// completion message.
func (e *Engine) finish(ctx context.Context, sessionID, message string) Directive {
	if reset, err := e.sessions.Reset(ctx, sessionID); err != nil || reset == nil {
		log.Error().Err(err).Str("sessionId", sessionID).Msg("session reset failed")
		return Apology()
	}
	return Say(message)
}

// validField accepts any utterance of at least two characters.
func validField(text string) bool {
	return len([]rune(strings.TrimSpace(text))) >= 2
}

func isRegisterState(state model.SessionState) bool {
	return strings.HasPrefix(string(state), "register_")
}

func isSellState(state model.SessionState) bool {
	return strings.HasPrefix(string(state), "sell_")
}
