package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/repository"
)

// SessionService owns per-call IVR state. Sessions are reset when a sub-flow
// completes, never deleted mid-call; deletion only happens for idle rows via
// the cleanup job.
type SessionService struct {
	repo repository.SessionRepository
}

func NewSessionService(repo repository.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// GetOrCreate is idempotent per session id: repeated callbacks for the same
// call always land on the same row.
func (s *SessionService) GetOrCreate(ctx context.Context, sessionID, callerNumber string) (*model.Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session, err = s.repo.Create(ctx, model.CreateSessionParams{
		SessionID:    sessionID,
		CallerNumber: callerNumber,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("sessionId", sessionID).
		Str("callerNumber", callerNumber).
		Msg("ivr session created")
	return session, nil
}

func (s *SessionService) Update(ctx context.Context, sessionID string, params repository.UpdateSessionParams) (*model.Session, error) {
	return s.repo.Update(ctx, sessionID, params)
}

func (s *SessionService) Reset(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.repo.Reset(ctx, sessionID)
}

// DeleteIdle removes sessions whose last activity is older than the TTL.
func (s *SessionService) DeleteIdle(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.repo.DeleteIdle(ctx, olderThan)
}
