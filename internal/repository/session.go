package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/agrica/voice-gateway-go/internal/model"
)

type SessionRepository interface {
	FindByID(ctx context.Context, sessionID string) (*model.Session, error)
	Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error)
	Update(ctx context.Context, sessionID string, params UpdateSessionParams) (*model.Session, error)
	Reset(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteIdle(ctx context.Context, olderThan time.Duration) (int64, error)
}

// UpdateSessionParams sets the next state and optionally replaces intent and
// data. Data is written whole; merging partial fields into the draft is the
// engine's job.
type UpdateSessionParams struct {
	State  model.SessionState
	Intent *model.Intent
	Data   *model.SessionData
}

type sessionRepo struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) FindByID(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM ivr_sessions WHERE session_id = $1
	`, sessionID)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO ivr_sessions (session_id, caller_number, state, intent, language, data)
		VALUES ($1, $2, 'awaiting_intent', 'unknown', 'amh', '{}')
		ON CONFLICT (session_id) DO NOTHING
		RETURNING *
	`, params.SessionID, params.CallerNumber)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost a creation race; the existing row wins.
		return r.FindByID(ctx, params.SessionID)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Update(ctx context.Context, sessionID string, params UpdateSessionParams) (*model.Session, error) {
	var intent any
	if params.Intent != nil {
		intent = string(*params.Intent)
	}
	var data any
	if params.Data != nil {
		data = *params.Data
	}

	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		UPDATE ivr_sessions SET
			state = $2,
			intent = COALESCE($3, intent),
			data = COALESCE($4, data),
			updated_at = NOW()
		WHERE session_id = $1
		RETURNING *
	`, sessionID, params.State, intent, data)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Reset(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.db.GetContext(ctx, &session, `
		UPDATE ivr_sessions SET
			state = 'awaiting_intent',
			intent = 'unknown',
			data = '{}',
			updated_at = NOW()
		WHERE session_id = $1
		RETURNING *
	`, sessionID)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) DeleteIdle(ctx context.Context, olderThan time.Duration) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM ivr_sessions WHERE updated_at < NOW() - ($1 * interval '1 second')
	`, olderThan.Seconds())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
