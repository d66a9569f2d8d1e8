package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/repository"
)

type fakeSessionRepo struct {
	sessions map[string]*model.Session
	findErr  error
	creates  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*model.Session{}}
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, sessionID string) (*model.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.sessions[sessionID], nil
}

func (f *fakeSessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	f.creates++
	if existing, ok := f.sessions[params.SessionID]; ok {
		return existing, nil
	}
	session := &model.Session{
		SessionID:    params.SessionID,
		CallerNumber: params.CallerNumber,
		State:        model.StateAwaitingIntent,
		Intent:       model.IntentUnknown,
		Language:     "amh",
	}
	f.sessions[params.SessionID] = session
	return session, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, sessionID string, params repository.UpdateSessionParams) (*model.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	session.State = params.State
	if params.Intent != nil {
		session.Intent = *params.Intent
	}
	if params.Data != nil {
		session.Data = *params.Data
	}
	return session, nil
}

func (f *fakeSessionRepo) Reset(ctx context.Context, sessionID string) (*model.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	session.State = model.StateAwaitingIntent
	session.Intent = model.IntentUnknown
	session.Data = model.SessionData{}
	return session, nil
}

func (f *fakeSessionRepo) DeleteIdle(ctx context.Context, olderThan time.Duration) (int64, error) {
	return int64(len(f.sessions)), nil
}

func TestSessionServiceGetOrCreate(t *testing.T) {
	t.Run("creates a fresh session on first contact", func(t *testing.T) {
		repo := newFakeSessionRepo()
		svc := NewSessionService(repo)

		session, err := svc.GetOrCreate(context.Background(), "sid-1", "+251911223344")

		require.NoError(t, err)
		assert.Equal(t, model.StateAwaitingIntent, session.State)
		assert.Equal(t, "+251911223344", session.CallerNumber)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("returns the existing session without re-creating", func(t *testing.T) {
		repo := newFakeSessionRepo()
		svc := NewSessionService(repo)
		ctx := context.Background()

		first, err := svc.GetOrCreate(ctx, "sid-1", "+251911223344")
		require.NoError(t, err)

		_, err = svc.Update(ctx, "sid-1", repository.UpdateSessionParams{State: model.StateSellCropType})
		require.NoError(t, err)

		second, err := svc.GetOrCreate(ctx, "sid-1", "+251911223344")
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, model.StateSellCropType, second.State)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("propagates lookup failure", func(t *testing.T) {
		repo := newFakeSessionRepo()
		repo.findErr = errors.New("db down")
		svc := NewSessionService(repo)

		_, err := svc.GetOrCreate(context.Background(), "sid-1", "+251911223344")
		assert.Error(t, err)
		assert.Zero(t, repo.creates)
	})
}

func TestSessionServiceReset(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, "sid-1", "+251911223344")
	require.NoError(t, err)

	intent := model.IntentSellCrops
	_, err = svc.Update(ctx, "sid-1", repository.UpdateSessionParams{
		State:  model.StateSellQuantity,
		Intent: &intent,
		Data:   &model.SessionData{Sell: &model.SellDraft{CropType: "ጤፍ"}},
	})
	require.NoError(t, err)

	session, err := svc.Reset(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, model.StateAwaitingIntent, session.State)
	assert.Equal(t, model.IntentUnknown, session.Intent)
	assert.True(t, session.Data.IsEmpty())
}
