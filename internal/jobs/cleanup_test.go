package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agrica/voice-gateway-go/internal/model"
	"github.com/agrica/voice-gateway-go/internal/repository"
)

type mockSessionRepo struct {
	deleteIdleCount int64
	calls           atomic.Int64
	lastTTL         time.Duration
}

func (m *mockSessionRepo) FindByID(ctx context.Context, sessionID string) (*model.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) Create(ctx context.Context, params model.CreateSessionParams) (*model.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, sessionID string, params repository.UpdateSessionParams) (*model.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) Reset(ctx context.Context, sessionID string) (*model.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) DeleteIdle(ctx context.Context, olderThan time.Duration) (int64, error) {
	m.calls.Add(1)
	m.lastTTL = olderThan
	return m.deleteIdleCount, nil
}

func TestCleanupJob(t *testing.T) {
	t.Run("creates job with correct interval", func(t *testing.T) {
		job := NewCleanupJob(nil, 24*time.Hour, 5*time.Minute)

		assert.NotNil(t, job)
		assert.Equal(t, 5*time.Minute, job.interval)
		assert.Equal(t, 24*time.Hour, job.idleTTL)
	})

	t.Run("runs cleanup on start with the configured ttl", func(t *testing.T) {
		repo := &mockSessionRepo{deleteIdleCount: 3}
		job := NewCleanupJob(repo, 24*time.Hour, time.Hour)

		job.Start()
		time.Sleep(20 * time.Millisecond)
		job.Stop()

		assert.GreaterOrEqual(t, repo.calls.Load(), int64(1))
		assert.Equal(t, 24*time.Hour, repo.lastTTL)
	})

	t.Run("starts and stops without panic", func(t *testing.T) {
		job := NewCleanupJob(&mockSessionRepo{}, time.Hour, 10*time.Millisecond)

		job.Start()
		time.Sleep(30 * time.Millisecond)
		job.Stop()
	})
}
