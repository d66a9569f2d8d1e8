package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/repository"
)

// CleanupJob periodically removes IVR sessions with no recent activity.
// Abandoned calls never send a final webhook, so idle rows are the only
// signal a call is over.
type CleanupJob struct {
	sessionRepo repository.SessionRepository
	idleTTL     time.Duration
	interval    time.Duration
	done        chan struct{}
}

func NewCleanupJob(sessionRepo repository.SessionRepository, idleTTL, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		sessionRepo: sessionRepo,
		idleTTL:     idleTTL,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Dur("idleTtl", j.idleTTL).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.sessionRepo.DeleteIdle(ctx, j.idleTTL)
	if err != nil {
		log.Error().Err(err).Msg("failed to cleanup idle ivr sessions")
	} else if count > 0 {
		log.Info().Int64("count", count).Msg("cleaned up idle ivr sessions")
	}
}
