package sweeper

import (
	"context"
	"errors"
	"time"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// Job periodically purges expired session rows and revocation entries.
// It runs off the request path; a failed tick is logged and retried on
// the next interval.
type Job struct {
	sessions    model.SessionStore
	revocations model.RevocationStore
	interval    time.Duration
	now         func() time.Time
	logger      *logger.Logger
}

func New(sessions model.SessionStore, revocations model.RevocationStore, interval time.Duration, logger *logger.Logger) *Job {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Job{
		sessions:    sessions,
		revocations: revocations,
		interval:    interval,
		now:         time.Now,
		logger:      logger,
	}
}

// Run performs a single sweep pass. Failure of one sweep never aborts
// the other.
func (j *Job) Run(ctx context.Context) error {
	now := j.now()

	var errs []error

	sessionCount, err := j.sessions.PurgeExpired(ctx, now)
	if err != nil {
		j.logger.Error("session purge failed", "error", err)
		errs = append(errs, err)
	} else {
		j.logger.Info("purged expired sessions", "count", sessionCount)
	}

	revocationCount, err := j.revocations.SweepExpired(ctx, now)
	if err != nil {
		j.logger.Error("revocation sweep failed", "error", err)
		errs = append(errs, err)
	} else {
		j.logger.Info("swept expired revocation entries", "count", revocationCount)
	}

	return errors.Join(errs...)
}

// Start runs the job on its interval until the context is cancelled.
func (j *Job) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("sweep tick finished with errors", "error", err)
			}
		}
	}
}
