// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// SessionPruner deletes sessions that expired before now and reports how many.
type SessionPruner interface {
	PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron     *cron.Cron
	pruner   SessionPruner
	schedule string
	logger   *zap.Logger
}

// New returns a Scheduler that prunes sessions on schedule, a standard
// five-field cron expression or a descriptor such as "@hourly".
func New(schedule string, pruner SessionPruner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		pruner:   pruner,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the jobs and starts the runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.pruneSessions); err != nil {
		return fmt.Errorf("schedule session pruning %q: %w", s.schedule, err)
	}
	s.logger.Info("starting scheduler", zap.String("session_prune_schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) pruneSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.pruner.PruneExpiredSessions(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to prune sessions", zap.Error(err))
		return
	}
	s.logger.Info("pruned expired sessions", zap.Int64("deleted", n))
}
