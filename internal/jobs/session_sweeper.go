// Package jobs runs the periodic background work of the server.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"invitationgallery/internal/domain"
	"invitationgallery/internal/metrics"
)

// SessionSweeper deletes expired admin sessions on a cron schedule.
type SessionSweeper struct {
	store   domain.SessionStore
	logger  *slog.Logger
	cron    *cron.Cron
	timeout time.Duration
	now     func() time.Time
}

// NewSessionSweeper registers the sweep on schedule (standard cron expression or a descriptor such as "@every 1h").
func NewSessionSweeper(store domain.SessionStore, schedule string, logger *slog.Logger) (*SessionSweeper, error) {
	s := &SessionSweeper{
		store:   store,
		logger:  logger,
		cron:    cron.New(),
		timeout: 30 * time.Second,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid session sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *SessionSweeper) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running sweep to finish or ctx to expire.
func (s *SessionSweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *SessionSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.Sweep(ctx); err != nil {
		s.logger.Error("session sweep failed", "err", err)
	}
}

// Sweep deletes sessions expired as of now and returns how many were removed.
func (s *SessionSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.RecordSessionsSwept(n)
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions removed", "count", n)
	}
	return n, nil
}
