package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/huddlehq/huddle/internal/teams/store"
)

// HousekeepingService periodically deletes long-expired pending invitations
// so the invitations table does not grow without bound. Settled invitations
// are kept as history.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Retention is how long an expired pending invitation stays visible
	// (reported as "expired") before the sweep removes it.
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. Interval defaults
// to 1 hour, retention to 30 days.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop shuts the worker down and blocks until any in-progress sweep ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep once on startup.
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.Retention)

	if err := s.Store.Invitations().DeleteExpiredBefore(ctx, cutoff); err != nil {
		s.Logger.Error("failed to sweep expired invitations", "error", err)
		return
	}
	s.Logger.Debug("swept expired invitations", "cutoff", cutoff)
}
