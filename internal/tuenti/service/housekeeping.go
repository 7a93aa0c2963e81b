package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
)

// HousekeepingService periodically deletes expired invitations, stale
// sessions and expired verification codes.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService returns a stopped service. A non-positive interval
// means one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a cleanup now and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs every deletion once. A failing deletion does not stop the
// others.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := clock(s.Now)
	s.Logger.Debug("starting housekeeping cleanup")

	jobs := []struct {
		name string
		fn   func(context.Context, time.Time) (int64, error)
	}{
		{"invitations", s.Store.Invitations().DeleteExpiredInvitations},
		{"sessions", s.Store.Sessions().DeleteStaleSessions},
		{"verification_codes", s.Store.VerificationCodes().DeleteExpiredCodes},
	}

	var total int64
	for _, job := range jobs {
		n, err := job.fn(ctx, now)
		if err != nil {
			s.Logger.Error("housekeeping deletion failed", "table", job.name, "error", err)
			continue
		}
		if n > 0 {
			s.Logger.Debug("housekeeping deleted rows", "table", job.name, "rows", n)
		}
		total += n
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted", total)
}
