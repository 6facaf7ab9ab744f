package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/store"
)

// HousekeepingService periodically purges consumed refresh markers whose
// tokens have expired anyway, keeping the replay table bounded.
type HousekeepingService struct {
	Consumed store.ConsumedTokens
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(consumed store.ConsumedTokens, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Consumed: consumed,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
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

// Cleanup runs a single purge pass.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	n, err := s.Consumed.DeleteExpired(ctx, s.Now())
	if err != nil {
		s.Logger.Error("failed to delete expired refresh markers", "error", err)
		return
	}
	s.Logger.Info("housekeeping cleanup completed", "deleted", n)
}
