// Package maintenance runs background housekeeping jobs.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"vibehub/internal/middleware"
	"vibehub/internal/observability"
	"vibehub/internal/repository"
)

// DefaultSweepInterval matches how often unverified accounts are reaped.
const DefaultSweepInterval = 30 * time.Minute

// Sweeper periodically deletes accounts that never verified before their
// token expired. The expiry filter is evaluated inside the DELETE, so an
// account verified after a tick was scheduled is never removed.
type Sweeper struct {
	userRepo repository.UserRepository
	interval time.Duration
}

// NewSweeper returns a Sweeper with the given interval; zero or negative
// falls back to the default.
func NewSweeper(userRepo repository.UserRepository, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{userRepo: userRepo, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled. The first sweep happens
// after one interval, not at startup.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepOnce(ctx)
			}
		}
	}()
}

// SweepOnce performs a single reaping pass.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	deleted, err := s.userRepo.DeleteUnverifiedExpired(ctx, time.Now())
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "unverified account sweep failed",
			slog.String("error", err.Error()))
		return
	}
	if deleted > 0 {
		observability.SweeperDeletions.Add(float64(deleted))
		middleware.Logger.InfoContext(ctx, "swept unverified accounts",
			slog.Int64("deleted", deleted))
	}
}
