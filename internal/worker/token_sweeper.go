package worker

import (
	"context"
	"time"

	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/logger"
)

// TokenSweeper purges expired tokens on a fixed cadence: profiles whose
// registration was never confirmed are deleted outright, stale
// password-reset tokens are pulled from their profiles. Both passes are
// idempotent, so a failed run is simply retried by the next tick.
type TokenSweeper struct {
	repo     domain.LifecycleRepository
	interval time.Duration
}

func NewTokenSweeper(repo domain.LifecycleRepository, interval time.Duration) *TokenSweeper {
	return &TokenSweeper{repo: repo, interval: interval}
}

// Start runs the sweep loop until the context is cancelled.
func (w *TokenSweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Log.Info("token sweeper stopped")
				return
			case <-ticker.C:
				w.Sweep(ctx)
			}
		}
	}()
}

// Sweep executes one run. Store failures abort only the failing pass;
// expired-token conditions persist, so the next tick reattempts them.
func (w *TokenSweeper) Sweep(ctx context.Context) {
	now := time.Now()

	deleted, err := w.repo.DeleteExpiredUnconfirmed(ctx, now)
	if err != nil {
		logger.Log.Error("sweep: deleting expired unconfirmed accounts failed", "error", err)
	} else if deleted > 0 {
		logger.Log.Info("sweep: removed expired unconfirmed accounts", "count", deleted)
	}

	pulled, err := w.repo.PullExpiredResetTokens(ctx, now)
	if err != nil {
		logger.Log.Error("sweep: pulling expired reset tokens failed", "error", err)
	} else if pulled > 0 {
		logger.Log.Info("sweep: removed expired password-reset tokens", "count", pulled)
	}
}
