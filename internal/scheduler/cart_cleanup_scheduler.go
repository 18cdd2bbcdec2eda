package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/storefrontlab/storefront-backend/internal/app/repository"
	"github.com/storefrontlab/storefront-backend/pkg/logger"
)

// CartCleanupScheduler purges anonymous carts that have been idle longer
// than maxAge. Stale carts otherwise accumulate forever because nothing
// on the client side deletes them.
type CartCleanupScheduler struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
	maxAge   time.Duration
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository, maxAge time.Duration) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:     cron.New(),
		cartRepo: cartRepo,
		maxAge:   maxAge,
	}
}

// Start schedules the purge to run daily at 04:00.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		cutoff := time.Now().Add(-s.maxAge)
		logger.Info("Starting scheduled cart cleanup", map[string]interface{}{
			"cutoff": cutoff.Format(time.RFC3339),
		})

		purged, err := s.cartRepo.DeleteOlderThan(cutoff)
		if err != nil {
			logger.Error("Failed to purge stale carts", err)
			return
		}

		logger.Info("Cart cleanup finished", map[string]interface{}{
			"purged": purged,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started (daily at 4:00 AM)", nil)

	return nil
}

func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
