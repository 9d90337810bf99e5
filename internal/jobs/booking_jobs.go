package jobs

import (
	"context"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/logger"
)

// MarkArrivedBookings flags confirmed stays that have started and are still
// in house, so the optimizer stops treating them as movable.
func (jr *JobRunner) MarkArrivedBookings() {
	jr.runWithRecovery("MarkArrivedBookings", func(ctx context.Context) {
		today := assignment.Today(jr.clock)

		count, err := jr.bookingRepo.MarkArrivedThrough(ctx, today)
		if err != nil {
			logger.Error("Failed to mark arrived bookings", "error", err)
			return
		}

		logger.Info("Marked bookings as arrived", "count", count, "date", today.Format("2006-01-02"))
	})
}

// ExpirePendingBookings cancels pending bookings older than the configured TTL
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func(ctx context.Context) {
		cutoff := jr.clock.Now().Add(-jr.config.PendingTTL())

		count, err := jr.bookingRepo.ExpirePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire pending bookings", "error", err)
			return
		}

		logger.Info("Expired pending bookings", "count", count, "created_before", cutoff)
	})
}
