package jobs

import (
	"context"

	"roomdesk-backend/internal/logger"
)

// OptimizeAssignments re-packs future bookings. With auto-apply enabled the
// moves are committed and guests notified; otherwise a proposal is stored for
// the front desk to review.
func (jr *JobRunner) OptimizeAssignments() {
	jr.runWithRecovery("OptimizeAssignments", func(ctx context.Context) {
		if jr.config.Property.AutoApplyOptimizations {
			moves, err := jr.optimizations.OptimizeAndApply(ctx)
			if err != nil {
				logger.Error("Failed to apply optimization", "error", err)
				return
			}
			logger.Info("Applied optimization", "moves", len(moves))
			for _, m := range moves {
				logger.Debug("Moved booking", "booking_id", m.BookingID, "from_room", m.FromRoomID, "to_room", m.ToRoomID)
			}
			return
		}

		p, err := jr.optimizations.Propose(ctx)
		if err != nil {
			logger.Error("Failed to build optimization proposal", "error", err)
			return
		}
		logger.Info("Stored optimization proposal", "proposal_id", p.ID, "moves", len(p.Moves), "expires_at", p.ExpiresAt)
	})
}
