package jobs

import (
	"context"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/config"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"
	"roomdesk-backend/internal/service"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookingRepo   repository.BookingRepository
	optimizations service.OptimizationService
	clock         assignment.Clock
	config        *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookingRepo repository.BookingRepository, optimizations service.OptimizationService, clock assignment.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookingRepo:   bookingRepo,
		optimizations: optimizations,
		clock:         clock,
		config:        cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	log.Info("Starting job")
	jobFunc(ctx)
	log.Info("Job completed", "duration", time.Since(start))
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ExpirePendingBookings()
	jr.MarkArrivedBookings()
	jr.OptimizeAssignments()
}
