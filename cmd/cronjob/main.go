package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/config"
	"roomdesk-backend/internal/jobs"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/notify"
	"roomdesk-backend/internal/proposal"
	"roomdesk-backend/internal/repository/postgres"
	"roomdesk-backend/internal/scheduler"
	"roomdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-arrived-bookings', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Roomdesk Cronjob Runner...", "log_level", cfg.Log.Level, "timezone", cfg.Property.Timezone)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	policy, err := cfg.Policy()
	if err != nil {
		log.Fatalf("Invalid assignment policy: %v", err)
	}
	clock := assignment.SystemClock{Location: cfg.Location()}
	engine := assignment.NewEngine(policy, clock)

	var proposals proposal.Store = proposal.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, proposals will not outlive this process", "addr", cfg.Redis.Addr, "error", err)
		} else {
			proposals = proposal.NewRedisStore(rdb)
		}
	}

	var notifier notify.Notifier = notify.Noop{}
	switch cfg.Notify.Provider {
	case "sendgrid":
		notifier = notify.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.Property.Name)
	case "smtp":
		notifier = notify.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.Property.Name)
	}

	optimizationSvc := service.NewOptimizationService(
		store.RoomRepository,
		store.BookingRepository,
		store.ClosureRepository,
		proposals,
		engine,
		notifier,
		cfg.ProposalTTL(),
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.BookingRepository, optimizationSvc, clock, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-arrived-bookings":
		jobRunner.MarkArrivedBookings()
	case "optimize-assignments":
		jobRunner.OptimizeAssignments()
	case "expire-pending-bookings":
		jobRunner.ExpirePendingBookings()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-arrived-bookings\n")
		fmt.Printf("  - optimize-assignments\n")
		fmt.Printf("  - expire-pending-bookings\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
