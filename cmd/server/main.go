package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "roomdesk-backend/internal/api/http"
	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/config"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/notify"
	"roomdesk-backend/internal/proposal"
	"roomdesk-backend/internal/repository/postgres"
	"roomdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Roomdesk Backend...", "property", cfg.Property.Name, "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "timezone", cfg.Property.Timezone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Assignment engine
	policy, err := cfg.Policy()
	if err != nil {
		log.Fatalf("Invalid assignment policy: %v", err)
	}
	clock := assignment.SystemClock{Location: cfg.Location()}
	engine := assignment.NewEngine(policy, clock)

	proposals := newProposalStore(cfg)
	notifier := newNotifier(cfg)

	// Initialize Services
	bookingSvc := service.NewBookingService(
		store.RoomRepository,
		store.BookingRepository,
		store.ClosureRepository,
		engine,
		notifier,
		cfg.PricingSettings(),
		cfg.TouristTaxRates(),
	)
	roomSvc := service.NewRoomService(store.RoomRepository, store.BookingRepository)
	closureSvc := service.NewClosureService(store.ClosureRepository, store.RoomRepository)
	occupancySvc := service.NewOccupancyService(store.RoomRepository, store.BookingRepository, store.ClosureRepository)
	optimizationSvc := service.NewOptimizationService(
		store.RoomRepository,
		store.BookingRepository,
		store.ClosureRepository,
		proposals,
		engine,
		notifier,
		cfg.ProposalTTL(),
	)
	statsSvc := service.NewStatsService(store.RoomRepository, store.BookingRepository, clock)
	exportSvc := service.NewExportService(store.BookingRepository)

	router := httpapi.NewRouter(httpapi.Services{
		Bookings:      bookingSvc,
		Rooms:         roomSvc,
		Closures:      closureSvc,
		Occupancy:     occupancySvc,
		Optimizations: optimizationSvc,
		Stats:         statsSvc,
		Exports:       exportSvc,
		Clock:         clock,
		Ping:          store.Ping,
	})

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(origins),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type"}),
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      gorillaHandlers.RecoveryHandler()(cors(router)),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// newProposalStore uses Redis when an address is configured and falls back to
// process memory otherwise.
func newProposalStore(cfg *config.Config) proposal.Store {
	if cfg.Redis.Addr == "" {
		logger.Info("Using in-memory proposal store")
		return proposal.NewMemoryStore()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-memory proposal store", "addr", cfg.Redis.Addr, "error", err)
		return proposal.NewMemoryStore()
	}
	logger.Info("Using Redis proposal store", "addr", cfg.Redis.Addr)
	return proposal.NewRedisStore(rdb)
}

func newNotifier(cfg *config.Config) notify.Notifier {
	switch cfg.Notify.Provider {
	case "sendgrid":
		logger.Info("Guest notifications via SendGrid", "from", cfg.SendGrid.FromEmail)
		return notify.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.Property.Name)
	case "smtp":
		logger.Info("Guest notifications via SMTP", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
		return notify.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.Property.Name)
	default:
		logger.Info("Guest notifications disabled")
		return notify.Noop{}
	}
}
