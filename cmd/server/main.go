package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkin-service/internal/infrastructure/config"
	"checkin-service/internal/infrastructure/oauth"
	"checkin-service/internal/infrastructure/persistence"
	gmailNotifier "checkin-service/internal/interface/gmail"
	"checkin-service/internal/interface/httpapi"
	checkinRepo "checkin-service/internal/interface/repository"
	"checkin-service/internal/interface/southwest"
	"checkin-service/internal/usecase"
	"checkin-service/pkg/clock"
	"checkin-service/pkg/logger"
	"checkin-service/pkg/metrics"
	"checkin-service/pkg/parser"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Check-in Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the retrieval archive
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	appMetrics := metrics.NewMetrics("checkin_service")
	systemClock := clock.NewSystem()

	// Set up repositories
	reservationRepository := checkinRepo.NewGormReservationRepository(gormDB)
	checkinRepository := checkinRepo.NewGormCheckinRepository(gormDB)
	taskRepository := checkinRepo.NewGormCheckinTaskRepository(gormDB)
	retrievalArchive := checkinRepo.NewMongoRetrievalArchive(db)

	// Set up external clients
	retrievalClient := southwest.NewClient(cfg.AirlineBaseURL, cfg.AppVersion, cfg.RetrieveTimeout, log)
	jobClient := checkinRepo.NewHTTPCheckinJobClient(cfg.CheckinServiceURL, cfg.CheckinServiceToken, cfg.CheckinLeadTime, log)

	// Set up Gmail notifier
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	tokenSource := gmailOAuth.GetTokenSource(ctx)

	notifier, err := gmailNotifier.NewNotifier(ctx, tokenSource, cfg.NotificationFrom, cfg.NotificationTo, log)
	if err != nil {
		log.Fatal("Failed to create Gmail notifier", "error", err)
	}

	// Set up usecases
	scheduler := usecase.NewCheckinScheduler(jobClient, taskRepository, reservationRepository, systemClock, log, appMetrics)
	payloadParser := parser.NewPayloadParser(log)
	pipeline := usecase.NewIngestPipeline(
		retrievalClient,
		retrievalArchive,
		reservationRepository,
		scheduler,
		notifier,
		usecase.NewAggregateValidator(),
		payloadParser,
		systemClock,
		log,
		appMetrics,
	)
	reservationService := usecase.NewReservationService(reservationRepository, checkinRepository, scheduler, log)

	// Start the scheduling sweeper in a goroutine
	go func() {
		sweepTicker := time.NewTicker(cfg.SweepInterval)
		defer sweepTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Scheduling sweeper stopped")
				return
			case <-sweepTicker.C:
				if err := scheduler.ScheduleMissing(ctx); err != nil {
					log.Error("Error sweeping unscheduled flights", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server
	mux := http.NewServeMux()
	httpapi.NewHandler(pipeline, reservationService, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Check-in Service stopped")
}
