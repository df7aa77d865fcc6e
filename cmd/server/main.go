package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcast-service/internal/infrastructure/config"
	"bookcast-service/internal/infrastructure/oauth"
	"bookcast-service/internal/infrastructure/persistence"
	gmailSender "bookcast-service/internal/interface/gmail"
	"bookcast-service/internal/interface/httpserver"
	mongoRepo "bookcast-service/internal/interface/repository"
	"bookcast-service/internal/usecase"
	"bookcast-service/pkg/logger"
	"bookcast-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Bookcast Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection (appointment store)
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection (delivery log)
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	appointmentRepo := mongoRepo.NewMongoAppointmentRepository(db)
	deliveryRepo, err := mongoRepo.NewGormDeliveryLogRepository(gormDB)
	if err != nil {
		log.Fatal("Failed to migrate delivery log", "error", err)
	}

	// Set up Gmail OAuth and sender
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	tokenSource := gmailOAuth.GetTokenSource(ctx)

	mailRepo, err := gmailSender.NewGmailSender(ctx, tokenSource, log)
	if err != nil {
		log.Fatal("Failed to create Gmail sender", "error", err)
	}

	// Set up metrics and usecases
	appMetrics := metrics.NewMetrics("bookcast")

	bookingService := usecase.NewBookingService(
		appointmentRepo,
		mailRepo,
		deliveryRepo,
		log,
		appMetrics,
		cfg.SenderEmail,
		cfg.OperatorEmail,
		cfg.NotifyOperator,
	)

	reminderService := usecase.NewReminderService(
		appointmentRepo,
		mailRepo,
		deliveryRepo,
		log,
		appMetrics,
		cfg.SenderEmail,
		cfg.ReminderLead,
		cfg.ReminderWindow,
	)

	// Start reminder sweep ticker in a goroutine
	go func() {
		sweepTicker := time.NewTicker(cfg.ReminderInterval)
		defer sweepTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Reminder sweeper stopped")
				return
			case <-sweepTicker.C:
				log.Info("Running scheduled reminder sweep")
				if _, err := reminderService.RunSweep(ctx); err != nil {
					log.Error("Error running reminder sweep", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server
	handler := httpserver.NewHandler(bookingService, reminderService, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/book", handler.Book)
	mux.HandleFunc("/api/reminders/run", handler.RunReminders)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))

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

	cancel() // Cancel the context to stop the sweeper

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Bookcast Service stopped")
}
