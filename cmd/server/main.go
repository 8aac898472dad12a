package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/communityconnect/volunteer-api-go/pkg/auth"
	"github.com/communityconnect/volunteer-api-go/pkg/database"
	"github.com/communityconnect/volunteer-api-go/pkg/handlers"
	"github.com/communityconnect/volunteer-api-go/pkg/history"
	"github.com/communityconnect/volunteer-api-go/pkg/matching"
	"github.com/communityconnect/volunteer-api-go/pkg/notify"
	"github.com/communityconnect/volunteer-api-go/pkg/store"
)

const defaultReconcileTimeout = 2 * time.Minute

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	st := store.NewGormStore(db)

	notifier := buildNotifier(logger)
	defer notifier.Close()

	reconciler := history.NewReconciler(st, notifier, logger, nil, nil)

	h := &handlers.Handler{
		DB:               db,
		Store:            st,
		Matcher:          matching.NewMatcher(matching.DefaultConfig()),
		Reconciler:       reconciler,
		Notifier:         notifier,
		ReconcileTimeout: defaultReconcileTimeout,
	}

	// Scheduled reconciliation; RECONCILE_INTERVAL=0 or unset disables it
	if interval, err := time.ParseDuration(os.Getenv("RECONCILE_INTERVAL")); err == nil && interval > 0 {
		go runReconcileLoop(reconciler, interval, logger)
	}

	r := gin.Default()
	h.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}

func buildNotifier(logger *slog.Logger) notify.Notifier {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		return notify.NewLogNotifier(logger)
	}
	n, err := notify.NewAMQPNotifier(url, os.Getenv("AMQP_QUEUE"))
	if err != nil {
		log.Fatalf("could not connect notification broker: %v", err)
	}
	logger.Info("notification broker connected")
	return n
}

func runReconcileLoop(r *history.Reconciler, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), defaultReconcileTimeout)
		report, err := r.Reconcile(ctx)
		cancel()
		if err != nil {
			logger.Error("scheduled reconcile failed", "error", err)
			continue
		}
		logger.Info("reconcile pass finished",
			"events_examined", report.EventsExamined,
			"events_completed", report.EventsCompleted,
			"records_created", report.RecordsCreated,
			"errors", report.Errors)
	}
}
