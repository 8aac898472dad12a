package handler

import (
	"log/slog"
	"net/http"
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

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Initialize DB
	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	st := store.NewGormStore(db)

	// Serverless invocations are short-lived, so notifications go to the
	// log instead of holding a broker connection open.
	notifier := notify.NewLogNotifier(logger)

	h := &handlers.Handler{
		DB:               db,
		Store:            st,
		Matcher:          matching.NewMatcher(matching.DefaultConfig()),
		Reconciler:       history.NewReconciler(st, notifier, logger, nil, nil),
		Notifier:         notifier,
		ReconcileTimeout: 30 * time.Second,
	}

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h.RegisterRoutes(r)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
