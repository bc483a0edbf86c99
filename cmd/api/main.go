package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/wifidesa/voucher-api/docs"
	"github.com/wifidesa/voucher-api/internal/agent"
	"github.com/wifidesa/voucher-api/internal/config"
	"github.com/wifidesa/voucher-api/internal/database"
	"github.com/wifidesa/voucher-api/internal/notify"
	"github.com/wifidesa/voucher-api/internal/profile"
	"github.com/wifidesa/voucher-api/internal/report"
	"github.com/wifidesa/voucher-api/internal/routeros"
	"github.com/wifidesa/voucher-api/internal/settlement"
	"github.com/wifidesa/voucher-api/internal/voucher"
	mw "github.com/wifidesa/voucher-api/pkg/middleware"
)

// @title        Voucher API
// @version      1.0
// @description  WiFi hotspot voucher reselling service
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("connected to database")

	// Optional redis-backed profile cache
	var profileCache *profile.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		profileCache = profile.NewCache(rdb, logger)
		logger.Info("profile cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// Router gateway: one dialer, one session per issuance batch
	dialer := routeros.NewAPIDialer(cfg.RouterAddr, cfg.RouterUsername, cfg.RouterPassword, cfg.RouterTimeout, logger)

	// Optional WhatsApp credential delivery
	var notifier notify.Notifier
	if cfg.WhatsAppURL != "" {
		notifier = notify.NewWhatsAppGateway(cfg.WhatsAppURL, cfg.WhatsAppToken, logger)
	}

	// Agent feature
	agentRepo := agent.NewRepository(db)
	agentService := agent.NewService(agentRepo)
	agentHandler := agent.NewHandler(agentService)

	// Profile feature
	profileRepo := profile.NewRepository(db)
	profileService := profile.NewService(profileRepo, profileCache)
	profileHandler := profile.NewHandler(profileService)

	// Voucher feature (issuance orchestrator with collaborators injected)
	voucherRepo := voucher.NewRepository(db)
	voucherService := voucher.NewService(agentRepo, profileRepo, voucherRepo, voucherRepo, dialer, notifier, logger)
	voucherHandler := voucher.NewHandler(voucherService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo)
	settlementHandler := settlement.NewHandler(settlementService)

	// Report feature
	reportRepo := report.NewRepository(db)
	reportService := report.NewService(reportRepo)
	reportHandler := report.NewHandler(reportService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(cfg.JWTSecret))

		// Mount feature routers
		r.Mount("/agents", agentHandler.Routes())
		r.Mount("/profiles", profileHandler.Routes())
		r.Mount("/vouchers", voucherHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/reports", reportHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
