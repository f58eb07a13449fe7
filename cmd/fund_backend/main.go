package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/class_fund_app/internal/adapters/boxstore"
	"github.com/SscSPs/class_fund_app/internal/adapters/events/kafka"
	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
	"github.com/SscSPs/class_fund_app/internal/core/services"
	"github.com/SscSPs/class_fund_app/internal/handlers"
	"github.com/SscSPs/class_fund_app/internal/middleware"
	"github.com/SscSPs/class_fund_app/internal/platform/config"
	"github.com/SscSPs/class_fund_app/internal/platform/metrics"
	"github.com/SscSPs/class_fund_app/internal/platform/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Class Fund API
// @version 1.0
// @description Boxes of a class fund: list, create, edit and select boxes.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := storage.OpenKeyValueStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open box storage", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := kv.Close(); cerr != nil {
			logger.Error("Error closing box storage", slog.String("error", cerr.Error()))
		}
	}()

	appMetrics := metrics.New()
	ledgerOptions := []services.LedgerOption{
		services.WithLogger(logger),
		services.WithMetrics(appMetrics),
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				logger.Error("Error closing event publisher", slog.String("error", cerr.Error()))
			}
		}()
		ledgerOptions = append(ledgerOptions, services.WithEventPublisher(publisher))
		logger.Info("Publishing box events", slog.String("topic", cfg.KafkaTopic))
	}

	repos := portsrepo.RepositoryProvider{BoxRepo: boxstore.NewStore(kv, cfg.StoreKey)}
	svc := services.NewServiceContainer(cfg, repos, ledgerOptions...)

	// Serve requests while the collection loads; box routes answer 503 until then.
	go svc.Ledger.Initialize(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.MetricsMiddleware(appMetrics))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, appMetrics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
