package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	portsrepo "github.com/HamzaWajid1/cfo_copilot_app/internal/core/ports/repositories"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/core/services"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/handlers"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/middleware"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/platform/config"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/platform/fixtures"
	"github.com/HamzaWajid1/cfo_copilot_app/internal/repositories/memory"
)

// @title CFO Copilot API
// @version 1.0
// @description Answers natural-language finance questions over actuals, budget, fx and cash tables.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tables, err := fixtures.Load(context.Background(), cfg.FixturesDir)
	if err != nil {
		logger.Error("Failed to load financial tables",
			slog.String("dir", cfg.FixturesDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := memory.NewRecordStore(memory.SourceRows{
		Actuals: tables.Actuals,
		Budget:  tables.Budget,
		FxRates: tables.FxRates,
		Cash:    tables.Cash,
		Dropped: tables.Dropped,
	})
	stats := store.Stats(context.Background())
	logger.Info("Financial tables loaded",
		slog.Int("actuals", len(tables.Actuals)),
		slog.Int("budget", len(tables.Budget)),
		slog.Int("fx_rates", len(tables.FxRates)),
		slog.Int("cash_balances", len(tables.Cash)),
		slog.Int("dropped_rows", stats.Total()))

	repos := portsrepo.RepositoryProvider{Records: store}
	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(corsMiddleware(cfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format",
			slog.String("rate_limit", cfg.RateLimit),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limitermemory.NewStore(), rate)

	handlers.RegisterRoutes(r, cfg, serviceContainer, store, limiterInstance)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	return cors.New(corsConfig)
}
