package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trendlens/trendlens/internal/adapters"
	"github.com/trendlens/trendlens/internal/cache"
	"github.com/trendlens/trendlens/internal/config"
	"github.com/trendlens/trendlens/internal/errors"
	"github.com/trendlens/trendlens/internal/monitoring"
	"github.com/trendlens/trendlens/internal/ratelimit"
	"github.com/trendlens/trendlens/internal/security"
	"github.com/trendlens/trendlens/internal/subscribe"
	"github.com/trendlens/trendlens/internal/trending"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Upstream plumbing: every call to the content host goes through the
	// relay client and its circuit breaker.
	relay := adapters.NewRelayClient(cfg.RelayURL)
	defer relay.Close()

	trendingAdapter := adapters.NewTrendingAdapter(relay, cfg.UpstreamHost)
	papersAdapter := adapters.NewPapersAdapter(relay, cfg.UpstreamHost)
	subscribeClient := subscribe.NewClient(cfg.SubscribeURL)

	r := gin.New()

	// Monitoring first so every request is captured
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	// Error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	// Security middleware
	r.Use(security.Headers())
	r.Use(security.RequestTimeout(cfg.RequestTimeout))
	r.Use(security.ValidateContentType())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// Rate limiting: Redis when configured, in-process otherwise
	if cfg.RateLimitEnabled {
		var limiter ratelimit.Limiter

		if cfg.RedisAddr != "" {
			redisClient, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			if err != nil {
				slog.Warn("Redis unavailable, falling back to in-memory rate limiting", "error", err)
			} else {
				defer redisClient.Close()
				limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitPerMinute)
			}
		}

		if limiter == nil {
			memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute)
			defer memLimiter.Close()
			limiter = memLimiter
		}

		r.Use(ratelimit.Middleware(limiter))
	}

	// Response cache for the aggregation endpoints
	appCache := cache.New(cfg.CacheTTL)
	defer appCache.Close()
	r.Use(appCache.Middleware("/api/trending/", trending.CacheControl, appMetrics))

	trendingHandler := trending.NewHandler(trendingAdapter, papersAdapter, appMetrics, appLogger)
	trendingHandler.RegisterRoutes(r)

	subscribeHandler := subscribe.NewHandler(subscribeClient)
	subscribeHandler.RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"upstream":  relay.BreakerStats(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
