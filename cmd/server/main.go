package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mgrady/pitchplan/internal/api"
	"github.com/mgrady/pitchplan/internal/api/handlers"
	"github.com/mgrady/pitchplan/internal/api/middleware"
	"github.com/mgrady/pitchplan/internal/providers"
	"github.com/mgrady/pitchplan/internal/services"
	"github.com/mgrady/pitchplan/pkg/config"
	"github.com/mgrady/pitchplan/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logger := logrus.StandardLogger()
	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the player-ID cache database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient, cfg.CacheTTL)

	mlbClient := providers.NewMLBClient(cacheService, logger, cfg.ExternalAPITimeout,
		cfg.MLBRateLimit, cfg.CircuitBreakerThreshold, cfg.CacheTTL)
	yahooClient := providers.NewYahooClient(cfg.YahooClientID, cfg.YahooClientSecret,
		cfg.YahooRefreshToken, cacheService, logger, cfg.ExternalAPITimeout, cfg.CacheTTL)

	lookahead := services.NewScheduleLookahead(mlbClient, logger)
	analysisService := services.NewAnalysisService(yahooClient, mlbClient, lookahead,
		logger, cfg.YahooTeamKey, cfg.YahooLeagueID)
	lookupService := services.NewPlayerLookupService(db, mlbClient, logger)

	defaults := services.AnalyzeOptions{
		TargetDays:         cfg.TargetDays,
		OwnershipThreshold: cfg.OwnershipThreshold,
		IncludeWaivers:     cfg.IncludeWaivers,
	}
	refreshService := services.NewRefreshService(analysisService, cacheService, logger,
		cfg.RefreshSchedule, defaults)
	if cfg.EnableBackgroundRefresh {
		if err := refreshService.Start(!cfg.SkipInitialRefresh); err != nil {
			logrus.Errorf("Failed to start refresh service: %v", err)
		}
		defer refreshService.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoints
	healthHandler := handlers.NewHealthHandler(db, redisClient)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, &api.Services{
		DB:        db,
		Redis:     redisClient,
		Cache:     cacheService,
		Yahoo:     yahooClient,
		MLB:       mlbClient,
		Analysis:  analysisService,
		Refresher: refreshService,
		Lookup:    lookupService,
		Logger:    logger,
	}, cfg)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
