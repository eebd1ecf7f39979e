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

	"github.com/jdlevish/Golfcoachr10/internal/analytics"
	"github.com/jdlevish/Golfcoachr10/internal/api"
	"github.com/jdlevish/Golfcoachr10/internal/api/handlers"
	"github.com/jdlevish/Golfcoachr10/internal/api/middleware"
	"github.com/jdlevish/Golfcoachr10/internal/models"
	"github.com/jdlevish/Golfcoachr10/internal/services"
	"github.com/jdlevish/Golfcoachr10/pkg/config"
	"github.com/jdlevish/Golfcoachr10/pkg/database"
	"github.com/jdlevish/Golfcoachr10/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Session{}, &models.Shot{}, &models.DrillLog{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// Connect to Redis when configured; the analyzer runs uncached without it
	var cacheService *services.CacheService
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cacheService = services.NewCacheService(redisClient)
	} else {
		log.Info("No REDIS_URL configured; running without the analysis cache")
	}

	// Build the analytics engine with config overrides on the stock tuning
	engine := analytics.NewEngine(thresholdsFromConfig(cfg), log)

	// Initialize services
	store := services.NewSessionStore(db)
	importer := services.NewImporter(store, engine, log, cfg.MaxImportRows)
	analyzer := services.NewAnalyzer(store, cacheService, engine, log, cfg.AnalysisCacheTTL)

	if cfg.EnableBackgroundJobs && cacheService != nil {
		refresher := services.NewBaselineRefresher(store, cacheService, engine, log, cfg.BaselineRefreshInterval)
		if err := refresher.Start(); err != nil {
			log.Errorf("Failed to start baseline refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Check)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, store, importer, analyzer, log)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// thresholdsFromConfig overlays the environment-tunable knobs on the stock
// analytics tuning.
func thresholdsFromConfig(cfg *config.Config) analytics.Thresholds {
	t := analytics.DefaultThresholds()
	if cfg.IQRMultiplier > 0 {
		t.IQRMultiplier = cfg.IQRMultiplier
	}
	if cfg.OutlierMinSamples > 0 {
		t.OutlierMinSamples = cfg.OutlierMinSamples
	}
	if cfg.OverlapGapYards > 0 {
		t.OverlapGapYards = cfg.OverlapGapYards
	}
	if cfg.CorrelationThreshold > 0 {
		t.CorrelationThreshold = cfg.CorrelationThreshold
	}
	if cfg.LateSessionFatigueRatio > 0 {
		t.FatigueRatio = cfg.LateSessionFatigueRatio
	}
	if cfg.DirectionStdDevThreshold > 0 {
		t.DirectionStdDevThreshold = cfg.DirectionStdDevThreshold
	}
	return t
}
