package app

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/bluewud/rate-engine/pkg"
	"github.com/bluewud/rate-engine/pkg/cache"
	middleware "github.com/bluewud/rate-engine/pkg/middlewares"
	"github.com/bluewud/rate-engine/pkg/models"
	"github.com/bluewud/rate-engine/services/rate-api/configs"
	"github.com/bluewud/rate-engine/services/rate-api/internal/carriers"
	"github.com/bluewud/rate-engine/services/rate-api/internal/handlers"
	"github.com/bluewud/rate-engine/services/rate-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Redis is optional: without it the limiter runs node-local and
	// performance stats are not persisted.
	var redisClient *redis.Client
	disconnect := func() {}
	if cfg.RedisAddr != "" {
		redisClient, disconnect, err = cache.New(ctx, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			redisClient, disconnect = nil, func() {}
		}
	}

	// Core engine
	zones := services.NewZoneClassifier()
	calculator := services.NewRateCalculator(logger, zones)
	delay := services.NewDelayPredictor(zones, rand.New(rand.NewSource(time.Now().UnixNano())))

	registry := carriers.NewRegistry(cfg, calculator.Calculate, logger)

	var liveLimiter *pkg.DistributedLimiter
	if cfg.LiveRatePerMin > 0 {
		liveLimiter = pkg.NewDistributedLimiter(
			redisClient, "ratelimit:live-carrier-calls",
			cfg.LiveRatePerMin, cfg.LiveRatePerMin, time.Minute, logger)
	}

	aggregator := services.NewRateAggregator(
		logger, calculator, delay, registry, liveLimiter,
		time.Duration(cfg.LiveRateTimeoutSec)*time.Second, models.CarrierIDs())
	recommendation := services.NewRecommendationService(logger, aggregator)
	rto := services.NewRTOService(logger)
	forecast := services.NewForecastService(logger)

	publisher := services.NewOutcomePublisher(logger, ctx, cfg)
	performance := services.NewPerformanceService(logger, redisClient, publisher)

	// Handlers
	baseHandler := handlers.NewBaseHandler(logger)
	rateHandler := handlers.NewRateHandler(logger, aggregator, recommendation, zones)
	riskHandler := handlers.NewRiskHandler(logger, rto)
	forecastHandler := handlers.NewForecastHandler(logger, forecast)
	outcomeHandler := handlers.NewOutcomeHandler(logger, performance)

	// Router
	r := gin.Default()

	api := r.Group("/api/v1")
	api.Use(middleware.TraceID(logger))
	api.Use(middleware.Metrics())

	rateHandler.RegisterRoutes(api)
	riskHandler.RegisterRoutes(api)
	forecastHandler.RegisterRoutes(api)
	outcomeHandler.RegisterRoutes(api)
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		disconnect()
		if publisher != nil {
			publisher.Close()
		}
	}

	return srv, cleanup, nil
}
