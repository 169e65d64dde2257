package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eventpulse/eventpulse-api/api/swagger"
	"github.com/eventpulse/eventpulse-api/internal/handler"
	"github.com/eventpulse/eventpulse-api/internal/middleware"
	"github.com/eventpulse/eventpulse-api/internal/repository"
	"github.com/eventpulse/eventpulse-api/internal/service"
	"github.com/eventpulse/eventpulse-api/pkg/cache"
	"github.com/eventpulse/eventpulse-api/pkg/config"
	"github.com/eventpulse/eventpulse-api/pkg/database"
	"github.com/eventpulse/eventpulse-api/pkg/logger"
	corsmiddleware "github.com/eventpulse/eventpulse-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eventpulse/eventpulse-api/pkg/middleware/requestid"
)

// @title EventPulse API
// @version 1.0.0
// @description Event discovery and booking API
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.EventTTL, logr, true)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()

	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	eventSvc := service.NewEventService(eventRepo, cacheSvc, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, cfg.Exports.MaxRows, validate, logr)

	eventHandler := handler.NewEventHandler(eventSvc, eventSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, cfg.Exports.Enabled)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:slug", eventHandler.Get)
		api.PUT("/events/:slug", eventHandler.Update)
		api.GET("/events/:slug/similar", eventHandler.Similar)
		api.GET("/events/:slug/bookings", bookingHandler.ListByEvent)
		api.GET("/events/:slug/bookings/export", bookingHandler.Export)
		api.POST("/bookings", bookingHandler.Create)
		api.GET("/stats", metricsHandler.Stats)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
