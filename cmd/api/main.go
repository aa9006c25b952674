package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nomadly/itinerary-api/api/swagger"
	"github.com/nomadly/itinerary-api/internal/handler"
	"github.com/nomadly/itinerary-api/internal/middleware"
	"github.com/nomadly/itinerary-api/internal/recommender"
	"github.com/nomadly/itinerary-api/internal/repository"
	"github.com/nomadly/itinerary-api/internal/service"
	"github.com/nomadly/itinerary-api/pkg/cache"
	"github.com/nomadly/itinerary-api/pkg/config"
	"github.com/nomadly/itinerary-api/pkg/database"
	"github.com/nomadly/itinerary-api/pkg/jobs"
	"github.com/nomadly/itinerary-api/pkg/logger"
	corsmiddleware "github.com/nomadly/itinerary-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nomadly/itinerary-api/pkg/middleware/requestid"
)

// @title Nomadly Itinerary API
// @version 1.0.0
// @description Trip day-schedule construction and conflict-free time windows
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The POI cache degrades to a no-op without Redis.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	tripRepo := repository.NewTripRepository(db)
	dayRepo := repository.NewTripDayRepository(db)
	poiRepo := repository.NewPOIRepository(db)
	fixedRepo := repository.NewFixedWindowRepository(db)
	agendaRepo := repository.NewAgendaRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tripSvc := service.NewTripService(db, tripRepo, dayRepo, fixedRepo, validate, logr, service.TripDefaults{
		DayStart: cfg.Planner.DefaultDayStart,
		DayEnd:   cfg.Planner.DefaultDayEnd,
	})
	poiSvc := service.NewPOIService(poiRepo, cacheRepo, logr, cfg.Planner.POICacheTTL)

	var producer recommender.Producer
	if cfg.Recommender.Endpoint != "" {
		producer = recommender.NewRemote(cfg.Recommender.Endpoint, cfg.Recommender.APIKey, cfg.Recommender.Timeout)
	}
	itinerarySvc := service.NewItineraryService(db, tripRepo, dayRepo, poiRepo, fixedRepo, agendaRepo, producer, logr, service.PlannerSettings{
		DefaultDayStart: cfg.Planner.DefaultDayStart,
		DefaultDayEnd:   cfg.Planner.DefaultDayEnd,
		VisitBuffer:     cfg.Planner.VisitBuffer,
		CandidateLimit:  cfg.Planner.CandidateLimit,
	}).WithMetrics(metricsSvc)
	exportSvc := service.NewExportService(itinerarySvc, tripSvc, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := jobs.NewQueue("itinerary", func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(handler.RegeneratePayload)
		if !ok {
			logr.Sugar().Errorw("unexpected job payload", "job_id", job.ID, "type", job.Type)
			return nil
		}
		_, err := itinerarySvc.RegenerateTrip(ctx, payload.UserID, payload.TripID)
		return err
	}, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	authHandler := handler.NewAuthHandler(authSvc)
	tripHandler := handler.NewTripHandler(tripSvc)
	poiHandler := handler.NewPOIHandler(poiSvc)
	itineraryHandler := handler.NewItineraryHandler(itinerarySvc, exportSvc, queue)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

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
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		api.Use(limiter.Handler())
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	pois := api.Group("/pois")
	{
		pois.GET("", poiHandler.List)
		pois.GET("/:id", poiHandler.Get)
	}

	protected := api.Group("", middleware.JWT(authSvc))
	{
		trips := protected.Group("/trips")
		{
			trips.POST("", tripHandler.Create)
			trips.GET("", tripHandler.List)
			trips.GET("/:id", tripHandler.Get)
			trips.PATCH("/:id", tripHandler.Update)
			trips.DELETE("/:id", tripHandler.Delete)
			trips.GET("/:id/days", itineraryHandler.ListDays)
			trips.POST("/:id/generate", itineraryHandler.Generate)
			trips.GET("/:id/itinerary", itineraryHandler.GetItinerary)
			trips.GET("/:id/export", itineraryHandler.Export)
		}

		days := protected.Group("/days")
		{
			days.PATCH("/:dayId", tripHandler.UpdateDay)
			days.GET("/:dayId/fixed-windows", tripHandler.ListFixedWindows)
			days.POST("/:dayId/fixed-windows", tripHandler.CreateFixedWindow)
			days.DELETE("/:dayId/fixed-windows/:windowId", tripHandler.DeleteFixedWindow)
			days.GET("/:dayId/free-segments", itineraryHandler.FreeSegments)
			days.POST("/:dayId/materialize", itineraryHandler.MaterializeDay)
			days.POST("/:dayId/agenda", itineraryHandler.CreateAgendaItem)
			days.DELETE("/:dayId/agenda/:itemId", itineraryHandler.DeleteAgendaItem)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
