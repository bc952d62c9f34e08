package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardoctor/config"
	"cardoctor/database"
	"cardoctor/database/repository"
	"cardoctor/handlers"
	"cardoctor/middleware"
	"cardoctor/routes"
	"cardoctor/services/auth"
	"cardoctor/services/booking"
	"cardoctor/services/catalog"
	"cardoctor/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthCheckInterval = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Sugar().Fatalf("main: failed to load config: %v", err)
	}
	utils.InitializeLogger(cfg.LogLevel, config.IsProduction())
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	client, err := database.Connect(rootCtx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DBName))
	db := database.Database(client, cfg)

	// repositories.
	serviceRepo := repository.NewMongoServiceRepo(db.Collection(database.ServicesCollection), cfg.DBTimeout)
	bookingRepo := repository.NewMongoBookingRepo(db.Collection(database.BookingsCollection), cfg.DBTimeout)
	if err := serviceRepo.EnsureIndexes(rootCtx); err != nil {
		logger.Warn("main: failed to ensure service indexes", zap.Error(err))
	}
	if err := bookingRepo.EnsureIndexes(rootCtx); err != nil {
		logger.Warn("main: failed to ensure booking indexes", zap.Error(err))
	}

	// services.
	tokenService := auth.NewTokenService(cfg.AccessTokenSecret, cfg.TokenTTL)
	catalogService := &catalog.DefaultCatalogService{
		Repo: serviceRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:             bookingRepo,
		EnforceOwnership: cfg.EnforceBookingOwnership,
	}

	health := utils.NewHealthMonitor(client, cfg.DBTimeout)
	health.Start(rootCtx, healthCheckInterval)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(metrics.Handler())

	tokenHandler := handlers.NewTokenHandler(tokenService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Token endpoint.
		IssueTokenHandler: tokenHandler.IssueTokenHandler,

		// Catalog endpoints.
		ListServicesHandler: catalogHandler.ListServicesHandler,
		GetServiceHandler:   catalogHandler.GetServiceHandler,

		// Booking endpoints.
		ListBookingsHandler:        bookingHandler.ListBookingsHandler,
		CreateBookingHandler:       bookingHandler.CreateBookingHandler,
		UpdateBookingStatusHandler: bookingHandler.UpdateBookingStatusHandler,
		DeleteBookingHandler:       bookingHandler.DeleteBookingHandler,

		// Ops endpoints.
		LivenessHandler: handlers.LivenessHandler,
		HealthHandler:   handlers.NewHealthHandler(health),
		MetricsHandler:  gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		Auth:                    middleware.JWTAuthMiddleware(tokenService),
		EnforceBookingOwnership: cfg.EnforceBookingOwnership,
		CORSOrigins:             cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Sugar().Infof("car doctor server is running: %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
