package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingapp "github.com/pms/backend/internal/application/booking"
	revenueapp "github.com/pms/backend/internal/application/revenue"
	tenancyapp "github.com/pms/backend/internal/application/tenancy"
	"github.com/pms/backend/internal/infrastructure/auth"
	"github.com/pms/backend/internal/infrastructure/cache"
	"github.com/pms/backend/internal/infrastructure/config"
	"github.com/pms/backend/internal/infrastructure/logger"
	"github.com/pms/backend/internal/infrastructure/persistence"
	"github.com/pms/backend/internal/infrastructure/persistence/tenant"
	"github.com/pms/backend/internal/infrastructure/telemetry"
	"github.com/pms/backend/internal/interfaces/http/handler"
	"github.com/pms/backend/internal/interfaces/http/middleware"
	"github.com/pms/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Every statement against a guarded table must carry a tenant filter;
	// the scoped handle enforces that before SQL reaches the database.
	scopedDB := tenant.NewScopedDB(db.DB, persistence.GuardedTables...)

	// Initialize summary cache and read-through layer
	cacheFactory := cache.NewSummaryCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log))
	summaryCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize summary cache", zap.Error(err))
	}
	defer func() {
		if err := summaryCache.Close(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	}()
	readThrough := cache.NewReadThrough(summaryCache, cfg.Cache.SummaryTTL)

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(scopedDB)
	propertyRepo := persistence.NewGormPropertyRepository(scopedDB)
	reservationRepo := persistence.NewGormReservationRepository(scopedDB)
	revenueRepo := persistence.NewGormRevenueRepository(scopedDB)

	// Initialize application services
	tenantService := tenancyapp.NewTenantService(tenantRepo, summaryCache)
	propertyService := bookingapp.NewPropertyService(propertyRepo, summaryCache)
	reservationService := bookingapp.NewReservationService(reservationRepo, propertyRepo, summaryCache)
	summaryService := revenueapp.NewSummaryService(revenueRepo, propertyRepo, readThrough)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db)
	tenantHandler := handler.NewTenantHandler(tenantService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	revenueHandler := handler.NewRevenueHandler(summaryService)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))

	// Authentication and tenant boundary. Health probes stay open; every
	// other route requires a verified token and resolves its tenant here.
	publicPaths := []string{"/health", "/ready"}
	jwtService := auth.NewJWTService(cfg.JWT)
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  publicPaths,
		Logger:     log,
	}))
	engine.Use(middleware.TenantBoundary(middleware.TenantBoundaryConfig{
		Validator:          tenantService,
		Production:         cfg.App.IsProduction(),
		AllowDebugOverride: cfg.Debug.AllowTenantOverride,
		SkipPaths:          publicPaths,
		Logger:             log,
	}))
	if cfg.Debug.AllowTenantOverride {
		log.Warn("Debug tenant override enabled; X-Debug-Tenant will be honored outside production")
	}

	// Health endpoints live outside API versioning
	systemHandler.RegisterRoutes(&engine.RouterGroup)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(tenantHandler).
		Register(propertyHandler).
		Register(reservationHandler).
		Register(revenueHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
