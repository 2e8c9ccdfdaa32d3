package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pricesync/backend/internal/application/sync"
	"github.com/pricesync/backend/internal/infrastructure/config"
	"github.com/pricesync/backend/internal/infrastructure/ecommerce"
	"github.com/pricesync/backend/internal/infrastructure/logger"
	"github.com/pricesync/backend/internal/infrastructure/telemetry"
	"github.com/pricesync/backend/internal/interfaces/http/handler"
	"github.com/pricesync/backend/internal/interfaces/http/middleware"
	"github.com/pricesync/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PriceSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize telemetry (no-op when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize platform adapters
	baseLinkerConfig := ecommerce.NewBaseLinkerConfig(cfg.BaseLinker.Token)
	baseLinkerConfig.APIBaseURL = cfg.BaseLinker.APIBaseURL
	baseLinkerConfig.TimeoutSeconds = cfg.BaseLinker.TimeoutSeconds
	baseLinkerAdapter, err := ecommerce.NewBaseLinkerAdapter(baseLinkerConfig)
	if err != nil {
		log.Fatal("Failed to initialize BaseLinker adapter", zap.Error(err))
	}

	prestaConfig := ecommerce.NewPrestaConfig(cfg.Presta.APIBaseURL, cfg.Presta.WSKey)
	prestaConfig.TimeoutSeconds = cfg.Presta.TimeoutSeconds
	prestaAdapter, err := ecommerce.NewPrestaAdapter(prestaConfig)
	if err != nil {
		log.Fatal("Failed to initialize Presta adapter", zap.Error(err))
	}

	multiplier, err := cfg.Pricing.MultiplierDecimal()
	if err != nil {
		log.Fatal("Invalid price multiplier", zap.Error(err))
	}
	log.Info("Price sync configured",
		zap.String("multiplier", multiplier.String()),
		zap.String("baselinker_url", cfg.BaseLinker.APIBaseURL),
		zap.String("presta_url", cfg.Presta.APIBaseURL),
	)

	// Initialize application service
	syncService := sync.NewOrderPriceSyncService(
		baseLinkerAdapter,
		prestaAdapter,
		baseLinkerAdapter,
		multiplier,
		log,
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (no-op when disabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// The order sync endpoint lives at the root: callers predate API
	// versioning and address it as /order/{order_id}
	orderHandler := handler.NewOrderHandler(syncService)
	orderHandler.RegisterRoutes(engine.Group(""))

	// System routes under the versioned API
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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
