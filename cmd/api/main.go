package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/expatsolutions/leads-api/config"
	"github.com/expatsolutions/leads-api/internal/database/mongodb"
	"github.com/expatsolutions/leads-api/internal/handlers"
	"github.com/expatsolutions/leads-api/internal/middleware"
	"github.com/expatsolutions/leads-api/internal/notify"
	"github.com/expatsolutions/leads-api/internal/repository"
	"github.com/expatsolutions/leads-api/internal/services"
	"github.com/expatsolutions/leads-api/pkg/logger"
	"github.com/expatsolutions/leads-api/pkg/mailer"
	"github.com/expatsolutions/leads-api/pkg/metrics"
	"github.com/expatsolutions/leads-api/pkg/profiling"
	"github.com/expatsolutions/leads-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// maxLeadBodySize caps lead submissions. The form is a handful of short text
// fields, so 100 KB leaves generous headroom.
const maxLeadBodySize = 100 * 1024

// registerRoutes wires the HTTP surface onto the router
func registerRoutes(
	router *gin.Engine,
	leadHandler *handlers.LeadHandler,
	healthHandler *handlers.HealthHandler,
	helloHandler *handlers.HelloHandler,
) {
	// Root greeting and store diagnostics live outside the /api prefix,
	// matching the paths the website already calls
	router.GET("/", helloHandler.Root)
	router.GET("/test", healthHandler.Diagnostics)

	api := router.Group("/api")
	api.GET("/hello", helloHandler.Hello)
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Lead capture
	api.POST("/leads", middleware.BodySizeLimitMiddleware(maxLeadBodySize), leadHandler.CreateLead)
	api.GET("/leads", leadHandler.ListLeads)
}

// buildCORSConfig translates the configured origin list into gin-contrib cors
// settings. gin-contrib refuses a wildcard origin combined with credentials,
// so the wildcard mode runs without them.
func buildCORSConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	if cfg.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowCredentials = true

	return corsCfg
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Expat Solutions leads API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Connect to MongoDB. A missing or unreachable store is deliberately not
	// fatal: the API keeps serving and reports the degraded state via /test.
	var store *mongodb.Client
	if cfg.Database.URL == "" {
		logger.Warn("MONGO_URL not set, starting without persistent storage")
	} else {
		store, err = mongodb.NewClient(context.Background(), &mongodb.Config{
			URL:            cfg.Database.URL,
			Database:       cfg.Database.Name,
			ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second,
		})
		if err != nil {
			logger.Error("Failed to connect to MongoDB, starting without persistent storage", zap.Error(err))
			store = nil
		}
	}
	if store != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			store.Close(ctx)
		}()
	}

	// Initialize mail relay and notification dispatcher
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	if !smtpMailer.Configured() {
		logger.Warn("SMTP relay not configured, staff notifications disabled")
	}
	dispatcher := notify.NewDispatcher(smtpMailer, cfg.Notifications)

	// Initialize repositories
	leadRepo := repository.NewLeadRepository(store)

	// Initialize services
	leadService := services.NewLeadService(leadRepo, dispatcher)

	// Initialize handlers
	leadHandler := handlers.NewLeadHandler(leadService)
	healthHandler := handlers.NewHealthHandler(leadRepo, smtpMailer.Configured, dispatcher.Recipients)
	helloHandler := handlers.NewHelloHandler()

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(cors.New(buildCORSConfig(cfg)))

	// Routes
	registerRoutes(router, leadHandler, healthHandler, helloHandler)

	// Create HTTP server
	// Bind to all interfaces for container networking; exposure is controlled
	// by the deployment, not the listener
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
