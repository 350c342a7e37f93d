package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"datalens/internal/analysis"
	"datalens/internal/config"
	apierrors "datalens/internal/errors"
	"datalens/internal/infrastructure"
	customMiddleware "datalens/internal/middleware"
	"datalens/internal/services"
	handlers "datalens/internal/transport/http"
)

const AppName = "DataLens"

// Version and BuildTime are set at compile time via -ldflags.
var (
	Version   = "dev"
	BuildTime = ""
)

// Application is the main application container.
type Application struct {
	Config         *config.Config
	Router         *chi.Mux
	Server         *http.Server
	Logger         *slog.Logger
	Metrics        *infrastructure.Metrics
	AnalysisClient *analysis.Client
	DatasetService *services.DatasetService
	HealthService  *services.HealthService

	registry *prometheus.Registry
}

// New creates the application with all dependencies wired.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("analytics_engine", cfg.Analytics.BaseURL))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := infrastructure.NewMetrics(registry)

	client := analysis.NewClient(cfg.Analytics, logger)

	a := &Application{
		Config:         cfg,
		Logger:         logger,
		Metrics:        metrics,
		AnalysisClient: client,
		DatasetService: services.NewDatasetService(cfg, client, metrics, logger),
		HealthService:  services.NewHealthService(Version, BuildTime, client, logger),
		registry:       registry,
	}

	a.Router = a.setupRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return a, nil
}

// setupRouter builds the chi router. The metrics endpoint sits outside
// the API group so scrapes bypass rate limiting and request timeouts.
func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(a.Config.Security.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		if a.Config.Security.RateLimit.Enabled {
			limiter := customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger)
			r.Use(limiter.Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.Health)
		r.Get("/health/ready", healthHandler.Ready)
		r.Get("/health/live", healthHandler.Live)
		r.Get("/version", healthHandler.Version)

		errorHandler := apierrors.NewErrorHandler(a.Logger)

		datasetHandler := handlers.NewDatasetHandler(a.DatasetService, a.Logger, errorHandler)
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.RequestSize(a.Config.Server.MaxUploadBytes))
			r.Mount("/datasets", datasetHandler.Routes())
		})

		sentimentHandler := handlers.NewSentimentHandler(a.AnalysisClient, a.Logger, errorHandler)
		r.Post("/analyze-text", sentimentHandler.AnalyzeText)
	})

	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	return r
}

// Run starts the HTTP server and blocks until an interrupt or server
// failure, then shuts down gracefully within the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening",
			slog.String("address", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down",
			slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	err := g.Wait()
	infrastructure.CloseLogFile()
	return err
}
