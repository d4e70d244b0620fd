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
	"github.com/go-chi/render"

	"agricli/internal/config"
	"agricli/internal/dataprocessing"
	"agricli/internal/infrastructure"
	customMiddleware "agricli/internal/middleware"
	"agricli/internal/services"
	"agricli/internal/store"
	handlers "agricli/internal/transport/http"
)

const (
	// AppName is the application name used in logs
	AppName = "agricli"
	// Version is the application version
	Version = "1.0.0"
)

// Application holds the wired dashboard components.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Paths  *config.Paths
	Store  *store.Store
	Router chi.Router
	Server *http.Server

	queryService  *services.QueryService
	healthService *services.HealthService
}

// NewApplication creates and wires a new dashboard application. The cleaned
// dataset is loaded into the query store once at startup.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	app := &Application{
		Config: cfg,
		Logger: logger,
		Paths:  paths,
	}

	if err := app.initializeStore(); err != nil {
		return nil, err
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeStore opens the cache database and loads the cleaned table.
func (a *Application) initializeStore() error {
	s, err := store.Open(a.Paths.StoreDB, a.Config.Store.TableName, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	table, err := dataprocessing.ReadTable(a.Paths.CleanedCSV)
	if err != nil {
		s.Close()
		return fmt.Errorf("failed to read cleaned dataset %s: %w", a.Paths.CleanedCSV, err)
	}

	if err := s.LoadTable(context.Background(), table); err != nil {
		s.Close()
		return fmt.Errorf("failed to load store: %w", err)
	}

	a.Store = s
	return nil
}

func (a *Application) initializeServices() {
	a.queryService = services.NewQueryService(a.Store, a.Logger)
	a.healthService = services.NewHealthService(Version, a.Store, a.Logger)
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))

		if !a.Config.Security.DisableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}

		if !a.Config.Security.RateLimit.Disabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	// Prometheus endpoint stays outside the middleware group
	r.Handle("/metrics", infrastructure.MetricsHandler())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.healthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		queryHandler := handlers.NewQueryHandler(a.queryService, a.Logger)
		r.Mount("/queries", queryHandler.Routes())
		r.Get("/summary", queryHandler.Summary)
	})
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		ExposedHeaders: []string{"X-Request-ID"},
		Logger:         a.Logger,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server in the background.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	a.Logger.InfoContext(ctx, "application paths",
		slog.String("data_dir", a.Paths.DataDir),
		slog.String("cleaned_csv", a.Paths.CleanedCSV),
		slog.String("store_db", a.Paths.StoreDB),
		slog.String("logs_dir", a.Paths.LogsDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.ErrorContext(ctx, "error closing store", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
