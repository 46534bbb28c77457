// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/RmnRj/glossa/internal/annotation"
	"github.com/RmnRj/glossa/internal/api"
	"github.com/RmnRj/glossa/internal/docservice"
	"github.com/RmnRj/glossa/internal/index"
	"github.com/RmnRj/glossa/internal/sse"
	"github.com/RmnRj/glossa/internal/storage"
)

// BuildService constructs the document service and its SQLite index from the
// configuration, creating any missing directories. The caller owns the
// returned DB and must close it.
func BuildService(cfg *Config) (*docservice.Service, *index.DB, storage.Provider, error) {
	dirs := []string{
		cfg.Library.Path,
		cfg.Storage.AnnotationsPath,
		cfg.Storage.TopicsPath,
		cfg.Storage.NotesOutputPath,
		cfg.Storage.ExportsPath,
		filepath.Dir(cfg.SQLite.Path),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create dir %s: %w", d, err)
		}
	}

	ann, err := storage.NewDir(cfg.Storage.AnnotationsPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init annotations storage: %w", err)
	}
	top, err := storage.NewDir(cfg.Storage.TopicsPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init topics storage: %w", err)
	}
	library, err := storage.NewDir(cfg.Library.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init library storage: %w", err)
	}
	output, err := storage.NewDir(cfg.Storage.NotesOutputPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init notes output storage: %w", err)
	}
	exports, err := storage.NewDir(cfg.Storage.ExportsPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init exports storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}

	store := annotation.NewStore(ann, top)
	svc := docservice.NewService(store, db, library, output, exports)
	return svc, db, ann, nil
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("library_path", cfg.Library.Path),
		slog.String("annotations_path", cfg.Storage.AnnotationsPath),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, db, ann, err := BuildService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Run initial sync.
	if err := index.Sync(db, ann, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Build API router.
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token,
		broker.PublishAnnotationEvent, broker, cfg.Library.Path)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start annotation file watcher with SSE callback. Picks up imports and
	// out-of-band edits to the JSON files.
	g.Go(func() error {
		index.Watch(gCtx, db, ann, cfg.Storage.AnnotationsPath, logger, func(kind, file string) {
			broker.Publish(sse.Event{Type: "index." + kind, Data: map[string]string{"file": file}})
		})
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
