package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trendchart/internal/config"
	"trendchart/internal/fetchers"
	"trendchart/internal/logger"
	"trendchart/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// Run builds the service from cfg and serves until ctx is cancelled.
// A document that fails to load is logged and the service starts empty;
// POST /reload can retry it.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.GetGlobalLogger().WithComponent("main")

	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		log.Warn("Snapshot storage unavailable", map[string]interface{}{"error": err.Error()})
		store = nil
	}

	srv, err := NewServer(cfg, fetchers.NewDocumentFetcher(), store)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	if err := srv.LoadDocument(ctx); err != nil {
		log.Warn("Starting without chart data", map[string]interface{}{"error": err.Error()})
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port":        cfg.Port,
			"environment": cfg.Environment,
			"storage":     cfg.StorageMode,
			"version":     config.GetVersion(),
		})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
