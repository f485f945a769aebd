package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docrender/internal/api"
	"github.com/dgallion1/docrender/internal/config"
	"github.com/dgallion1/docrender/internal/pipeline"
	"github.com/dgallion1/docrender/internal/theme"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	themes, err := theme.LoadDir(cfg.ThemeDir)
	if err != nil {
		log.Error("failed to load themes", "dir", cfg.ThemeDir, "error", err)
		os.Exit(1)
	}
	if _, ok := themes.Get(cfg.DefaultTheme); !ok {
		log.Error("default theme not found", "theme", cfg.DefaultTheme, "available", themes.Names())
		os.Exit(1)
	}
	log.Info("themes loaded", "themes", themes.Names(), "default", cfg.DefaultTheme)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, themes, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docrender", "port", cfg.Port, "workers", cfg.WorkerCount)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			orch.Stop()
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down...")
	}

	// Stop accepting uploads before the queue closes.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	orch.Stop()
	log.Info("stopped")
}
