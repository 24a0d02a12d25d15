package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/user-registration/app/internal/config"
	"github.com/user-registration/app/internal/database"
	"github.com/user-registration/app/internal/handlers"
	"github.com/user-registration/app/internal/logging"
	"github.com/user-registration/app/internal/registration"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	store, err := database.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	// A store that cannot be prepared does not stop the server: the form
	// reports the failure and refuses submissions instead.
	storeErr := store.Ensure(ctx)
	if storeErr != nil {
		logger.Error("users store unavailable", "backend", cfg.StoreBackend, "path", cfg.StorePath, "error", storeErr)
	}

	if err := handlers.LoadTemplates(cfg.TemplatesDir); err != nil {
		return err
	}

	reg := registration.NewRegistrar(store, cfg.BcryptCost)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           logging.Middleware(logger, handlers.NewRouter(reg, storeErr)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "backend", cfg.StoreBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
