package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointment-service/internal/config"
	"appointment-service/internal/http-server/router"
	"appointment-service/internal/lock"
	svc "appointment-service/internal/service"
	"appointment-service/internal/storage/postgres"
	slogpretty "appointment-service/pkg/handlers/slogPretty"
	"appointment-service/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if cfg.Migrate {
		if err := storage.Migrate(context.Background()); err != nil {
			log.Error("Failed to apply schema", sl.Err(err))
			os.Exit(1)
		}
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(storage, locker, cfg.LockTTL)

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router.New(log, service),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		serverErrCh <- serv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	case err := <-serverErrCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		}
	}

	shutdown(log, serv, cfg.HTTPServer.ShutdownTimeout,
		closer{"storage", storage},
		closer{"locker", locker},
	)
}

type closer struct {
	name string
	c    io.Closer
}

// shutdown drains the server first, then releases backends in order.
func shutdown(log *slog.Logger, serv *http.Server, timeout time.Duration, closers ...closer) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", timeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	}

	for _, c := range closers {
		if err := c.c.Close(); err != nil {
			log.Error("Failed to close "+c.name, sl.Err(err))
			continue
		}
		log.Debug("Closed " + c.name)
	}

	log.Info("Shutdown finished")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
