package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-management-api/internal"
	"asset-management-api/internal/config"
	"asset-management-api/internal/logger"
	"asset-management-api/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		l := logger.New(logger.Config{Env: os.Getenv("APP_ENV")})
		l.Fatal().Err(err).Msg("configuration error")
	}
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.HTTPAddr).Msg("failed to listen")
	}
	if err := run(ctx, cfg, log, ln); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// run serves the API on ln until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, ln net.Listener) error {
	db, err := store.Open(cfg.Database, log)
	if err != nil {
		ln.Close()
		return err
	}
	st := store.New(db)
	srv := internal.NewServer(cfg, st, log)
	defer func() {
		if err := srv.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := st.Migrate(ctx); err != nil {
		ln.Close()
		return fmt.Errorf("migrate: %w", err)
	}

	httpServer := &http.Server{
		Handler:           srv.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	log.Info().
		Str("addr", ln.Addr().String()).
		Str("driver", cfg.Database.Driver).
		Bool("metrics", cfg.EnableMetrics).
		Msg("starting asset management API")

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
