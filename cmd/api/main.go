package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/config"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/platform/openweather"
	"bookshelf/internal/store"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookshelf: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookStore, err := store.Open(ctx, cfg.StoreURI, cfg.StoreTimeout)
	if err != nil {
		return fmt.Errorf("open store %s: %w", store.Redact(cfg.StoreURI), err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bookStore.Close(closeCtx); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()
	logger.Info("store connection OK", zap.String("uri", store.Redact(cfg.StoreURI)))

	if cfg.WeatherAPIKey == "" {
		logger.Warn("WEATHER_API_KEY is not set; /weather requests will fail upstream")
	}

	handler := newRouter(dependencies{
		store:          bookStore,
		weather:        openweather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout),
		logger:         logger,
		maxBodyBytes:   cfg.MaxBodyBytes,
		allowedOrigins: cfg.AllowedOrigins,
		enableHSTS:     cfg.EnableHSTS,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
