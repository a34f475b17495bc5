// Package main is the entry point for the skycheck API server.
//
// It loads configuration, builds the forecast pipeline (Open-Meteo provider,
// compressed snapshot cache, fetch service), wires the commute, paragliding
// and launch-site handlers onto the core HTTP chassis, and serves requests
// until a shutdown signal arrives.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"skycheck/internal/api/handlers"
	"skycheck/internal/config"
	"skycheck/internal/core"
	"skycheck/internal/forecast"
	"skycheck/internal/paragliding"
	"skycheck/internal/sites"
	"skycheck/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("skycheck API starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"port", cfg.Server.Port,
	)

	// Forecast pipeline: HTTP provider with retry/circuit-breaker, backed by
	// a compressed in-memory snapshot cache.
	httpClient := &http.Client{Timeout: cfg.Forecast.HTTPTimeout}
	provider := forecast.NewProvider(
		cfg.Forecast.BaseURL,
		httpClient,
		forecast.DefaultRetryPolicy(),
		cfg.Forecast.UserAgent,
	)
	cache := forecast.NewSnapshotCache(cfg.Forecast.CacheTTL, types.SystemClock{})
	forecastSvc := forecast.NewService(provider, cache)

	registry := sites.NewRegistry(nil)
	analyzer := paragliding.NewAnalyzer()

	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	commuteHandler := handlers.NewCommuteHandler(
		forecastSvc,
		cfg.Forecast.ForecastDays,
		cfg.Commute.DefaultShiftWindow(),
		srv.Validator,
		logger,
	)
	paraglidingHandler := handlers.NewParaglidingHandler(
		forecastSvc,
		cfg.Forecast.ForecastDays,
		analyzer,
		registry,
		logger,
	)
	sitesHandler := handlers.NewSitesHandler(registry, logger)

	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars,
		func(r chi.Router) { r.Route("/commute", commuteHandler.RegisterRoutes) },
		func(r chi.Router) { r.Route("/paragliding", paraglidingHandler.RegisterRoutes) },
		func(r chi.Router) { r.Route("/sites", sitesHandler.RegisterRoutes) },
	)

	srv.HealthProbes = append(srv.HealthProbes,
		&upstreamProbe{baseURL: cfg.Forecast.BaseURL, client: httpClient},
	)

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server resource shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: false,
	})
	return slog.New(handler)
}

// upstreamProbe reports whether the forecast upstream is reachable. It only
// checks connectivity, not response correctness, so a rate-limited upstream
// still counts as healthy.
type upstreamProbe struct {
	baseURL string
	client  *http.Client
}

func (p *upstreamProbe) Name() string { return "forecast_upstream" }

func (p *upstreamProbe) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

var _ core.HealthProbe = (*upstreamProbe)(nil)
