package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hollandm/webscout/internal/adapter/google"
	"github.com/hollandm/webscout/internal/adapter/lrucache"
	wsmcp "github.com/hollandm/webscout/internal/adapter/mcp"
	otelx "github.com/hollandm/webscout/internal/adapter/otel"
	"github.com/hollandm/webscout/internal/adapter/webpage"
	"github.com/hollandm/webscout/internal/adapter/wikipedia"
	"github.com/hollandm/webscout/internal/config"
	"github.com/hollandm/webscout/internal/logger"
	"github.com/hollandm/webscout/internal/resilience"
	"github.com/hollandm/webscout/internal/service"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	log.Info("config loaded",
		"transport", cfg.Server.Transport,
		"log_level", cfg.Logging.Level,
		"google_configured", cfg.Google.APIKey != "" && cfg.Google.EngineID != "",
		"wikipedia_language", cfg.Wikipedia.Language,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	shutdownTelemetry, err := otelx.Init(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := otelx.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Cache pools ---
	searchPool := lrucache.New("search", cfg.Cache.Search.MaxEntries, cfg.Cache.Search.TTL)
	wikiPool := lrucache.New("wiki", cfg.Cache.Wiki.MaxEntries, cfg.Cache.Wiki.TTL)

	// --- Upstream adapters ---
	retry := resilience.NewRetryPolicy(resilience.RetryPolicy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.Retry.InitialDelay,
		MaxDelay:     cfg.Retry.MaxDelay,
		Multiplier:   cfg.Retry.Multiplier,
	})

	searcher := google.New(cfg.Google, cfg.Upstream.Timeout, retry,
		resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout), log)
	wiki := wikipedia.New(cfg.Wikipedia, cfg.Upstream.Timeout, retry,
		resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout), log)
	fetcher := webpage.New(cfg.Fetch, cfg.Upstream.Timeout, retry, log)

	// --- Services ---
	defaults := service.Defaults{
		SearchResults: cfg.Google.DefaultResults,
		WikiLimit:     5,
		Sentences:     3,
		FetchLength:   cfg.Fetch.DefaultLength,
	}
	dispatcher := service.NewDispatcher(searchPool, wikiPool, searcher, wiki, fetcher, defaults, log, metrics)
	reader := service.NewReader(searchPool, wikiPool, defaults, log)

	srv := wsmcp.NewServer(
		wsmcp.ServerConfig{
			Name:    cfg.Logging.Service,
			Version: version,
			Addr:    ":" + cfg.Server.Port,
			APIKey:  cfg.Server.APIKey,
		},
		wsmcp.ServerDeps{Dispatcher: dispatcher, Reader: reader},
		log,
	)

	g, ctx := errgroup.WithContext(ctx)

	switch cfg.Server.Transport {
	case "stdio":
		g.Go(srv.ServeStdio)
	case "http":
		if err := srv.Start(); err != nil {
			return fmt.Errorf("mcp http server: %w", err)
		}
		g.Go(func() error {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		})
	default:
		return fmt.Errorf("unknown transport %q", cfg.Server.Transport)
	}

	return g.Wait()
}
