package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/grandexchange-data/internal/api"
	"github.com/rickgao/grandexchange-data/internal/config"
	"github.com/rickgao/grandexchange-data/internal/database"
	"github.com/rickgao/grandexchange-data/internal/logging"
	"github.com/rickgao/grandexchange-data/internal/poller"
	"github.com/rickgao/grandexchange-data/internal/version"
	"github.com/rickgao/grandexchange-data/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/collector.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single collection cycle and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "config", *configPath, "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		slog.Error("failed to create output dir", "dir", cfg.Output.Dir, "error", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger, closeLog, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	sources := cfg.API.SourceURLs()

	logger.Info("starting collector",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"sources", len(sources),
		"database", !cfg.Database.Disabled,
	)

	// Create API client
	apiClient := api.NewClient(
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.Retries(), cfg.API.RetryBackoff),
		api.WithUserAgent(cfg.API.UserAgent),
	)

	p := poller.New(poller.Config{
		Sources:   sources,
		Schedule:  cfg.Schedule.Cron,
		OutputDir: cfg.Output.Dir,
	}, apiClient, newSessionDialer(cfg.Database), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		res := p.RunOnce(ctx)
		logger.Info("single cycle finished", "cycle_id", res.CycleID, "ok", res.OK())
		return
	}

	if err := run(ctx, cfg, p, logger); err != nil {
		logger.Error("collector exited with error", "error", err)
		closeLog()
		os.Exit(1)
	}

	logger.Info("collector stopped")
}

// run supervises the health server and the poller until ctx is cancelled.
func run(ctx context.Context, cfg *config.CollectorConfig, p *poller.Poller, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Health.Port),
		Handler:           createHealthHandler(p, !cfg.Database.Disabled),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := p.Start(ctx); err != nil {
			return fmt.Errorf("start poller: %w", err)
		}
		<-ctx.Done()

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pollErr := p.Stop(shutdownCtx)
		return errors.Join(pollErr, healthServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// newSessionDialer returns nil when the database sink is disabled.
func newSessionDialer(cfg config.DBConfig) writer.SessionDialer {
	if cfg.Disabled {
		return nil
	}
	d := database.NewDialer(cfg)
	return writer.DialerFunc(func(ctx context.Context) (writer.TableSession, error) {
		s, err := d.Dial(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
