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

	"github.com/okian/pitchside/internal/adapters/http/api"
	"github.com/okian/pitchside/internal/adapters/http/swagger"
	"github.com/okian/pitchside/internal/adapters/mcp"
	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/adapters/scheduler"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // build metadata

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("pitchside: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	jobs, err := newScheduler(cfg, svc, log)
	if err != nil {
		return err
	}
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		if err := jobs.Stop(); err != nil {
			log.Error(ctx, "scheduler shutdown failed", logger.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("data_file", cfg.DataFile),
			logger.Bool("mcp", cfg.MCPEnabled),
			logger.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newService wires the document store and scoring table into the service.
func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	weights, err := cfg.Weights()
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring table: %w", err)
	}

	storeOpts := []repository.Option{repository.WithLogger(log.Named("repository"))}
	if cfg.BackupDir != "" {
		storeOpts = append(storeOpts, repository.WithBackupDir(cfg.BackupDir))
	}

	return service.New(
		service.WithLogger(log.Named("service")),
		service.WithStore(repository.NewFileStore(cfg.DataFile, storeOpts...)),
		service.WithWeights(weights),
		service.WithSkills(cfg.Skills),
		service.WithWindowDays(cfg.WindowDays),
		service.WithTopMovers(cfg.TopMovers),
		service.WithTopPerMatch(cfg.TopPerMatch),
		service.WithSearchThreshold(cfg.SearchThreshold),
	), nil
}

// newScheduler registers backups only when a backup directory is configured.
func newScheduler(cfg *config.Config, svc *service.Service, log logger.Logger) (*scheduler.Scheduler, error) {
	var backup scheduler.Backuper
	if cfg.BackupDir != "" {
		backup = svc
	}
	s, err := scheduler.New(backup, svc,
		scheduler.WithBackupCron(cfg.BackupCron),
		scheduler.WithGaugeInterval(cfg.GaugeInterval),
		scheduler.WithLogger(log.Named("scheduler")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return s, nil
}

// newHandler mounts the API, the API docs and, when enabled, the MCP endpoint.
func newHandler(cfg *config.Config, svc *service.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	api.NewServer(svc, api.WithLogger(log.Named("api"))).Register(mux)
	swagger.Register(mux)

	if cfg.MCPEnabled {
		mux.Handle("/mcp", mcp.New(svc, version, mcp.WithLogger(log.Named("mcp"))).Handler())
	}

	return api.RequestIDMiddleware(log.Named("http"), mux)
}
