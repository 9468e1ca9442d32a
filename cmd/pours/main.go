package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tapstand/pours/internal/auth"
	"github.com/tapstand/pours/internal/config"
	"github.com/tapstand/pours/internal/core/storage"
	"github.com/tapstand/pours/internal/core/storage/memory"
	"github.com/tapstand/pours/internal/core/storage/postgres"
	"github.com/tapstand/pours/internal/ingestion"
	"github.com/tapstand/pours/internal/migrations"
	"github.com/tapstand/pours/internal/observability/metrics"
	"github.com/tapstand/pours/internal/server"
	"github.com/tapstand/pours/internal/summary"
	"github.com/tapstand/pours/internal/validation"
)

func main() {
	configPath := flag.String("config", "pours.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; deployments usually set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"server", fmtAddr(cfg.Server.Host, cfg.Server.Port),
		"database_type", cfg.Database.Type)

	// 2. Initialize Storage
	var (
		eventStore   storage.EventStore
		summaryStore storage.SummaryStore
		db           *sql.DB
	)
	switch cfg.Database.Type {
	case "memory":
		slog.Warn("Using in-memory store; data is lost on restart")
		store := memory.NewStore()
		eventStore, summaryStore = store, store
	default:
		adapter, err := postgres.NewAdapter(
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()

		// 2.1. Run Database Migrations
		if err := migrations.RunMigrations(adapter.DB(), cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		if err := adapter.ValidateSchema(); err != nil {
			slog.Error("Schema validation failed - did you run migrations?", "error", err)
			os.Exit(1)
		}

		eventStore, summaryStore = adapter, adapter
		db = adapter.DB()
	}

	// 3. Initialize Metrics
	metrics.Init()

	// 4. Initialize Services
	rules := validation.NewRules(
		cfg.Allowlists.Products,
		cfg.Allowlists.Locations,
		cfg.Allowlists.VolumesMl,
	)
	ingestionSvc := ingestion.NewService(eventStore, rules)
	summarySvc := summary.NewService(summaryStore)

	// 5. Initialize Server
	// /health and /metrics stay outside the API key guard.
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), db, cfg.Server.Mode)
	if cfg.Auth.APIKey == "" {
		slog.Warn("auth.api_key is not configured; all /v1 requests will be refused")
	}
	protected := srv.Engine.Group("/", auth.APIKey(cfg.Auth.APIKey))
	ingestionSvc.RegisterRoutes(protected)
	summarySvc.RegisterRoutes(protected)

	// 6. Start Server
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
