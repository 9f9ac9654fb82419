package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shiftlog/importer/internal/config"
	"github.com/shiftlog/importer/internal/importer"
	"github.com/shiftlog/importer/internal/logging"
	"github.com/shiftlog/importer/internal/pgwriter"
	"github.com/shiftlog/importer/internal/schema"
	"github.com/shiftlog/importer/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"max_sessions", cfg.Import.MaxSessions,
		"session_ttl", cfg.Import.SessionTTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()
	writer, pool, err := pgwriter.NewPool(ctx, cfg.Database.URL, int32(cfg.Database.MaxConns))
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	slog.Info("import targets registered", "count", len(schema.All()))
	for _, target := range schema.All() {
		slog.Debug("import target", "key", target.Key, "columns", len(target.Columns))
	}

	manager := importer.NewManager(writer, cfg.Import.SessionTTL, cfg.Import.MaxSessions)
	server := web.NewServer(manager, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
