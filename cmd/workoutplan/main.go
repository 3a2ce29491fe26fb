package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/workoutplan/internal/config"
	"github.com/claude/workoutplan/internal/defaults"
	"github.com/claude/workoutplan/internal/importer"
	"github.com/claude/workoutplan/internal/logging"
	"github.com/claude/workoutplan/internal/mcp"
	"github.com/claude/workoutplan/internal/metrics"
	"github.com/claude/workoutplan/internal/server"
	"github.com/claude/workoutplan/internal/storage"
	"github.com/claude/workoutplan/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	reset := flag.Bool("reset", false, "restore the default plan, discarding all edits, and exit")
	yes := flag.Bool("yes", false, "confirm -reset")
	flag.Parse()

	cfg, err := config.Load(*configPath, !isFlagSet("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, closeLog := logging.New(cfg.Log)
	defer closeLog()
	log.Info("workoutplan starting", "version", Version)

	ctx := context.Background()

	kv, err := storage.Open(ctx, cfg.Storage.Path, cfg.Storage.MaxValueBytes)
	if err != nil {
		log.Error("failed to open storage", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	log.Info("storage opened", "path", cfg.Storage.Path)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	st := store.New(kv, log,
		store.WithKey(cfg.Storage.Key),
		store.WithMetrics(m),
		store.WithUserTemplate(defaults.NewUserTemplate),
	)

	if *reset {
		if !*yes {
			fmt.Fprintln(os.Stderr, "-reset discards every edit and cannot be undone; rerun with -reset -yes to confirm")
			os.Exit(1)
		}
		st.Initialize(ctx, defaults.Plan())
		st.Reset(ctx)
		if !st.Synced() {
			log.Error("reset applied in memory only; storage write failed")
			os.Exit(1)
		}
		log.Info("reset complete")
		return
	}

	srv := server.New(st, importer.New(st, log, m), m, log,
		server.WithAPIKey(cfg.Server.APIKey),
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins),
	)
	if cfg.MCP.Enabled {
		srv.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcp.New(st, Version, log)))
		log.Info("mcp endpoint enabled", "path", "/mcp")
	}

	addr := cfg.Server.Addr()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", "addr", addr, "error", err)
		os.Exit(1)
	}
	log.Info("server starting", "addr", addr)

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// API routes answer 503 until this returns
	st.Initialize(ctx, defaults.Plan())
	logPlan(log, st)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func logPlan(log *slog.Logger, st *store.Store) {
	plan := st.Snapshot()
	active := plan.ActiveUser()
	log.Info("plan ready",
		"title", plan.Metadata.Title,
		"users", len(plan.Users),
		"active_user", active.ID,
		"synced", st.Synced(),
	)
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
