package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/me/patrol/internal/config"
	"github.com/me/patrol/internal/engine"
	"github.com/me/patrol/internal/jobs"
	"github.com/me/patrol/internal/logging"
	"github.com/me/patrol/internal/reconciler"
	"github.com/me/patrol/internal/server"
	"github.com/me/patrol/internal/store"
)

func main() {
	cfg := config.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.patrol/patrol.db)")
	flag.StringVar(&cfg.JobsPath, "jobs", cfg.JobsPath, "Job catalog YAML path")
	flag.DurationVar(&cfg.ShutdownGrace, "shutdown-grace", cfg.ShutdownGrace, "How long to wait for in-flight firings on shutdown")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".patrol")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "patrol.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	// Load the job catalog and build runnable bodies.
	catalog, err := jobs.LoadCatalog(cfg.JobsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load job catalog: %v\n", err)
		os.Exit(1)
	}
	reg := jobs.NewRegistry(logger)
	reg.Register(jobs.NewHTTPCollector(logger))
	reg.Register(jobs.NewHeartbeat(logger))

	regs, err := reg.Registrations(catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build job registrations: %v\n", err)
		os.Exit(1)
	}
	logger.Info("job catalog loaded", "path", cfg.JobsPath, "jobs", len(regs))

	// Bring up the engine and seed it through the reconciler.
	eng := engine.New(logger)
	rec := reconciler.New(eng, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rec.Bootstrap(ctx, regs); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap jobs: %v\n", err)
		os.Exit(1)
	}
	eng.Start()

	srv := server.New(cfg, st, rec, logger)
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Stop accepting requests first, then drain in-flight firings.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancelDrain()
	if err := eng.Stop(drainCtx); err != nil {
		logger.Error("engine stop error", "error", err)
	}

	logger.Info("server stopped")
}
