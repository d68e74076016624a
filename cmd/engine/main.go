package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"jobtrack-engine/internal/bridge"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/httpapi"
	"jobtrack-engine/internal/logging"
	"jobtrack-engine/internal/scheduler"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/scrape/util"
	"jobtrack-engine/internal/secrets"
	"jobtrack-engine/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "engine:", err)
		os.Exit(1)
	}
}

func run() error {
	// Engine data dir: use env if provided, else local folder.
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// One engine per data dir.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running for %s", dataDir)
	}
	defer lock.Unlock()

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if err := config.OverlayEnv(&cfg); err != nil {
			return cfg, err
		}
		cfg, vr := config.NormalizeAndValidate(cfg)
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %v", vr.Errors)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	logger := logging.New(os.Stderr, cfg.Log.Level)
	_, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		logger.Warn("config", "warning", w)
	}

	dbPath := filepath.Join(dataDir, "jobtrack.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	tracker := store.NewTracker(store.NewSQLiteKV(db.Pool), store.WithBoardDefaults(cfg.BoardDefaults()))

	token, err := secrets.EnsureToken(secrets.TokenAccount(dataDir))
	if err != nil {
		if cfg.App.RequireToken {
			return fmt.Errorf("engine token: %w", err)
		}
		logger.Warn("keychain unavailable; shutdown endpoint disabled", "err", err)
	}

	ex := scrape.NewExtractor(scrape.WithLogger(logger.WithPrefix("scrape")))
	fetcher := bridge.NewFetcher(ex, bridge.FetcherOptions{
		Timeout:   cfg.FetchTimeout(),
		UserAgent: cfg.Fetch.UserAgent,
		MaxBody:   cfg.Fetch.MaxBodyBytes,
		Limiter:   util.NewHostLimiter(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst),
	})
	hub := events.NewHub()

	deps := httpapi.Deps{
		Tracker:     tracker,
		DB:          db,
		Hub:         hub,
		Log:         logger.WithPrefix("http"),
		Extractor:   ex,
		Host:        bridge.NewHost(ex, logger.WithPrefix("bridge")),
		Fetcher:     fetcher,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Token:       token,
	}
	mux := httpapi.NewMux(deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Backup.Enabled {
		go scheduler.Every(ctx, logger, cfg.BackupInterval(), "backup", backupTask(tracker, dataDir, logger.WithPrefix("backup")))
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler: httpapi.Handler(mux, deps, func() bool {
			return cfgVal.Load().(config.Config).App.RequireToken
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if token != "" {
		mux.HandleFunc("/shutdown", shutdownHandler(token, srv))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("engine listening", "addr", "http://"+addr, "db", dbPath, "config", userCfgPath)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := db.Checkpoint(context.Background()); err != nil {
		logger.Warn("final checkpoint failed", "err", err)
	}
	logger.Info("engine stopped")
	return nil
}
