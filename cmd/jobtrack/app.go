package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"jobtrack-engine/internal/bridge"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/logging"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/scrape/util"
	"jobtrack-engine/internal/store"
)

// app is what every command needs: config, logger and lazily the store.
type app struct {
	dataDir string
	cfg     config.Config
	log     *log.Logger

	lock    *flock.Flock
	db      *store.DB
	tracker *store.Tracker
}

func newApp(dataDir, level string) (*app, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	path, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := config.OverlayEnv(&cfg); err != nil {
		return nil, err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		return nil, fmt.Errorf("invalid config %s: %v", path, vr.Errors)
	}
	if level == "" {
		level = cfg.Log.Level
	}
	return &app{dataDir: dataDir, cfg: cfg, log: logging.New(os.Stderr, level)}, nil
}

// withStore takes the data dir lock, opens the tracker for fn and releases
// both afterwards. It fails while an engine is serving the same data dir.
func (a *app) withStore(fn func(tr *store.Tracker) error) error {
	tr, err := a.openStore()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(tr)
}

func (a *app) openStore() (*store.Tracker, error) {
	a.lock = flock.New(filepath.Join(a.dataDir, "engine.lock"))
	ok, err := a.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock data dir: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("an engine is running for %s; use its HTTP API or stop it first", a.dataDir)
	}

	db, err := store.Open(filepath.Join(a.dataDir, "jobtrack.db"))
	if err != nil {
		_ = a.lock.Unlock()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.db = db
	a.tracker = store.NewTracker(store.NewSQLiteKV(db.Pool), store.WithBoardDefaults(a.cfg.BoardDefaults()))
	return a.tracker, nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Checkpoint(context.Background())
		_ = a.db.Close()
		a.db = nil
	}
	if a.lock != nil {
		_ = a.lock.Unlock()
		a.lock = nil
	}
	a.tracker = nil
}

func (a *app) scraper() (*bridge.Host, *bridge.Fetcher) {
	ex := scrape.NewExtractor(scrape.WithLogger(a.log.WithPrefix("scrape")))
	f := bridge.NewFetcher(ex, bridge.FetcherOptions{
		Timeout:   a.cfg.FetchTimeout(),
		UserAgent: a.cfg.Fetch.UserAgent,
		MaxBody:   a.cfg.Fetch.MaxBodyBytes,
		Limiter:   util.NewHostLimiter(a.cfg.Fetch.RequestsPerSecond, a.cfg.Fetch.Burst),
	})
	return bridge.NewHost(ex, a.log.WithPrefix("bridge")), f
}
