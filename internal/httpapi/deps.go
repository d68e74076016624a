package httpapi

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/bridge"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/scrape"
	"jobtrack-engine/internal/store"
)

type Deps struct {
	Tracker *store.Tracker
	DB      *store.DB // optional, enables /db/checkpoint

	Hub *events.Hub
	Log *log.Logger

	// Extraction boundary
	Extractor *scrape.Extractor
	Host      *bridge.Host
	Fetcher   *bridge.Fetcher

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Token guards mutating routes when app.require_token is set.
	Token string
}
