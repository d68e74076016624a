package httpapi

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	logger := d.Log
	if logger == nil {
		logger = log.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{Version: "1"}.Health,
	}))

	// Jobs
	jh := JobsHandler{Tracker: d.Tracker, Hub: d.Hub, Log: logger}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	}))
	mux.HandleFunc("/jobs/{id}", methodMux(map[string]http.HandlerFunc{
		http.MethodPatch:  jh.Update,
		http.MethodDelete: jh.Delete,
	}))

	// Extraction
	sch := ScrapeHandler{Extractor: d.Extractor, Host: d.Host, Fetcher: d.Fetcher, Log: logger}
	mux.HandleFunc("/scrape", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Scrape,
	}))
	mux.HandleFunc("/extract", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Extract,
	}))

	// Exports
	xh := ExportHandler{Tracker: d.Tracker, Log: logger}
	mux.HandleFunc("/export.csv", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.CSV,
	}))
	mux.HandleFunc("/export.xlsx", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.XLSX,
	}))

	// Board
	bh := BoardHandler{Tracker: d.Tracker, Hub: d.Hub, Log: logger}
	mux.HandleFunc("/board", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Get,
	}))
	mux.HandleFunc("/board/columns", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: bh.AddColumn,
	}))
	mux.HandleFunc("/board/columns/{name}/width", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: bh.SetWidth,
	}))
	mux.HandleFunc("/board/columns/{name}/color", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: bh.SetColor,
	}))
	mux.HandleFunc("/settings/theme", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.GetTheme,
		http.MethodPut: bh.PutTheme,
	}))

	// Config
	if d.CfgVal != nil {
		ch := ConfigHandler{
			CfgVal:      d.CfgVal,
			UserCfgPath: d.UserCfgPath,
			LoadCfg:     d.LoadCfg,
		}
		mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Get,
			http.MethodPut: ch.Put,
		}))
		mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Path,
		}))
		mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: ch.Validate,
		}))
	}

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	if d.DB != nil {
		dh := DBHandler{DB: d.DB, Log: logger}
		mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
			http.MethodPost: dh.Checkpoint,
		}))
	}

	return mux
}

// Handler wraps mux with the standard middleware chain.
func Handler(mux http.Handler, d Deps, requireToken func() bool) http.Handler {
	logger := d.Log
	if logger == nil {
		logger = log.Default()
	}
	return Chain(mux,
		RequestID,
		Recover(logger),
		AccessLog(logger),
		Cors(d.originAllowed),
		RequireToken(d.Token, requireToken, d.originAllowed),
	)
}
