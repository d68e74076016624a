package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/bridge"
	"jobtrack-engine/internal/scrape"
)

const maxSnapshotBytes = 5 << 20

type ScrapeHandler struct {
	Extractor *scrape.Extractor
	Host      *bridge.Host
	Fetcher   *bridge.Fetcher
	Log       *log.Logger
}

// Scrape runs the extraction request/response exchange against a fetched
// page. Unreachable pages still answer 200 with a warning and the empty
// candidate.
func (h ScrapeHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req bridge.Request
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if req.Action != bridge.ActionScrapeJob {
		WriteError(w, r, http.StatusBadRequest, "unknown_action", bridge.ErrUnknownAction.Error()+": "+req.Action)
		return
	}
	pageURL := strings.TrimSpace(req.URL)
	if pageURL == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid", "url is required")
		return
	}

	writeJSON(w, h.Host.Scrape(r.Context(), h.Fetcher.Open(pageURL), pageURL))
}

// Extract runs the extractor over an HTML snapshot posted by the caller,
// for pages the engine cannot fetch itself.
func (h ScrapeHandler) Extract(w http.ResponseWriter, r *http.Request) {
	pageURL := strings.TrimSpace(r.URL.Query().Get("url"))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			WriteError(w, r, http.StatusRequestEntityTooLarge, "too_large", "snapshot too large")
			return
		}
		WriteError(w, r, http.StatusBadRequest, "invalid", "read body: "+err.Error())
		return
	}

	page, err := scrape.ParseHTML(string(body), pageURL)
	if err != nil {
		h.Log.Debug("snapshot parse failed", "url", pageURL, "err", err)
		writeJSON(w, bridge.Result{Candidate: h.Extractor.Empty(pageURL), Warning: bridge.MsgUnreachable})
		return
	}
	writeJSON(w, h.Host.Scrape(r.Context(), bridge.StaticPage{Page: page, Ex: h.Extractor}, pageURL))
}
