package httpapi

import (
	"net/http"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/store"
)

type DBHandler struct {
	DB  *store.DB
	Log *log.Logger
}

// Checkpoint flushes the WAL so the database file can be copied. Loopback
// callers only.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !isLoopback(r) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}
	if err := h.DB.Checkpoint(r.Context()); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
