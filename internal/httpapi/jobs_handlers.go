package httpapi

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type JobsHandler struct {
	Tracker *store.Tracker
	Hub     *events.Hub
	Log     *log.Logger
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Tracker.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, jobs)
}

type duplicateResp struct {
	APIError
	Existing domain.JobRecord `json:"existing"`
}

// Create saves a job. A duplicate is a 409 warning carrying the record that
// is already tracked.
func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.NewJob
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	rec, err := h.Tracker.SaveJob(r.Context(), in)
	if errors.Is(err, store.ErrDuplicate) {
		var resp duplicateResp
		resp.Error.Code = "duplicate"
		resp.Error.Message = err.Error()
		resp.Error.RequestID = RequestIDFrom(r.Context())
		resp.Existing = rec
		WriteJSON(w, http.StatusConflict, resp)
		return
	}
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	h.Hub.Emit(RequestIDFrom(r.Context()), events.JobCreated, rec)
	WriteJSON(w, http.StatusCreated, rec)
}

func (h JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.JobPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	rec, err := h.Tracker.UpdateJob(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.JobUpdated, rec)
	writeJSON(w, rec)
}

func (h JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Tracker.DeleteJob(r.Context(), id); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.JobDeleted, map[string]any{"id": id})
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
