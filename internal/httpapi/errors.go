package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/export"
	"jobtrack-engine/internal/store"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, store.ErrColumnExists):
		return http.StatusConflict, "column_exists"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, export.ErrNothingToExport):
		return http.StatusNotFound, "nothing_to_export"
	case errors.Is(err, store.ErrMissingFields),
		errors.Is(err, store.ErrInvalidDate),
		errors.Is(err, store.ErrUnknownStatus),
		errors.Is(err, store.ErrInvalidColumn),
		errors.Is(err, store.ErrInvalidColor),
		errors.Is(err, store.ErrInvalidTheme):
		return http.StatusBadRequest, "invalid"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeDomainError writes err as an API error. Storage failures are logged
// and surfaced as 500s, never swallowed.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "request_id", RequestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
		}
		msg = "storage error: " + err.Error()
	}
	WriteError(w, r, status, code, msg)
}
