package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	Version string
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":      true,
		"version": h.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
