package httpapi

import (
	"net/http"

	"github.com/charmbracelet/log"

	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type BoardHandler struct {
	Tracker *store.Tracker
	Hub     *events.Hub
	Log     *log.Logger
}

func (h BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Tracker.Board(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, b)
}

type addColumnReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h BoardHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	var req addColumnReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	b, err := h.Tracker.AddColumn(r.Context(), req.Name, req.Color)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.BoardUpdated, b)
	WriteJSON(w, http.StatusCreated, b)
}

type widthReq struct {
	Width int `json:"width"`
}

func (h BoardHandler) SetWidth(w http.ResponseWriter, r *http.Request) {
	var req widthReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	name := r.PathValue("name")
	width, err := h.Tracker.SetColumnWidth(r.Context(), name, req.Width)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.BoardUpdated, map[string]any{"column": name, "width": width})
	writeJSON(w, map[string]any{"column": name, "width": width})
}

type colorReq struct {
	Color string `json:"color"`
}

func (h BoardHandler) SetColor(w http.ResponseWriter, r *http.Request) {
	var req colorReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	name := r.PathValue("name")
	if err := h.Tracker.SetColumnColor(r.Context(), name, req.Color); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	b, err := h.Tracker.Board(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.BoardUpdated, map[string]any{"column": name, "color": b.Colors[name]})
	writeJSON(w, map[string]any{"column": name, "color": b.Colors[name]})
}

type themeReq struct {
	Theme string `json:"theme"`
}

func (h BoardHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.Tracker.Theme(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, themeReq{Theme: theme})
}

func (h BoardHandler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var req themeReq
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := h.Tracker.SetTheme(r.Context(), req.Theme); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.ThemeUpdated, req)
	writeJSON(w, req)
}
