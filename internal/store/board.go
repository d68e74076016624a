package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"jobtrack-engine/internal/domain"
)

var hexColorRe = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// boardState is the raw stored board, before defaults are applied.
type boardState struct {
	columns      []string
	columnsFound bool
	widths       map[string]float64
	colors       map[string]string
}

func (t *Tracker) loadBoard(ctx context.Context) (boardState, error) {
	vals, err := t.kv.Get(ctx, KeyColumns, KeyColumnWidths, KeySectionColors)
	if err != nil {
		return boardState{}, fmt.Errorf("load board: %w", err)
	}

	st := boardState{
		widths: map[string]float64{},
		colors: map[string]string{},
	}
	if raw, ok := vals[KeyColumns]; ok && string(raw) != "null" {
		st.columnsFound = true
		_ = json.Unmarshal(raw, &st.columns)
	}
	if raw, ok := vals[KeyColumnWidths]; ok {
		var w map[string]float64
		if json.Unmarshal(raw, &w) == nil && w != nil {
			st.widths = w
		}
	}
	if raw, ok := vals[KeySectionColors]; ok {
		var c map[string]string
		if json.Unmarshal(raw, &c) == nil && c != nil {
			st.colors = c
		}
	}
	return st, nil
}

// Board returns the columns with their effective widths and colors. When no
// column list was ever stored the defaults are seeded and written back.
func (t *Tracker) Board(ctx context.Context) (domain.Board, error) {
	st, err := t.loadBoard(ctx)
	if err != nil {
		return domain.Board{}, err
	}

	columns := st.columns
	if len(columns) == 0 {
		columns = append([]string(nil), t.board.Columns...)
	}
	if !st.columnsFound {
		if err := t.set(ctx, KeyColumns, columns); err != nil {
			return domain.Board{}, err
		}
	}

	b := domain.Board{
		Columns: columns,
		Widths:  make(map[string]int, len(columns)),
		Colors:  make(map[string]string, len(columns)),
	}
	for _, c := range columns {
		b.Widths[c] = t.board.ClampWidth(int(math.Round(st.widths[c])))
		switch {
		case st.colors[c] != "":
			b.Colors[c] = st.colors[c]
		case t.board.Colors[c] != "":
			b.Colors[c] = t.board.Colors[c]
		default:
			b.Colors[c] = t.board.NewColumnColor
		}
	}
	return b, nil
}

// AddColumn appends a column with the default width and the given color
// (NewColumnColor when empty).
func (t *Tracker) AddColumn(ctx context.Context, name, color string) (domain.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Board{}, ErrInvalidColumn
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = t.board.NewColumnColor
	}
	if !hexColorRe.MatchString(color) {
		return domain.Board{}, ErrInvalidColor
	}

	b, err := t.Board(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	if b.HasColumn(name) {
		return domain.Board{}, ErrColumnExists
	}
	st, err := t.loadBoard(ctx)
	if err != nil {
		return domain.Board{}, err
	}

	columns := append(append([]string(nil), b.Columns...), name)
	st.widths[name] = float64(t.board.DefaultWidth)
	st.colors[name] = color

	if err := t.setAll(ctx, map[string]any{
		KeyColumns:       columns,
		KeyColumnWidths:  st.widths,
		KeySectionColors: st.colors,
	}); err != nil {
		return domain.Board{}, err
	}
	return t.Board(ctx)
}

// SetColumnWidth stores a clamped pixel width for an existing column.
func (t *Tracker) SetColumnWidth(ctx context.Context, name string, width int) (int, error) {
	b, err := t.Board(ctx)
	if err != nil {
		return 0, err
	}
	if !b.HasColumn(name) {
		return 0, ErrNotFound
	}
	st, err := t.loadBoard(ctx)
	if err != nil {
		return 0, err
	}
	w := t.board.ClampWidth(width)
	st.widths[name] = float64(w)
	if err := t.set(ctx, KeyColumnWidths, st.widths); err != nil {
		return 0, err
	}
	return w, nil
}

// SetColumnColor stores an accent color for an existing column.
func (t *Tracker) SetColumnColor(ctx context.Context, name, color string) error {
	color = strings.TrimSpace(color)
	if !hexColorRe.MatchString(color) {
		return ErrInvalidColor
	}
	b, err := t.Board(ctx)
	if err != nil {
		return err
	}
	if !b.HasColumn(name) {
		return ErrNotFound
	}
	st, err := t.loadBoard(ctx)
	if err != nil {
		return err
	}
	st.colors[name] = color
	return t.set(ctx, KeySectionColors, st.colors)
}

// Theme returns "dark", "light" or "" when never chosen.
func (t *Tracker) Theme(ctx context.Context) (string, error) {
	vals, err := t.kv.Get(ctx, KeyTheme)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	var theme string
	if raw, ok := vals[KeyTheme]; ok {
		_ = json.Unmarshal(raw, &theme)
	}
	if theme != "dark" && theme != "light" {
		return "", nil
	}
	return theme, nil
}

func (t *Tracker) SetTheme(ctx context.Context, theme string) error {
	if theme != "dark" && theme != "light" {
		return ErrInvalidTheme
	}
	return t.set(ctx, KeyTheme, theme)
}

func (t *Tracker) set(ctx context.Context, key string, v any) error {
	return t.setAll(ctx, map[string]any{key: v})
}

func (t *Tracker) setAll(ctx context.Context, values map[string]any) error {
	payload := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		payload[k] = raw
	}
	if err := t.kv.Set(ctx, payload); err != nil {
		return fmt.Errorf("write %d keys: %w", len(values), err)
	}
	return nil
}
