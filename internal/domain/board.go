package domain

// Board is the column metadata of the kanban view, keyed by column name.
type Board struct {
	Columns []string          `json:"columns"`
	Widths  map[string]int    `json:"widths"`
	Colors  map[string]string `json:"colors"`
}

// BoardDefaults seeds and bounds the board when stored values are absent.
type BoardDefaults struct {
	Columns        []string
	Colors         map[string]string
	DefaultWidth   int
	MinWidth       int
	MaxWidth       int
	NewColumnColor string
}

var DefaultColumns = []string{"Applied", "Under Review", "Assessment", "Interview", "Offer", "Rejected"}

var DefaultColors = map[string]string{
	"Applied":      "#3b82f6",
	"Under Review": "#f59e0b",
	"Assessment":   "#8b5cf6",
	"Interview":    "#06b6d4",
	"Offer":        "#10b981",
	"Rejected":     "#ef4444",
}

func DefaultBoard() BoardDefaults {
	colors := make(map[string]string, len(DefaultColors))
	for k, v := range DefaultColors {
		colors[k] = v
	}
	return BoardDefaults{
		Columns:        append([]string(nil), DefaultColumns...),
		Colors:         colors,
		DefaultWidth:   296,
		MinWidth:       240,
		MaxWidth:       520,
		NewColumnColor: "#6366f1",
	}
}

// ClampWidth maps a stored width into [MinWidth, MaxWidth]; non-positive
// values fall back to DefaultWidth.
func (d BoardDefaults) ClampWidth(w int) int {
	if w <= 0 {
		return d.DefaultWidth
	}
	if w < d.MinWidth {
		return d.MinWidth
	}
	if w > d.MaxWidth {
		return d.MaxWidth
	}
	return w
}

func (b Board) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}
