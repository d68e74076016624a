package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeOrigin trims o and drops a trailing slash; scheme and host
// compare case-insensitively.
func NormalizeOrigin(o string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
}

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong
// with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	// Columns are distinct and case sensitive, unlike most trimmed lists.
	seen := map[string]bool{}
	var cols []string
	for _, c := range out.Board.Columns {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if seen[c] {
			res.addWarn("board.columns lists %q more than once; keeping the first", c)
			continue
		}
		seen[c] = true
		cols = append(cols, c)
	}
	out.Board.Columns = cols
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Fetch.UserAgent = strings.TrimSpace(out.Fetch.UserAgent)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	var origins []string
	for _, o := range out.App.AllowedOrigins {
		o = NormalizeOrigin(o)
		if o == "" {
			continue
		}
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			res.addErr("app.allowed_origins entry %q must look like scheme://host[:port]", o)
			continue
		}
		origins = append(origins, o)
	}
	out.App.AllowedOrigins = origins
	if out.Log.Level == "" {
		out.Log.Level = "info"
	} else if !logLevels[out.Log.Level] {
		res.addErr("log.level must be one of debug, info, warn, error")
	}

	if out.Fetch.TimeoutSeconds <= 0 {
		res.addErr("fetch.timeout_seconds must be > 0")
	}
	if out.Fetch.RequestsPerSecond < 0 {
		res.addErr("fetch.requests_per_second must be >= 0")
	} else if out.Fetch.RequestsPerSecond == 0 {
		res.addWarn("fetch.requests_per_second is 0; page fetches are not rate limited")
	}
	if out.Fetch.Burst < 1 {
		res.addWarn("fetch.burst < 1 is treated as 1")
	}
	if out.Fetch.MaxBodyBytes <= 0 {
		res.addErr("fetch.max_body_bytes must be > 0")
	}

	if len(out.Board.Columns) == 0 {
		res.addErr("board.columns must have at least 1 column")
	}
	b := out.Board
	if b.MinWidth <= 0 || b.MaxWidth < b.MinWidth {
		res.addErr("board.min_width must be > 0 and <= board.max_width")
	} else if b.DefaultWidth < b.MinWidth || b.DefaultWidth > b.MaxWidth {
		res.addErr("board.default_width must be within %d..%d", b.MinWidth, b.MaxWidth)
	}
	if !hexColorRe.MatchString(b.NewColumnColor) {
		res.addErr("board.new_column_color %q is not a hex color", b.NewColumnColor)
	}
	for name, c := range b.Colors {
		if !hexColorRe.MatchString(c) {
			res.addErr("board.colors[%q] %q is not a hex color", name, c)
		}
		if !seen[name] {
			res.addWarn("board.colors has %q which is not a default column", name)
		}
	}

	if out.Backup.Enabled && out.Backup.EveryMinutes <= 0 {
		res.addErr("backup.every_minutes must be > 0 when backup.enabled=true")
	} else if out.Backup.Enabled && out.Backup.EveryMinutes < 5 {
		res.addWarn("backup.every_minutes is very low (%d)", out.Backup.EveryMinutes)
	}

	return out, res
}
