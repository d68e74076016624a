package util

import (
	"strconv"
	"strings"
)

// CleanText collapses every whitespace run (newlines included) to a single
// space and trims the ends. It is idempotent.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// CleanAny cleans a loosely typed JSON value. Strings and numbers are
// stringified, anything else yields "".
func CleanAny(v any) string {
	switch t := v.(type) {
	case string:
		return CleanText(t)
	case float64, int, int64, bool:
		return CleanText(fmtScalar(t))
	default:
		return ""
	}
}

func fmtScalar(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
