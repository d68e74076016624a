package util

import (
	"net/url"
	"strings"
)

// trackingParams are dropped before two URLs are compared for duplicates.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"gh_jid":       true,
}

// NormalizeURL strips tracking params and the fragment for duplicate
// comparison. The result is never stored back. Unparseable or relative input
// comes back trimmed but otherwise untouched.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Host = dropDefaultPort(u.Scheme, u.Host)
	if u.Host != "" && u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = stripTrackingParams(u.RawQuery)
	u.ForceQuery = false
	return u.String()
}

var defaultPorts = map[string]string{"http": "80", "https": "443"}

// dropDefaultPort removes the scheme's default port, and an empty one.
func dropDefaultPort(scheme, host string) string {
	if strings.HasSuffix(host, ":") {
		return strings.TrimSuffix(host, ":")
	}
	if p, ok := defaultPorts[scheme]; ok {
		return strings.TrimSuffix(host, ":"+p)
	}
	return host
}

// stripTrackingParams keeps the incoming order and encoding of the pairs it
// does not drop.
func stripTrackingParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	var kept []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if trackingParams[key] {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

// Hostname returns the lowercased host without port, or "" when raw does not
// parse as an absolute URL.
func Hostname(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// IsWebURL reports whether raw is an absolute http(s) URL.
func IsWebURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
