package httpapi

import (
	"net"
	"net/url"
	"strings"

	"jobtrack-engine/internal/config"
)

var extensionSchemes = map[string]bool{
	"chrome-extension":     true,
	"moz-extension":        true,
	"safari-web-extension": true,
}

// OriginAllowed reports whether a browser origin is trusted: loopback pages,
// browser extensions, and anything listed in extra.
func OriginAllowed(origin string, extra []string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "null" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if extensionSchemes[scheme] {
		return true
	}
	if scheme == "http" || scheme == "https" {
		host := strings.ToLower(u.Hostname())
		if host == "localhost" {
			return true
		}
		if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
			return true
		}
	}
	norm := config.NormalizeOrigin(origin)
	for _, o := range extra {
		if config.NormalizeOrigin(o) == norm {
			return true
		}
	}
	return false
}

func (d Deps) originAllowed(origin string) bool {
	var extra []string
	if d.CfgVal != nil {
		if cfg, ok := d.CfgVal.Load().(config.Config); ok {
			extra = cfg.App.AllowedOrigins
		}
	}
	return OriginAllowed(origin, extra)
}
