package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OverlayEnv applies JOBTRACK_* environment overrides on top of the file
// config. Unset variables are ignored.
func OverlayEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("JOBTRACK_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JOBTRACK_PORT: %w", err)
		}
		cfg.App.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("JOBTRACK_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("JOBTRACK_REQUIRE_TOKEN")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("JOBTRACK_REQUIRE_TOKEN: %w", err)
		}
		cfg.App.RequireToken = b
	}
	return nil
}
