package config

import (
	"errors"
	"os"
	"path/filepath"
)

// EnsureUserConfig writes the embedded default to dataDir/config.yml when no
// user config exists yet, and returns its path.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, FileName)

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, DefaultYAML, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}

// DataDir is $JOBTRACK_DATA_DIR or the working directory.
func DataDir() string {
	if d := os.Getenv("JOBTRACK_DATA_DIR"); d != "" {
		return d
	}
	return "."
}
