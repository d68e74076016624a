package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	_, v := NormalizeAndValidate(cfg)
	assert.True(t, v.OK(), v.Errors)
	assert.Empty(t, v.Warnings)

	bd := cfg.BoardDefaults()
	want := domain.DefaultBoard()
	assert.Equal(t, want.Columns, bd.Columns)
	assert.Equal(t, want.Colors, bd.Colors)
	assert.Equal(t, want.DefaultWidth, bd.DefaultWidth)
	assert.Equal(t, want.MinWidth, bd.MinWidth)
	assert.Equal(t, want.MaxWidth, bd.MaxWidth)
	assert.Equal(t, want.NewColumnColor, bd.NewColumnColor)
	assert.Equal(t, 38471, cfg.App.Port)
}

func TestEnsureLoadSave(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 40000\n"), 0o644))
	again, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40000, cfg.App.Port, "file wins")
	assert.Equal(t, 296, cfg.Board.DefaultWidth, "missing keys keep defaults")

	cfg.Log.Level = "debug"
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", reloaded.Log.Level)

	cfg.App.Port = 0
	assert.Error(t, SaveAtomic(path, cfg))
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.Board.Columns = []string{" Applied ", "", "Applied", "Offer"}
	cfg.Board.Colors = map[string]string{"Applied": "blue"}
	cfg.Log.Level = " WARN "
	cfg.Backup.Enabled = true
	cfg.Backup.EveryMinutes = 0

	out, v := NormalizeAndValidate(cfg)
	assert.Equal(t, []string{"Applied", "Offer"}, out.Board.Columns)
	assert.Equal(t, "warn", out.Log.Level)
	assert.False(t, v.OK())
	assert.Contains(t, v.Errors, `board.colors["Applied"] "blue" is not a hex color`)
	assert.Contains(t, v.Errors, "backup.every_minutes must be > 0 when backup.enabled=true")
	assert.NotEmpty(t, v.Warnings)

	cfg = Default()
	cfg.Board.Columns = nil
	_, v = NormalizeAndValidate(cfg)
	assert.Contains(t, v.Errors, "board.columns must have at least 1 column")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Default()
	cfg.App.AllowedOrigins = []string{" https://Board.example/ ", "", "not an origin", "https://x.test/path"}

	out, v := NormalizeAndValidate(cfg)
	assert.Equal(t, []string{"https://board.example"}, out.App.AllowedOrigins)
	assert.Len(t, v.Errors, 2)
}

func TestOverlayEnv(t *testing.T) {
	t.Setenv("JOBTRACK_PORT", "40123")
	t.Setenv("JOBTRACK_LOG_LEVEL", "debug")
	t.Setenv("JOBTRACK_REQUIRE_TOKEN", "true")

	cfg := Default()
	require.NoError(t, OverlayEnv(&cfg))
	assert.Equal(t, 40123, cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.App.RequireToken)

	t.Setenv("JOBTRACK_PORT", "nope")
	assert.Error(t, OverlayEnv(&cfg))
}
