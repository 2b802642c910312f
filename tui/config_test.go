package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

func isolateConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	isolateConfigHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	dir := isolateConfigHome(t)

	cfg := DefaultConfig()
	cfg.BoardSize = 7
	cfg.Opponent = "random"
	cfg.ShowHints = false
	require.NoError(t, cfg.Save())

	_, err := os.Stat(filepath.Join(dir, "quoridor", "config.json"))
	require.NoError(t, err)

	loaded, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadConfigRejectsCorruptFile(t *testing.T) {
	dir := isolateConfigHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "quoridor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quoridor", "config.json"), []byte("{not json"), 0o644))

	cfg, err := LoadConfig()
	require.Error(t, err)
	require.Equal(t, DefaultConfig(), cfg, "corrupt settings fall back to defaults")
}
