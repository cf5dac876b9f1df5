package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jask/dualpick/core/filtering"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("DUALPICK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Widget.AllowOrder)
	require.True(t, cfg.Widget.Filter)
	require.Equal(t, "substring", cfg.Widget.Match)
	require.Equal(t, "en", cfg.UI.Locale)
	require.Empty(t, cfg.Redis.Addr)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[widget]
allow_order = false
vertical = true
match = "words"
custom_class = "wide"

[keys]
submit = ["ctrl+s"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("DUALPICK_CONFIG", path)
	t.Setenv("DUALPICK_UI_LOCALE", "nl")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Widget.AllowOrder)
	require.True(t, cfg.Widget.Vertical)
	require.Equal(t, "wide", cfg.Widget.CustomClass)
	require.Equal(t, "nl", cfg.UI.Locale)
	require.Equal(t, []string{"ctrl+s"}, cfg.Keys["submit"])

	sel := cfg.Widget.Selection(zap.NewNop())
	require.Equal(t, filtering.MatchWords, sel.Match)
	require.True(t, sel.Vertical)
}

func TestUnknownMatchModeFallsBackToSubstring(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[widget]\nmatch = \"fuzzy\"\nfilter = true\n"), 0o644))
	t.Setenv("DUALPICK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "fuzzy", cfg.Widget.Match)

	obs, logs := observer.New(zap.WarnLevel)
	sel := cfg.Widget.Selection(zap.New(obs))
	require.Equal(t, filtering.MatchSubstring, sel.Match)
	require.True(t, sel.Filter)
	require.Equal(t, 1, logs.FilterMessage("invalid widget.match, using substring").Len())

	require.Equal(t, filtering.MatchSubstring, WidgetConfig{Match: "fuzzy"}.Selection(nil).Match)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("DUALPICK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Widget.AllowMoveAll = false
	cfg.Server.Addr = "127.0.0.1:9999"
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.False(t, again.Widget.AllowMoveAll)
	require.Equal(t, "127.0.0.1:9999", again.Server.Addr)
}
