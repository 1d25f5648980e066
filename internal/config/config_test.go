package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, Default(), cfg)
	})

	t.Run("reads the file", func(t *testing.T) {
		path := writeConfig(t, `
[reveal]
tick_period = "20ms"
threshold = 0.25
per_owner_delay = "300ms"

[showcase]
stagger = "100ms"
threshold = 0

[marquee]
gap = 2

[contact]
send_delay = "1s"

[log]
level = "DEBUG"
file = "portfolio.log"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 20*time.Millisecond, cfg.Reveal.TickPeriod)
		assert.Equal(t, 0.25, cfg.Reveal.Threshold)
		assert.Equal(t, 300*time.Millisecond, cfg.Reveal.PerOwnerDelay)
		assert.Equal(t, 50*time.Millisecond, cfg.Reveal.PerUnitDelay)
		assert.Equal(t, 100*time.Millisecond, cfg.Showcase.Stagger)
		assert.Zero(t, cfg.Showcase.Threshold, "zero means any intersection and is kept")
		assert.Equal(t, time.Second, cfg.Showcase.Fade)
		assert.Equal(t, time.Second, cfg.Contact.SendDelay)
		assert.Equal(t, 4*time.Second, cfg.Contact.Toast)
		assert.Equal(t, 2, cfg.Marquee.Gap)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "portfolio.log", cfg.Log.File)
	})

	t.Run("env overrides the file", func(t *testing.T) {
		path := writeConfig(t, "[reveal]\nfade = \"300ms\"\n")
		t.Setenv("PORTFOLIO_REVEAL_FADE", "40ms")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 40*time.Millisecond, cfg.Reveal.Fade)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

		assert.ErrorContains(t, err, "read config")
	})
}

func TestNormalize(t *testing.T) {
	c := Default()
	c.Reveal.TickPeriod = -time.Second
	c.Reveal.Threshold = 4
	c.Reveal.Fade = -time.Millisecond
	c.Marquee.Speed = 0
	c.Marquee.Gap = -1
	c.Log.Level = "chatty"
	c.Showcase.Threshold = -1
	c.Contact.Toast = 0
	c.Contact.SendDelay = -time.Second

	n := Normalize(c)

	assert.Equal(t, Default().Reveal.TickPeriod, n.Reveal.TickPeriod)
	assert.Equal(t, 1.0, n.Reveal.Threshold)
	assert.Equal(t, time.Duration(0), n.Reveal.Fade)
	assert.Equal(t, Default().Marquee, n.Marquee)
	assert.Equal(t, "info", n.Log.Level)
	assert.Zero(t, n.Showcase.Threshold)
	assert.Equal(t, Default().Contact.Toast, n.Contact.Toast)
	assert.Zero(t, n.Contact.SendDelay)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
