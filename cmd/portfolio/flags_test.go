package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		t.Setenv("PORTFOLIO_CONFIG", "")

		f, err := ParseFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, Flags{}, f)
	})

	t.Run("all flags", func(t *testing.T) {
		f, err := ParseFlags([]string{"-config", "a.toml", "-content", "b.toml", "-log", "c.log"})
		require.NoError(t, err)

		assert.Equal(t, Flags{ConfigPath: "a.toml", ContentPath: "b.toml", LogFile: "c.log"}, f)
	})

	t.Run("config from env", func(t *testing.T) {
		t.Setenv("PORTFOLIO_CONFIG", "env.toml")

		f, err := ParseFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, "env.toml", f.ConfigPath)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv("PORTFOLIO_CONFIG", "env.toml")

		f, err := ParseFlags([]string{"-config", "flag.toml"})
		require.NoError(t, err)
		assert.Equal(t, "flag.toml", f.ConfigPath)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := ParseFlags([]string{"-nope"})
		assert.Error(t, err)
	})
}
