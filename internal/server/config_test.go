package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 20, cfg.Table.BigBlind)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  address    = "0.0.0.0"
  port       = 9000
  log_level  = "debug"
  journal_db = "/tmp/hands.db"
}

table {
  max_players = 6
  small_blind = 25
}

rooms {
  idle_ttl = "2h"
}
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, "/tmp/hands.db", cfg.Server.JournalDB)
	assert.Equal(t, 6, cfg.Table.MaxPlayers)
	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind, "big blind defaults to twice the small blind")
	assert.Equal(t, 1000, cfg.Table.StartingStack)

	require.NoError(t, cfg.Validate())
	ttl, err := cfg.IdleTTL()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, ttl)
	sweep, err := cfg.SweepInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, sweep)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero small blind", func(c *Config) { c.Table.SmallBlind = 0 }},
		{"big blind below small", func(c *Config) { c.Table.BigBlind = 5 }},
		{"one seat", func(c *Config) { c.Table.MaxPlayers = 1 }},
		{"stack below big blind", func(c *Config) { c.Table.StartingStack = 10 }},
		{"bad idle ttl", func(c *Config) { c.Rooms.IdleTTL = "soon" }},
		{"bad sweep interval", func(c *Config) { c.Rooms.SweepInterval = "-" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`server {`), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}
