package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the full daemon configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
	Rooms  RoomSettings   `hcl:"rooms,block"`
}

// ServerSettings contains the listener-level configuration.
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	JournalDB string `hcl:"journal_db,optional"`
}

// TableSettings applies to every table the registry opens.
type TableSettings struct {
	MaxPlayers    int `hcl:"max_players,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	StartingStack int `hcl:"starting_stack,optional"`
}

// RoomSettings tunes room lifecycle. Durations use Go syntax ("30m").
type RoomSettings struct {
	IdleTTL       string `hcl:"idle_ttl,optional"`
	SweepInterval string `hcl:"sweep_interval,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableSettings{
			MaxPlayers:    9,
			SmallBlind:    10,
			BigBlind:      20,
			StartingStack: 1000,
		},
		Rooms: RoomSettings{
			IdleTTL:       "30m",
			SweepInterval: "1m",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file is
// not an error; the defaults apply.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Table.MaxPlayers == 0 {
		config.Table.MaxPlayers = 9
	}
	if config.Table.SmallBlind == 0 {
		config.Table.SmallBlind = 10
	}
	if config.Table.BigBlind == 0 {
		config.Table.BigBlind = config.Table.SmallBlind * 2
	}
	if config.Table.StartingStack == 0 {
		config.Table.StartingStack = 1000
	}
	if config.Rooms.IdleTTL == "" {
		config.Rooms.IdleTTL = "30m"
	}
	if config.Rooms.SweepInterval == "" {
		config.Rooms.SweepInterval = "1m"
	}

	return &config, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Table.MaxPlayers < 2 || c.Table.MaxPlayers > 22 {
		return fmt.Errorf("max players must be between 2 and 22")
	}
	if c.Table.StartingStack < c.Table.BigBlind {
		return fmt.Errorf("starting stack must cover the big blind")
	}
	if _, err := c.IdleTTL(); err != nil {
		return fmt.Errorf("invalid idle_ttl: %w", err)
	}
	if _, err := c.SweepInterval(); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	return nil
}

// GetServerAddress returns the full listen address.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTTL parses the configured room idle TTL.
func (c *Config) IdleTTL() (time.Duration, error) {
	return time.ParseDuration(c.Rooms.IdleTTL)
}

// SweepInterval parses the configured reaper interval.
func (c *Config) SweepInterval() (time.Duration, error) {
	return time.ParseDuration(c.Rooms.SweepInterval)
}
