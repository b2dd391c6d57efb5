package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardhouse/holdem/internal/game"
	"github.com/cardhouse/holdem/internal/handlog"
	"github.com/cardhouse/holdem/internal/room"
	"github.com/cardhouse/holdem/internal/server"
)

var CLI struct {
	Config    string `short:"c" long:"config" default:"holdem-roomd.hcl" help:"Path to HCL configuration file"`
	Addr      string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel  string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	JournalDB string `long:"journal-db" help:"Path to the sqlite hand journal (overrides config)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}
	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.JournalDB != "" {
		cfg.Server.JournalDB = CLI.JournalDB
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	var journal *handlog.Journal
	if cfg.Server.JournalDB != "" {
		journal, err = handlog.Open(cfg.Server.JournalDB)
		if err != nil {
			logger.Error("Failed to open hand journal", "path", cfg.Server.JournalDB, "error", err)
			kctx.Exit(1)
		}
		defer journal.Close()
		logger.Info("Hand journal enabled", "path", cfg.Server.JournalDB)
	}

	idleTTL, _ := cfg.IdleTTL()
	sweepInterval, _ := cfg.SweepInterval()
	registry := room.NewRegistry(room.RegistryConfig{
		Game: game.Config{
			MaxSeats:      cfg.Table.MaxPlayers,
			SmallBlind:    cfg.Table.SmallBlind,
			BigBlind:      cfg.Table.BigBlind,
			StartingStack: cfg.Table.StartingStack,
		},
		IdleTTL:       idleTTL,
		SweepInterval: sweepInterval,
	}, journal, logger, nil)

	srv := server.New(cfg.GetServerAddress(), registry, logger)

	logger.Info("Starting room server",
		"addr", cfg.GetServerAddress(),
		"stakes", fmt.Sprintf("%d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind),
		"maxPlayers", cfg.Table.MaxPlayers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logger.Info("Shutting down server...")
		cancel()
	}()

	go func() {
		if err := registry.Run(ctx); err != nil {
			logger.Error("Room reaper failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("Server failed", "error", err)
		kctx.Exit(1)
	}
}
