package room

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardhouse/holdem/internal/game"
	"github.com/cardhouse/holdem/internal/handlog"
	"github.com/cardhouse/holdem/internal/roomid"
)

// RegistryConfig tunes room lifecycle.
type RegistryConfig struct {
	// Game is applied to every new room's table.
	Game game.Config
	// IdleTTL is how long an untouched room survives. Zero defaults
	// to 30 minutes.
	IdleTTL time.Duration
	// SweepInterval is how often the reaper looks for idle rooms.
	// Zero defaults to one minute.
	SweepInterval time.Duration
}

func (c RegistryConfig) withDefaults() RegistryConfig {
	if c.IdleTTL == 0 {
		c.IdleTTL = 30 * time.Minute
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = time.Minute
	}
	return c
}

// Registry owns every live room, keyed by room code.
type Registry struct {
	cfg     RegistryConfig
	journal *handlog.Journal
	logger  *log.Logger
	clock   quartz.Clock

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry. A nil journal disables hand
// journaling; a nil clock uses the real one.
func NewRegistry(cfg RegistryConfig, journal *handlog.Journal, logger *log.Logger, clock quartz.Clock) *Registry {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Registry{
		cfg:     cfg.withDefaults(),
		journal: journal,
		logger:  logger.WithPrefix("registry"),
		clock:   clock,
		rooms:   make(map[string]*Room),
	}
}

// Create opens a new room under a fresh code.
func (reg *Registry) Create() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := roomid.Generate()
	for reg.rooms[id] != nil {
		id = roomid.Generate()
	}
	r := newRoom(id, reg.cfg.Game, reg.journal, reg.logger, reg.clock)
	reg.rooms[id] = r
	reg.logger.Info("room created", "room", id)
	return r
}

// Get looks up a room by its (possibly sloppily typed) code.
func (reg *Registry) Get(id string) (*Room, error) {
	id = roomid.Normalize(id)
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[id]
	if !ok {
		return nil, ErrUnknownRoom
	}
	return r, nil
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// Run reaps idle rooms until ctx is cancelled.
func (reg *Registry) Run(ctx context.Context) error {
	waiter := reg.clock.TickerFunc(ctx, reg.cfg.SweepInterval, func() error {
		reg.sweep()
		return nil
	}, "reaper")
	err := waiter.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// sweep drops every room idle for longer than the TTL and returns how
// many were reaped.
func (reg *Registry) sweep() int {
	now := reg.clock.Now()

	reg.mu.Lock()
	var idle []*Room
	for id, r := range reg.rooms {
		if r.idleSince(now) >= reg.cfg.IdleTTL {
			idle = append(idle, r)
			delete(reg.rooms, id)
		}
	}
	reg.mu.Unlock()

	for _, r := range idle {
		r.closeWatchers()
		reg.logger.Info("room reaped", "room", r.ID)
	}
	return len(idle)
}
