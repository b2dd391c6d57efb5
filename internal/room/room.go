// Package room hosts game tables behind shareable room codes. A Room
// serializes all access to its Game and fans state changes out to
// websocket watchers; the Registry owns room lifecycle and reaps
// rooms that have gone idle.
package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardhouse/holdem/internal/game"
	"github.com/cardhouse/holdem/internal/handlog"
)

var (
	// ErrUnknownRoom is returned for room codes the registry does not know.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrUnknownPlayer is returned for tokens the room did not issue.
	ErrUnknownPlayer = errors.New("unknown player token")
)

// watcher is one subscribed state stream. Seat decides which hole
// cards the snapshots reveal; spectators watch with seat -1.
type watcher struct {
	seat int
	ch   chan game.Snapshot
}

// Room is one table. The mutex serializes every operation; the Game
// itself does no locking.
type Room struct {
	ID string

	mu         sync.Mutex
	game       *game.Game
	tokens     map[string]int
	watchers   map[*watcher]struct{}
	lastActive time.Time

	journal *handlog.Journal
	logger  *log.Logger
	clock   quartz.Clock
}

func newRoom(id string, cfg game.Config, journal *handlog.Journal, logger *log.Logger, clock quartz.Clock) *Room {
	return &Room{
		ID:         id,
		game:       game.NewGame(cfg, nil),
		tokens:     make(map[string]int),
		watchers:   make(map[*watcher]struct{}),
		lastActive: clock.Now(),
		journal:    journal,
		logger:     logger.WithPrefix("room." + id),
		clock:      clock,
	}
}

// Join seats a new player and returns their private token and seat.
func (r *Room) Join(name string) (string, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	seat, err := r.game.AddPlayer(name)
	if err != nil {
		return "", -1, err
	}
	token := uuid.NewString()
	r.tokens[token] = seat
	r.logger.Info("player joined", "name", name, "seat", seat)
	r.broadcast()
	return token, seat, nil
}

// Start begins the next hand. Any seated player may start it.
func (r *Room) Start(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	if _, ok := r.tokens[token]; !ok {
		return ErrUnknownPlayer
	}
	if err := r.game.StartHand(); err != nil {
		return err
	}
	r.logger.Info("hand started", "hand", r.game.HandNumber())
	r.broadcast()
	return nil
}

// Act applies one player action identified by token.
func (r *Room) Act(token string, action game.Action, amount int) (game.ActionOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	seat, ok := r.tokens[token]
	if !ok {
		return game.ActionOutcome{}, ErrUnknownPlayer
	}
	out, err := r.game.PlayerAction(seat, action, amount)
	if err != nil {
		return game.ActionOutcome{}, err
	}
	if out.Kind == game.HandEnded {
		r.recordHand(out.Results)
	}
	r.broadcast()
	return out, nil
}

// State renders the table for the holder of token. An unknown or
// empty token gets the spectator view.
func (r *Room) State(token string) game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.tokens[token]
	if !ok {
		seat = -1
	}
	return r.game.PublicState(seat)
}

// Watch subscribes to state pushes as seen by the token's seat. The
// returned cancel must be called when the subscriber goes away. Slow
// subscribers miss intermediate snapshots rather than blocking play.
func (r *Room) Watch(token string) (<-chan game.Snapshot, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.tokens[token]
	if !ok {
		seat = -1
	}
	w := &watcher{seat: seat, ch: make(chan game.Snapshot, 8)}
	r.watchers[w] = struct{}{}
	// Seed the stream so subscribers render without waiting for play.
	w.ch <- r.game.PublicState(seat)

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.watchers[w]; ok {
			delete(r.watchers, w)
			close(w.ch)
		}
	}
	return w.ch, cancel
}

// broadcast pushes a fresh per-seat snapshot to every watcher. Callers
// must hold the mutex.
func (r *Room) broadcast() {
	for w := range r.watchers {
		select {
		case w.ch <- r.game.PublicState(w.seat):
		default:
		}
	}
}

// recordHand journals a finished hand. Journal failures are logged,
// never surfaced to play. Callers must hold the mutex.
func (r *Room) recordHand(results []game.Result) {
	if r.journal == nil {
		return
	}
	snap := r.game.PublicState(-1)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.journal.Record(ctx, handlog.Entry{
		RoomID:   r.ID,
		HandNum:  r.game.HandNumber(),
		Board:    snap.Community,
		Results:  results,
		PlayedAt: r.clock.Now().UTC(),
	})
	if err != nil {
		r.logger.Error("failed to journal hand", "hand", r.game.HandNumber(), "error", err)
	}
}

// touch marks the room active. Callers must hold the mutex.
func (r *Room) touch() {
	r.lastActive = r.clock.Now()
}

// idleSince reports how long the room has been untouched.
func (r *Room) idleSince(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return now.Sub(r.lastActive)
}

// closeWatchers drops every subscriber, used when the room is reaped.
func (r *Room) closeWatchers() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for w := range r.watchers {
		delete(r.watchers, w)
		close(w.ch)
	}
}
