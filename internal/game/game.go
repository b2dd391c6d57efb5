package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/cardhouse/holdem/internal/deck"
	"github.com/cardhouse/holdem/internal/randutil"
)

// Config sets the table parameters of a Game.
type Config struct {
	MaxSeats      int
	SmallBlind    int
	BigBlind      int
	StartingStack int
}

func (c Config) withDefaults() Config {
	if c.MaxSeats == 0 {
		c.MaxSeats = 9
	}
	if c.SmallBlind == 0 {
		c.SmallBlind = 10
	}
	if c.BigBlind == 0 {
		c.BigBlind = c.SmallBlind * 2
	}
	if c.StartingStack == 0 {
		c.StartingStack = 1000
	}
	return c
}

// Game owns the full table state of one room: seats, deck, community
// cards, pot and the betting round bookkeeping. It must only be
// mutated through its public operations, and assumes exclusive access
// for the duration of each call.
type Game struct {
	cfg Config
	rng *rand.Rand

	players   []*Player
	dealer    int
	deck      *deck.Deck
	community []deck.Card
	pot       int
	stage     Stage
	handNum   int

	currentBet int
	lastRaise  int    // last full raise increment, floors the next raise
	turn       int    // index of the player due to act
	acted      []bool // per seat, cleared when a full raise reopens the round

	revealed    bool // hole cards of showdown participants stay visible until the next hand
	lastResults []Result
}

// NewGame creates an empty table. A nil rng falls back to a
// time-seeded one; tests inject a deterministic RNG instead.
func NewGame(cfg Config, rng *rand.Rand) *Game {
	if rng == nil {
		rng = randutil.NewFromTime()
	}
	return &Game{
		cfg:    cfg.withDefaults(),
		rng:    rng,
		dealer: -1,
		turn:   -1,
		stage:  Waiting,
	}
}

// AddPlayer seats a new player and returns their seat index. Seating
// order is insertion order. Players cannot be seated while a hand is
// being played.
func (g *Game) AddPlayer(name string) (int, error) {
	if len(g.players) >= g.cfg.MaxSeats {
		return -1, ErrRoomFull
	}
	if g.stage != Waiting {
		return -1, ErrHandInProgress
	}
	seat := len(g.players)
	g.players = append(g.players, &Player{
		Seat:  seat,
		Name:  name,
		Stack: g.cfg.StartingStack,
	})
	return seat, nil
}

// StartHand begins a new hand: resets per-hand state, advances the
// dealer button, shuffles a fresh deck, deals hole cards and posts the
// blinds. Players with an empty stack sit the hand out.
func (g *Game) StartHand() error {
	if g.stage != Waiting {
		return ErrHandInProgress
	}
	if len(g.players) < 2 {
		return ErrNotEnoughPlayers
	}
	funded := 0
	for _, p := range g.players {
		if p.Stack > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrNotEnoughFunds
	}

	g.handNum++
	g.deck = deck.New(g.rng)
	g.community = g.community[:0]
	g.pot = 0
	g.currentBet = 0
	g.lastRaise = g.cfg.BigBlind
	g.acted = make([]bool, len(g.players))
	g.revealed = false
	g.lastResults = nil

	for _, p := range g.players {
		p.Hole = nil
		p.RoundWager = 0
		p.HandTotal = 0
		p.AllIn = false
		p.InHand = p.Stack > 0
	}

	g.dealer = g.nextInHand(g.dealer)

	// Two passes in seat order, one card per pass.
	for pass := 0; pass < 2; pass++ {
		for _, p := range g.players {
			if !p.InHand {
				continue
			}
			cards, err := g.deck.Draw(1)
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p.Hole = append(p.Hole, cards[0])
		}
	}

	sb := g.nextInHand(g.dealer)
	bb := g.nextInHand(sb)
	g.put(g.players[sb], g.cfg.SmallBlind)
	g.put(g.players[bb], g.cfg.BigBlind)
	g.currentBet = max(g.players[sb].RoundWager, g.players[bb].RoundWager)

	g.stage = PreFlop
	g.turn = g.nextActor(bb)
	if g.turn == -1 {
		// Both blinds are all-in short; run the board out.
		_, err := g.advanceStage()
		return err
	}
	return nil
}

// PlayerAction validates and applies one action for the given seat.
// Expected failures leave the table untouched.
func (g *Game) PlayerAction(seat int, action Action, amount int) (ActionOutcome, error) {
	var none ActionOutcome
	switch g.stage {
	case Waiting:
		return none, ErrHandNotStarted
	case Showdown:
		return none, ErrHandOver
	}
	if seat < 0 || seat >= len(g.players) {
		return none, fmt.Errorf("no such seat %d", seat)
	}
	p := g.players[seat]
	if !p.InHand {
		return none, ErrAlreadyFolded
	}
	if p.AllIn {
		return none, ErrAlreadyAllIn
	}
	if seat != g.turn {
		return none, ErrNotYourTurn
	}

	switch action {
	case Fold:
		p.InHand = false
		if g.inHandCount() == 1 {
			return g.endUncontested()
		}

	case Check:
		if p.owes(g.currentBet) > 0 {
			return none, ErrNothingToCheck
		}

	case Call:
		owed := p.owes(g.currentBet)
		if owed <= 0 {
			return none, ErrNothingToCall
		}
		g.put(p, owed)

	case Raise:
		if err := g.applyRaise(p, amount); err != nil {
			return none, err
		}

	default:
		return none, fmt.Errorf("unknown action %d", action)
	}

	g.acted[seat] = true

	if g.roundClosed() {
		return g.advanceStage()
	}
	next := g.nextActor(g.turn)
	if next == -1 {
		return g.advanceStage()
	}
	g.turn = next
	return ActionOutcome{Kind: Continue}, nil
}

// applyRaise validates a raise to the new total round wager `amount`
// and commits the chips. A stack too short for the minimum requirement
// is committed whole as an all-in; such a short raise does not reopen
// the action to players who already matched the previous bet.
func (g *Game) applyRaise(p *Player, amount int) error {
	if amount <= p.RoundWager {
		return ErrInvalidAmount
	}
	needed := amount - p.RoundWager
	if needed > p.Stack {
		return ErrInvalidAmount
	}
	owed := p.owes(g.currentBet)
	minNeeded := max(owed, g.lastRaise)
	if needed < minNeeded && needed < p.Stack {
		return ErrRaiseTooSmall
	}

	g.put(p, needed)

	if p.RoundWager > g.currentBet {
		increment := p.RoundWager - g.currentBet
		g.currentBet = p.RoundWager
		if increment >= g.lastRaise {
			// Full raise: everyone else must act again.
			g.lastRaise = increment
			for i := range g.acted {
				g.acted[i] = false
			}
		}
	}
	return nil
}

// put moves up to amount chips from the player's stack into their
// round wager, flagging an all-in when the stack empties. Returns the
// amount actually moved.
func (g *Game) put(p *Player, amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.RoundWager += amount
	p.HandTotal += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

// roundClosed reports whether the betting round is over: every player
// who can still act has acted since the last full raise and matches
// the current bet. Blind posts do not count as having acted, which
// gives the big blind its preflop option.
func (g *Game) roundClosed() bool {
	for _, p := range g.players {
		if !p.canAct() {
			continue
		}
		if !g.acted[p.Seat] || p.RoundWager != g.currentBet {
			return false
		}
	}
	return true
}

// advanceStage closes the current betting round: wagers move into the
// pot, the next community cards are dealt, and the first eligible
// player after the dealer acts next. If nobody can act (all remaining
// players are all-in) the board runs out to showdown immediately.
func (g *Game) advanceStage() (ActionOutcome, error) {
	var none ActionOutcome
	g.flushWagers()

	switch g.stage {
	case PreFlop:
		if err := g.dealCommunity(3); err != nil {
			return none, err
		}
		g.stage = Flop
	case Flop:
		if err := g.dealCommunity(1); err != nil {
			return none, err
		}
		g.stage = Turn
	case Turn:
		if err := g.dealCommunity(1); err != nil {
			return none, err
		}
		g.stage = River
	case River:
		return g.finishShowdown()
	}

	g.currentBet = 0
	g.lastRaise = g.cfg.BigBlind
	g.turn = g.nextActor(g.dealer)
	if g.turn == -1 {
		return g.advanceStage()
	}
	return ActionOutcome{Kind: RoundClosed}, nil
}

func (g *Game) dealCommunity(n int) error {
	cards, err := g.deck.Draw(n)
	if err != nil {
		return fmt.Errorf("dealing community cards: %w", err)
	}
	g.community = append(g.community, cards...)
	return nil
}

// flushWagers moves all current-round wagers into the pot and resets
// the per-round bookkeeping.
func (g *Game) flushWagers() {
	for _, p := range g.players {
		g.pot += p.RoundWager
		p.RoundWager = 0
	}
	for i := range g.acted {
		g.acted[i] = false
	}
}

// endUncontested awards the whole pot to the single remaining player
// without evaluating hands, ending the hand immediately.
func (g *Game) endUncontested() (ActionOutcome, error) {
	g.flushWagers()
	g.stage = Showdown
	results := g.settle()
	g.lastResults = results
	g.stage = Waiting
	g.turn = -1
	return ActionOutcome{Kind: HandEnded, Results: results}, nil
}

// finishShowdown settles the pot after river betting closes. Hole
// cards of the players still in the hand stay visible in snapshots
// until the next hand starts.
func (g *Game) finishShowdown() (ActionOutcome, error) {
	g.stage = Showdown
	results := g.settle()
	g.lastResults = results
	g.revealed = true
	g.stage = Waiting
	g.turn = -1
	return ActionOutcome{Kind: HandEnded, Results: results}, nil
}

// nextInHand returns the next seat after `from` (cyclically) that is
// in the current hand.
func (g *Game) nextInHand(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		seat := ((from + i) % n + n) % n
		if g.players[seat].InHand {
			return seat
		}
	}
	return -1
}

// nextActor returns the next seat after `from` that can still act, or
// -1 if nobody can.
func (g *Game) nextActor(from int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		seat := ((from + i) % n + n) % n
		if g.players[seat].canAct() {
			return seat
		}
	}
	return -1
}

func (g *Game) inHandCount() int {
	count := 0
	for _, p := range g.players {
		if p.InHand {
			count++
		}
	}
	return count
}

// Stage returns the current stage of the table.
func (g *Game) Stage() Stage {
	return g.stage
}

// HandNumber returns how many hands have been started at this table.
func (g *Game) HandNumber() int {
	return g.handNum
}
