package game

import (
	"github.com/cardhouse/holdem/internal/deck"
)

// Player is one seat's mutable record. It persists across hands (the
// stack carries over); the per-hand fields are reset by StartHand.
type Player struct {
	Seat       int
	Name       string
	Stack      int
	Hole       []deck.Card
	InHand     bool
	AllIn      bool
	RoundWager int // chips wagered in the current betting round
	HandTotal  int // total contribution across the whole hand, for side pots
}

// canAct reports whether the player can still take actions this round.
func (p *Player) canAct() bool {
	return p.InHand && !p.AllIn
}

// owes returns how much the player must add to match the current bet.
func (p *Player) owes(currentBet int) int {
	return currentBet - p.RoundWager
}
