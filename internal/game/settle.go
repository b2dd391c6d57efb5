package game

import (
	"sort"

	"github.com/cardhouse/holdem/internal/deck"
)

// settle distributes the accumulated pot back into stacks and returns
// the per-seat payouts. It must only run after all round wagers have
// been flushed into the pot. Settling an already-settled hand (pot
// zero) is a no-op.
func (g *Game) settle() []Result {
	if g.pot == 0 {
		return nil
	}

	// A single surviving player takes everything, no evaluation.
	if g.inHandCount() == 1 {
		for _, p := range g.players {
			if p.InHand {
				p.Stack += g.pot
				res := []Result{{Seat: p.Seat, Amount: g.pot}}
				g.pot = 0
				return res
			}
		}
	}

	// Distinct ascending contribution levels among everyone who put
	// chips in, folded players included: their dead money sizes the
	// layers even though they can win none of them.
	levelSet := make(map[int]bool)
	for _, p := range g.players {
		if p.HandTotal > 0 {
			levelSet[p.HandTotal] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	awards := make(map[int]int)
	winningHand := make(map[int]string)
	scores := make(map[int]Score)

	var lastWinner *Player
	prev := 0
	carry := 0
	for _, level := range levels {
		layer := carry
		carry = 0
		for _, p := range g.players {
			if p.HandTotal >= level {
				layer += level - prev
			}
		}

		// Eligibility: contributed up to this level and never folded.
		var eligible []*Player
		for _, p := range g.players {
			if p.InHand && p.HandTotal >= level {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			carry = layer
			prev = level
			continue
		}

		var winners []*Player
		var best Score
		for _, p := range eligible {
			s, ok := scores[p.Seat]
			if !ok {
				s = BestOfSeven(append(append(make([]deck.Card, 0, 7), p.Hole...), g.community...))
				scores[p.Seat] = s
			}
			switch {
			case len(winners) == 0 || s.Compare(best) > 0:
				best = s
				winners = []*Player{p}
			case s.Compare(best) == 0:
				winners = append(winners, p)
			}
		}

		// Equal split; the integer remainder goes to the earliest
		// seat so the totals stay exact. Players are iterated in seat
		// order, so winners[0] is already the earliest.
		share := layer / len(winners)
		remainder := layer % len(winners)
		for i, w := range winners {
			amt := share
			if i == 0 {
				amt += remainder
			}
			awards[w.Seat] += amt
			winningHand[w.Seat] = best.Category.String()
		}
		lastWinner = winners[0]
		prev = level
	}

	// Chips above the highest contested level are dead money when
	// their only contributor folded; they go to the last contested
	// layer's winner so every chip is accounted for.
	if carry > 0 && lastWinner != nil {
		awards[lastWinner.Seat] += carry
	}

	results := make([]Result, 0, len(awards))
	for _, p := range g.players {
		amt, ok := awards[p.Seat]
		if !ok {
			continue
		}
		p.Stack += amt
		results = append(results, Result{Seat: p.Seat, Amount: amt, Hand: winningHand[p.Seat]})
	}
	g.pot = 0
	return results
}
