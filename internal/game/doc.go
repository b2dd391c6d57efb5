// Package game implements the rules engine for a multi-player Texas
// Hold'em table: dealing, turn sequencing, wagering legality, stage
// progression and pot/side-pot settlement at showdown.
//
// The main type is Game, which owns the table-level state of one room.
// It is driven entirely through four operations:
//
//	g := game.NewGame(game.Config{}, rng)
//	seat, _ := g.AddPlayer("Alice")
//	g.StartHand()
//	outcome, err := g.PlayerAction(seat, game.Raise, 60)
//	snap := g.PublicState(seat)
//
// PlayerAction returns an explicit ActionOutcome (Continue, RoundClosed
// or HandEnded with the settlement results) rather than signalling
// control flow through sentinel state.
//
// The engine is synchronous and performs no locking: one action is
// validated and applied atomically before the next is accepted, and a
// caller that shares a Game between goroutines must serialise access
// (see the room package). Expected failures are returned as sentinel
// errors that leave the table state untouched, so the caller may retry
// with a corrected action.
//
// # Architecture
//
// Game delegates to specialised components:
//   - deck.Deck: uniformly shuffled 52-card deck with draw-without-replacement
//   - BestOfSeven: exhaustive best-5-of-7 hand evaluation with a strict
//     total order over Score values
//   - settle: side-pot layering derived from total hand contributions
//
// For deterministic tests, inject a seeded RNG via randutil.New.
package game
