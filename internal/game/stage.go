package game

import "fmt"

// Stage represents the phase of a hand. Stages only advance forward,
// or return to Waiting after settlement; they never regress.
type Stage int

const (
	Waiting Stage = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
)

func (s Stage) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case PreFlop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// ParseAction converts the wire representation of an action back into
// an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// OutcomeKind tags what an applied action did to the flow of the hand.
type OutcomeKind int

const (
	// Continue means the turn moved to the next eligible player.
	Continue OutcomeKind = iota
	// RoundClosed means the betting round ended and the next stage was dealt.
	RoundClosed
	// HandEnded means the hand finished and the pot was settled.
	HandEnded
)

func (k OutcomeKind) String() string {
	return [...]string{"continue", "round_closed", "hand_ended"}[k]
}

// ActionOutcome is the explicit result of a successfully applied
// action. Results is populated only when Kind is HandEnded.
type ActionOutcome struct {
	Kind    OutcomeKind
	Results []Result
}

// Result records one seat's payout from settlement. Hand is the
// winning category name, or empty when the pot was won uncontested.
type Result struct {
	Seat   int    `json:"seat"`
	Amount int    `json:"amount"`
	Hand   string `json:"hand,omitempty"`
}
