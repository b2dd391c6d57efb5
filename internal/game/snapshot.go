package game

// HiddenCard is the placeholder rendered for hole cards the viewer is
// not allowed to see.
const HiddenCard = "??"

// PlayerView is the per-seat slice of a Snapshot.
type PlayerView struct {
	Seat       int      `json:"seat"`
	Name       string   `json:"name"`
	Stack      int      `json:"stack"`
	RoundWager int      `json:"round_wager"`
	InHand     bool     `json:"in_hand"`
	AllIn      bool     `json:"all_in"`
	Hole       []string `json:"hole"`
}

// Snapshot is a JSON-serialisable view of the table for one viewer.
// Turn is -1 when no action is pending.
type Snapshot struct {
	Stage      string       `json:"stage"`
	HandNum    int          `json:"hand_num"`
	Pot        int          `json:"pot"`
	Community  []string     `json:"community"`
	CurrentBet int          `json:"current_bet"`
	Dealer     int          `json:"dealer"`
	Turn       int          `json:"turn"`
	ToCall     int          `json:"to_call"`
	Players    []PlayerView `json:"players"`
	Results    []Result     `json:"results,omitempty"`
}

// PublicState renders the table as seen from the given seat: hole
// cards are visible only for the viewer's own seat, or for showdown
// participants once the hand has gone to showdown. Any other seat
// renders hidden placeholders. An out-of-range seat sees everything
// hidden.
func (g *Game) PublicState(seat int) Snapshot {
	snap := Snapshot{
		Stage:      g.stage.String(),
		HandNum:    g.handNum,
		Pot:        g.pot,
		Community:  make([]string, 0, len(g.community)),
		CurrentBet: g.currentBet,
		Dealer:     g.dealer,
		Turn:       g.turn,
		Players:    make([]PlayerView, 0, len(g.players)),
		Results:    g.lastResults,
	}
	for _, c := range g.community {
		snap.Community = append(snap.Community, c.String())
	}
	if seat >= 0 && seat < len(g.players) {
		if owed := g.players[seat].owes(g.currentBet); owed > 0 {
			snap.ToCall = owed
		}
	}
	for _, p := range g.players {
		view := PlayerView{
			Seat:       p.Seat,
			Name:       p.Name,
			Stack:      p.Stack,
			RoundWager: p.RoundWager,
			InHand:     p.InHand,
			AllIn:      p.AllIn,
			Hole:       make([]string, 0, len(p.Hole)),
		}
		visible := p.Seat == seat || (g.revealed && p.InHand)
		for _, c := range p.Hole {
			if visible {
				view.Hole = append(view.Hole, c.String())
			} else {
				view.Hole = append(view.Hole, HiddenCard)
			}
		}
		snap.Players = append(snap.Players, view)
	}
	return snap
}
