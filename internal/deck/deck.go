package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a draw asks for more cards than remain.
// A full-ring hand uses at most 23 cards, so hitting this indicates a
// broken caller rather than a playable condition.
var ErrExhausted = errors.New("deck exhausted")

// Deck is a shuffled 52-card deck supporting draw-without-replacement.
type Deck struct {
	cards []Card
}

// New creates a full 52-card deck shuffled with the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Draw removes and returns the first n cards, consuming the shuffle
// order deterministically.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, ErrExhausted
	}
	cards := d.cards[:n:n]
	d.cards = d.cards[n:]
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
