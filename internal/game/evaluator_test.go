package game

import (
	"testing"

	"github.com/cardhouse/holdem/internal/deck"
)

func c(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(rank, suit)
}

func TestEvaluateFiveCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []deck.Card
		category Category
		kickers  []int
	}{
		{
			name: "high card",
			cards: []deck.Card{
				c(deck.Ace, deck.Spades), c(deck.King, deck.Hearts), c(deck.Queen, deck.Diamonds),
				c(deck.Jack, deck.Clubs), c(deck.Nine, deck.Spades),
			},
			category: HighCard,
			kickers:  []int{14, 13, 12, 11, 9},
		},
		{
			name: "one pair",
			cards: []deck.Card{
				c(deck.Ten, deck.Spades), c(deck.Ten, deck.Hearts), c(deck.King, deck.Diamonds),
				c(deck.Four, deck.Clubs), c(deck.Two, deck.Spades),
			},
			category: OnePair,
			kickers:  []int{10, 13, 4, 2},
		},
		{
			name: "two pair orders pairs before the kicker",
			cards: []deck.Card{
				c(deck.Three, deck.Spades), c(deck.Three, deck.Hearts), c(deck.Nine, deck.Diamonds),
				c(deck.Nine, deck.Clubs), c(deck.Ace, deck.Spades),
			},
			category: TwoPair,
			kickers:  []int{9, 3, 14},
		},
		{
			name: "three of a kind",
			cards: []deck.Card{
				c(deck.Seven, deck.Spades), c(deck.Seven, deck.Hearts), c(deck.Seven, deck.Diamonds),
				c(deck.King, deck.Clubs), c(deck.Two, deck.Spades),
			},
			category: ThreeOfAKind,
			kickers:  []int{7, 13, 2},
		},
		{
			name: "straight",
			cards: []deck.Card{
				c(deck.Nine, deck.Spades), c(deck.Eight, deck.Hearts), c(deck.Seven, deck.Diamonds),
				c(deck.Six, deck.Clubs), c(deck.Five, deck.Spades),
			},
			category: Straight,
			kickers:  []int{9},
		},
		{
			name: "wheel ranks as five high",
			cards: []deck.Card{
				c(deck.Ace, deck.Spades), c(deck.Two, deck.Hearts), c(deck.Three, deck.Diamonds),
				c(deck.Four, deck.Clubs), c(deck.Five, deck.Spades),
			},
			category: Straight,
			kickers:  []int{5},
		},
		{
			name: "flush",
			cards: []deck.Card{
				c(deck.Ace, deck.Hearts), c(deck.Jack, deck.Hearts), c(deck.Eight, deck.Hearts),
				c(deck.Six, deck.Hearts), c(deck.Three, deck.Hearts),
			},
			category: Flush,
			kickers:  []int{14, 11, 8, 6, 3},
		},
		{
			name: "full house",
			cards: []deck.Card{
				c(deck.Six, deck.Spades), c(deck.Six, deck.Hearts), c(deck.Six, deck.Diamonds),
				c(deck.King, deck.Clubs), c(deck.King, deck.Spades),
			},
			category: FullHouse,
			kickers:  []int{6, 13},
		},
		{
			name: "four of a kind",
			cards: []deck.Card{
				c(deck.Queen, deck.Spades), c(deck.Queen, deck.Hearts), c(deck.Queen, deck.Diamonds),
				c(deck.Queen, deck.Clubs), c(deck.Two, deck.Spades),
			},
			category: FourOfAKind,
			kickers:  []int{12, 2},
		},
		{
			name: "straight flush",
			cards: []deck.Card{
				c(deck.King, deck.Clubs), c(deck.Queen, deck.Clubs), c(deck.Jack, deck.Clubs),
				c(deck.Ten, deck.Clubs), c(deck.Nine, deck.Clubs),
			},
			category: StraightFlush,
			kickers:  []int{13},
		},
		{
			name: "steel wheel is a five high straight flush",
			cards: []deck.Card{
				c(deck.Ace, deck.Diamonds), c(deck.Two, deck.Diamonds), c(deck.Three, deck.Diamonds),
				c(deck.Four, deck.Diamonds), c(deck.Five, deck.Diamonds),
			},
			category: StraightFlush,
			kickers:  []int{5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := evaluateFive(tc.cards)
			if got.Category != tc.category {
				t.Fatalf("category = %v, want %v", got.Category, tc.category)
			}
			if len(got.Kickers) != len(tc.kickers) {
				t.Fatalf("kickers = %v, want %v", got.Kickers, tc.kickers)
			}
			for i := range tc.kickers {
				if got.Kickers[i] != tc.kickers[i] {
					t.Fatalf("kickers = %v, want %v", got.Kickers, tc.kickers)
				}
			}
		})
	}
}

func TestScoreOrdering(t *testing.T) {
	t.Parallel()

	pair := Score{OnePair, []int{2, 5, 4, 3}}
	highCard := Score{HighCard, []int{14, 13, 12, 11, 9}}
	if pair.Compare(highCard) <= 0 {
		t.Errorf("any pair must outrank any high card")
	}

	wheel := Score{Straight, []int{5}}
	sixHigh := Score{Straight, []int{6}}
	if wheel.Compare(sixHigh) >= 0 {
		t.Errorf("wheel must rank strictly below a six-high straight")
	}

	kickerFight := Score{OnePair, []int{10, 13, 4, 2}}
	kickerFight2 := Score{OnePair, []int{10, 13, 4, 3}}
	if kickerFight.Compare(kickerFight2) >= 0 {
		t.Errorf("kickers must break ties element-wise")
	}

	tie := Score{TwoPair, []int{9, 3, 14}}
	if tie.Compare(Score{TwoPair, []int{9, 3, 14}}) != 0 {
		t.Errorf("identical scores must compare equal")
	}
}

func TestBestOfSevenPicksBestSubset(t *testing.T) {
	t.Parallel()

	// Board pairs the ace; the flush hidden in hearts must win over
	// the obvious two pair.
	cards := []deck.Card{
		c(deck.Ace, deck.Hearts), c(deck.King, deck.Hearts), // hole
		c(deck.Ace, deck.Spades), c(deck.Nine, deck.Hearts),
		c(deck.Four, deck.Hearts), c(deck.Nine, deck.Clubs), c(deck.Two, deck.Hearts),
	}
	got := BestOfSeven(cards)
	if got.Category != Flush {
		t.Fatalf("category = %v, want %v", got.Category, Flush)
	}
	want := []int{14, 13, 9, 4, 2}
	for i, k := range want {
		if got.Kickers[i] != k {
			t.Fatalf("kickers = %v, want %v", got.Kickers, want)
		}
	}
}

func TestBestOfSevenHighCardKickers(t *testing.T) {
	t.Parallel()

	// Four distinct suits of A,K,Q,J,9 plus two low cards: high card
	// with kickers 14,13,12,11,9.
	cards := []deck.Card{
		c(deck.Ace, deck.Spades), c(deck.King, deck.Hearts),
		c(deck.Queen, deck.Diamonds), c(deck.Jack, deck.Clubs), c(deck.Nine, deck.Spades),
		c(deck.Four, deck.Hearts), c(deck.Two, deck.Diamonds),
	}
	got := BestOfSeven(cards)
	if got.Category != HighCard {
		t.Fatalf("category = %v, want %v", got.Category, HighCard)
	}
	want := []int{14, 13, 12, 11, 9}
	for i, k := range want {
		if got.Kickers[i] != k {
			t.Fatalf("kickers = %v, want %v", got.Kickers, want)
		}
	}
}
