package game

import (
	"sort"

	"github.com/cardhouse/holdem/internal/deck"
)

// Category classifies a five-card hand, higher is stronger.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is a totally ordered hand strength: category first, then
// kickers element-wise. Count-based ranks (trip rank, pair rank) come
// before plain kickers, so two scores in the same category always have
// kicker slices of equal length.
type Score struct {
	Category Category
	Kickers  []int
}

// Compare returns 1 if s beats o, -1 if o beats s, and 0 on an exact tie.
func (s Score) Compare(o Score) int {
	if s.Category != o.Category {
		if s.Category > o.Category {
			return 1
		}
		return -1
	}
	for i := range s.Kickers {
		if i >= len(o.Kickers) {
			return 1
		}
		if s.Kickers[i] != o.Kickers[i] {
			if s.Kickers[i] > o.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	if len(o.Kickers) > len(s.Kickers) {
		return -1
	}
	return 0
}

// BestOfSeven returns the best five-card score among all C(7,5)=21
// subsets of the given seven cards. Exhaustive search trades speed for
// unambiguous correctness; it only runs at showdown.
func BestOfSeven(cards []deck.Card) Score {
	best := Score{Category: -1}
	// Choosing 5 of 7 is dropping cards i and j.
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			five := make([]deck.Card, 0, 5)
			for k, c := range cards {
				if k != i && k != j {
					five = append(five, c)
				}
			}
			if s := evaluateFive(five); s.Compare(best) > 0 {
				best = s
			}
		}
	}
	return best
}

// evaluateFive scores exactly five cards. It is pure and deterministic.
func evaluateFive(cards []deck.Card) Score {
	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightHighCard(values)

	switch {
	case flush && straightHigh > 0:
		return Score{StraightFlush, []int{straightHigh}}
	case flush:
		// five suited cards are necessarily of distinct ranks
		return Score{Flush, values}
	case straightHigh > 0:
		return Score{Straight, []int{straightHigh}}
	}

	// Group ranks by multiplicity: groups are ordered by count, then
	// rank, both descending, which puts count-based ranks first.
	counts := make(map[int]int, 5)
	for _, v := range values {
		counts[v]++
	}
	type group struct{ rank, count int }
	groups := make([]group, 0, 5)
	for r, n := range counts {
		groups = append(groups, group{r, n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	kickers := make([]int, 0, 5)
	for _, grp := range groups {
		kickers = append(kickers, grp.rank)
	}

	switch {
	case groups[0].count == 4:
		return Score{FourOfAKind, kickers}
	case groups[0].count == 3 && groups[1].count == 2:
		return Score{FullHouse, kickers}
	case groups[0].count == 3:
		return Score{ThreeOfAKind, kickers}
	case groups[0].count == 2 && groups[1].count == 2:
		return Score{TwoPair, kickers}
	case groups[0].count == 2:
		return Score{OnePair, kickers}
	default:
		return Score{HighCard, kickers}
	}
}

// straightHighCard returns the high card of a straight formed by the
// five descending values, or 0 if they do not form one. The ace counts
// as 1 to complete the wheel (A-2-3-4-5), which ranks as 5-high.
func straightHighCard(values []int) int {
	run := true
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]-1 {
			run = false
			break
		}
	}
	if run {
		return values[0]
	}
	if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return 5
	}
	return 0
}
