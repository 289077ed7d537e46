package deck

import (
	"math/rand"
	"strconv"
)

// Number of joker cards in a full deck
const numJokers = 3

// Deck represents an ordered sequence of cards
type Deck []Card

// New creates the full 55-card deck in canonical order: every club value
// ascending, then diamonds, hearts, spades, then the jokers.
func New() Deck {
	cards := make(Deck, 0, len(standardSuites)*len(standardValues)+numJokers)
	for _, suite := range standardSuites {
		for _, value := range standardValues {
			cards = append(cards, NewCard(suite, value))
		}
	}
	for i := 1; i <= numJokers; i++ {
		cards = append(cards, NewCard(Joker, Value(strconv.Itoa(i))))
	}
	return cards
}

// Shuffle reorders the deck in place using a uniform Fisher-Yates shuffle.
// Cards are only reordered, never mutated, duplicated or removed.
func (d Deck) Shuffle() {
	for i := len(d) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Deal removes and returns up to n cards from the front of the deck.
// When fewer than n cards remain, the remainder is dealt.
func (d *Deck) Deal(n int) []Card {
	if n < 0 {
		return []Card{}
	}
	if n > len(*d) {
		n = len(*d)
	}
	dealt := make([]Card, n)
	copy(dealt, (*d)[:n])
	*d = (*d)[n:]
	return dealt
}
