package deck

import (
	"fmt"
	"strings"
)

// Suite represents a card suite
type Suite string

const (
	Club    Suite = "club"
	Diamond Suite = "diamond"
	Heart   Suite = "heart"
	Spade   Suite = "spade"
	Joker   Suite = "joker"
)

// Value represents a card value
type Value string

const (
	Jack  Value = "jack"
	Queen Value = "queen"
	King  Value = "king"
)

// Special card values recognised by the move dispatcher
const (
	AceValue         Value = "1"
	SkipperValue     Value = "5"
	DirectionChanger Value = "7"
)

// SuiteChangers are the wild values that let the player pick the next suite
var SuiteChangers = []Value{"8", Jack}

var standardSuites = []Suite{Club, Diamond, Heart, Spade}
var standardValues = []Value{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", Jack, Queen, King}

// Card represents a playing card. The identifier is unique across the
// 55-card set and doubles as the card's document key.
type Card struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Suite      Suite  `json:"suite"`
	Value      Value  `json:"value"`
}

// NewCard constructs a card from its suite and value
func NewCard(suite Suite, value Value) Card {
	return Card{
		Identifier: fmt.Sprintf("%s_%s", suite, value),
		Title:      fmt.Sprintf("%s of %s", titleCase(string(value)), titleCase(string(suite))),
		Suite:      suite,
		Value:      value,
	}
}

func (c Card) String() string {
	return c.Title
}

// IsSuiteChanger reports whether the card's value is in the wild-value set
func (c Card) IsSuiteChanger() bool {
	for _, v := range SuiteChangers {
		if c.Value == v {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
