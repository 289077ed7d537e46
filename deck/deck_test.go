package deck

import (
	"testing"

	utils "github.com/okekefrancis/crazy8s/internal"
	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	t.Run("contains the full 55-card set", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, len(d), 55)

		identifiers := map[string]bool{}
		jokers, standard := 0, 0
		for _, c := range d {
			utils.AssertTrue(t, !identifiers[c.Identifier])
			identifiers[c.Identifier] = true
			if c.Suite == Joker {
				jokers++
			} else {
				standard++
			}
		}
		utils.AssertEqual(t, jokers, 3)
		utils.AssertEqual(t, standard, 52)
	})

	t.Run("is in canonical order", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, d[0].Identifier, "club_1")
		utils.AssertEqual(t, d[12].Identifier, "club_king")
		utils.AssertEqual(t, d[13].Identifier, "diamond_1")
		utils.AssertEqual(t, d[51].Identifier, "spade_king")
		utils.AssertEqual(t, d[52].Identifier, "joker_1")
		utils.AssertEqual(t, d[54].Identifier, "joker_3")
	})

	t.Run("gives cards readable titles", func(t *testing.T) {
		utils.AssertEqual(t, NewCard(Club, "7").Title, "7 of Club")
		utils.AssertEqual(t, NewCard(Spade, Jack).Title, "Jack of Spade")
		utils.AssertEqual(t, NewCard(Joker, "1").Title, "1 of Joker")
	})
}

func TestDeckShuffle(t *testing.T) {
	t.Run("reorders without losing or duplicating cards", func(t *testing.T) {
		d := New()
		d.Shuffle()

		utils.AssertEqual(t, len(d), 55)

		identifiers := map[string]bool{}
		for _, c := range d {
			identifiers[c.Identifier] = true
		}
		utils.AssertEqual(t, len(identifiers), 55)
	})
}

func TestDeckDeal(t *testing.T) {
	t.Run("deals from the front of the deck", func(t *testing.T) {
		d := New()
		dealt := d.Deal(3)

		assert.Len(t, dealt, 3)
		utils.AssertEqual(t, dealt[0].Identifier, "club_1")
		utils.AssertEqual(t, len(d), 52)
		utils.AssertEqual(t, d[0].Identifier, "club_4")
	})

	t.Run("clamps to the cards that remain", func(t *testing.T) {
		d := New()
		d.Deal(53)
		dealt := d.Deal(5)

		assert.Len(t, dealt, 2)
		utils.AssertEqual(t, dealt[0].Identifier, "joker_2")
		utils.AssertEqual(t, len(d), 0)
	})

	t.Run("refuses a negative count", func(t *testing.T) {
		d := New()
		dealt := d.Deal(-1)

		assert.Empty(t, dealt)
		utils.AssertEqual(t, len(d), 55)
	})

	t.Run("can deal the whole deck", func(t *testing.T) {
		d := New()
		dealt := d.Deal(55)

		assert.Len(t, dealt, 55)
		utils.AssertEqual(t, len(d), 0)
	})
}

func TestIsSuiteChanger(t *testing.T) {
	tt := []struct {
		name string
		card Card
		want bool
	}{
		{"eight is a suite changer", NewCard(Heart, "8"), true},
		{"jack is a suite changer", NewCard(Club, Jack), true},
		{"seven is not", NewCard(Club, "7"), false},
		{"king is not", NewCard(Diamond, King), false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			utils.AssertEqual(t, tc.card.IsSuiteChanger(), tc.want)
		})
	}
}
