package game

import (
	rand "math/rand/v2"

	"github.com/lox/spider/internal/deck"
)

// pileSizes is the number of cards dealt to each pile at the start of a game
var pileSizes = [NumPiles]int{6, 6, 6, 6, 5, 5, 5, 5, 5, 5, 10, 10, 10, 10, 10}

// Layout is a freshly dealt game
type Layout struct {
	Piles [NumPiles]Pile

	// Cards holds the 104 cards in shuffled order, all face-down
	Cards []deck.Card
}

// Initiate shuffles a 104-card one-suit deck and deals it into fifteen piles.
// The top card of every column is turned face-up; stock piles stay face-down.
func Initiate(rng *rand.Rand) Layout {
	d := deck.New(rng)
	d.Shuffle()
	return layOut(d.Cards())
}

func layOut(cards []deck.Card) Layout {
	var layout Layout
	layout.Cards = make([]deck.Card, len(cards))
	copy(layout.Cards, cards)

	next := 0
	for i, size := range pileSizes {
		layout.Piles[i] = Pile(cards[next : next+size]).Clone()
		next += size
	}

	for i := 0; i < NumColumns; i++ {
		layout.Piles[i].ExposeTop()
	}
	return layout
}
