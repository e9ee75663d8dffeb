package deck

import (
	rand "math/rand/v2"
)

const (
	// Copies is how many times each rank appears in a Spider deck
	Copies = 8

	// Size is the number of cards in a one-suit Spider deck
	Size = NumRanks * Copies
)

// Deck represents the 104 cards of a one-suit Spider Solitaire game
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a deck of 104 face-down cards, each rank repeated eight times,
// in rank order. Call Shuffle to randomise it.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	for rank := Ace; rank <= King; rank++ {
		for range Copies {
			d.cards = append(d.cards, NewCard(rank))
		}
	}
	return d
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Cards returns a copy of the cards in their current order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
