package game

import (
	"fmt"
	"strings"

	"github.com/lox/spider/internal/deck"
)

const (
	// NumPiles is the number of piles in a game: ten columns and five stock piles
	NumPiles = 15

	// NumColumns is the number of tableau columns, indices 0-9
	NumColumns = 10

	// FirstStock is the index of the first stock pile
	FirstStock = NumColumns

	// SetSize is the length of a completed King-to-Ace run
	SetSize = deck.NumRanks

	// WinningSets is the number of completed sets that wins the game
	WinningSets = deck.Size / SetSize
)

// Pile is an ordered stack of cards. Index 0 is the bottom card.
type Pile []deck.Card

// Top returns the top card of the pile
func (p Pile) Top() (deck.Card, bool) {
	if len(p) == 0 {
		return deck.Card{}, false
	}
	return p[len(p)-1], true
}

// FaceUpStart returns the index of the first card of the face-up suffix,
// or len(p) when the top card is face-down or the pile is empty.
func (p Pile) FaceUpStart() int {
	i := len(p)
	for i > 0 && !p[i-1].Down {
		i--
	}
	return i
}

// ExposeTop turns the top card face-up and reports whether it was face-down
func (p Pile) ExposeTop() bool {
	if len(p) == 0 || !p[len(p)-1].Down {
		return false
	}
	p[len(p)-1].Down = false
	return true
}

// Clone returns a deep copy of the pile. The copy is never nil.
func (p Pile) Clone() Pile {
	out := make(Pile, len(p))
	copy(out, p)
	return out
}

// String renders the pile bottom to top, e.g. "3* 9* K Q"
func (p Pile) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// IsColumn reports whether i is a tableau column index
func IsColumn(i int) bool {
	return i >= 0 && i < NumColumns
}

// IsStock reports whether i is a stock pile index
func IsStock(i int) bool {
	return i >= FirstStock && i < NumPiles
}

func checkIndex(i int) error {
	if i < 0 || i >= NumPiles {
		return fmt.Errorf("%w: %d", ErrPileIndex, i)
	}
	return nil
}
