package deck

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Rank represents a card rank. Aces are low.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the number of distinct ranks in a suit
const NumRanks = 13

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Ten {
		return strconv.Itoa(int(r))
	}
	return "?"
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// ParseRank parses a rank symbol such as "A", "7", "10" or "q"
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "T":
		return Ten, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Two) || n > int(Ten) {
		return 0, fmt.Errorf("invalid rank %q", s)
	}
	return Rank(n), nil
}

// Card is a one-suit playing card. Down is true while the card is face-down.
type Card struct {
	Rank Rank
	Down bool
}

// NewCard creates a face-down card
func NewCard(rank Rank) Card {
	return Card{Rank: rank, Down: true}
}

// Up returns a face-up card of the given rank
func Up(rank Rank) Card {
	return Card{Rank: rank}
}

// String returns "K" for a face-up King and "K*" for a face-down one
func (c Card) String() string {
	if c.Down {
		return c.Rank.String() + "*"
	}
	return c.Rank.String()
}

type cardJSON struct {
	Rank string `json:"rank"`
	Down bool   `json:"down"`
}

// MarshalJSON encodes the card as {"rank":"Q","down":false}
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Rank: c.Rank.String(), Down: c.Down})
}

// UnmarshalJSON decodes the form written by MarshalJSON
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rank, err := ParseRank(raw.Rank)
	if err != nil {
		return err
	}
	c.Rank = rank
	c.Down = raw.Down
	return nil
}

// ParseCards parses a whitespace separated list of cards.
// Format: "3* 9* K Q J" where a trailing '*' marks a face-down card.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for i, field := range fields {
		down := strings.HasSuffix(field, "*")
		rank, err := ParseRank(strings.TrimSuffix(field, "*"))
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, Card{Rank: rank, Down: down})
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}
