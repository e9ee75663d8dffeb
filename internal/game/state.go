package game

// State is a snapshot of a game
type State struct {
	Piles         [NumPiles]Pile `json:"piles"`
	CompletedSets int            `json:"completedSets"`
	MoveCount     int            `json:"moveCount"`
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := s
	for i, p := range s.Piles {
		out.Piles[i] = p.Clone()
	}
	return out
}

// Equal reports whether two states hold the same cards and counters.
// Nil and empty piles compare equal.
func (s State) Equal(o State) bool {
	if s.CompletedSets != o.CompletedSets || s.MoveCount != o.MoveCount {
		return false
	}
	for i := range s.Piles {
		a, b := s.Piles[i], o.Piles[i]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// TotalCards returns the number of cards across all piles
func (s State) TotalCards() int {
	total := 0
	for _, p := range s.Piles {
		total += len(p)
	}
	return total
}

// IsWon reports whether all eight sets have been completed
func (s State) IsWon() bool {
	return s.CompletedSets == WinningSets
}

// StockRemaining returns the number of stock piles that can still be dealt
func (s State) StockRemaining() int {
	n := 0
	for i := FirstStock; i < NumPiles; i++ {
		if len(s.Piles[i]) > 0 {
			n++
		}
	}
	return n
}

// Columns returns the ten tableau columns
func (s State) Columns() []Pile {
	return s.Piles[:NumColumns]
}
