package game

import (
	"fmt"
	"sort"
)

// Move identifies a run by its source column and first card index, and the
// column it should be placed on.
type Move struct {
	Source int `json:"source"`
	Start  int `json:"start"`
	Target int `json:"target"`
}

// String returns the move in "3[4] -> 7" form
func (mv Move) String() string {
	return fmt.Sprintf("%d[%d] -> %d", mv.Source, mv.Start, mv.Target)
}

// LegalMoves returns every move between columns that AttemptMove would accept
func LegalMoves(s State) []Move {
	var moves []Move
	for src := 0; src < NumColumns; src++ {
		p := s.Piles[src]
		for start := p.FaceUpStart(); start < len(p); start++ {
			if !ValidRun(p, start) {
				continue
			}
			for dst := 0; dst < NumColumns; dst++ {
				if dst != src && IsValidMove(p[start].Rank, s.Piles[dst]) {
					moves = append(moves, Move{Source: src, Start: start, Target: dst})
				}
			}
		}
	}
	return moves
}

// RankedMoves returns the useful legal moves, best first. A move is useless
// when it carries a whole column to an empty one, or lifts a run off a card of
// the same rank as the one it lands on. Remaining moves rank by whether they
// turn over a face-down card, then empty a column, then build on a card rather
// than fill an empty column. Longer runs win ties.
func RankedMoves(s State) []Move {
	type scored struct {
		move  Move
		score int
		cards int
	}

	var candidates []scored
	for _, mv := range LegalMoves(s) {
		src, dst := s.Piles[mv.Source], s.Piles[mv.Target]
		if len(dst) == 0 && mv.Start == 0 {
			continue
		}
		below := -1
		if mv.Start > 0 {
			below = mv.Start - 1
		}
		if top, ok := dst.Top(); ok && below >= 0 && !src[below].Down && src[below].Rank == top.Rank {
			continue
		}

		score := 0
		switch {
		case below >= 0 && src[below].Down:
			score = 3
		case below < 0 && len(dst) > 0:
			score = 2
		case len(dst) > 0:
			score = 1
		}
		candidates = append(candidates, scored{move: mv, score: score, cards: len(src) - mv.Start})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].cards > candidates[j].cards
	})

	moves := make([]Move, len(candidates))
	for i, c := range candidates {
		moves[i] = c.move
	}
	return moves
}

// Hint is a suggestion for the player's next action
type Hint struct {
	Move  Move
	Deal  bool
	Stock int
}

// String describes the hint for display
func (h Hint) String() string {
	if h.Deal {
		return "Deal from the stock"
	}
	return fmt.Sprintf("Move column %d card %d onto column %d", h.Move.Source+1, h.Move.Start+1, h.Move.Target+1)
}

// Hint suggests the best ranked move, or a deal when no useful move exists.
// It reports false when neither is available.
func (m *Manager) Hint() (Hint, bool) {
	if moves := RankedMoves(m.state); len(moves) > 0 {
		return Hint{Move: moves[0]}, true
	}
	if stock := m.NextStockPile(); stock >= 0 {
		return Hint{Deal: true, Stock: stock}, true
	}
	return Hint{}, false
}

// LegalMoves returns the legal moves in the current state
func (m *Manager) LegalMoves() []Move {
	return LegalMoves(m.state)
}
