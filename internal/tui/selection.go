package tui

import "github.com/lox/spider/internal/game"

// Selection is a run the player has picked up but not yet dropped. It is
// only a pointer into the board; the board itself changes when the run is
// dropped and AttemptMove accepts it.
type Selection struct {
	Source int
	Start  int
}

// Pick selects the longest movable run on top of column col
func Pick(s game.State, col int) (Selection, bool) {
	if !game.IsColumn(col) {
		return Selection{}, false
	}
	p := s.Piles[col]
	for start := p.FaceUpStart(); start < len(p); start++ {
		if game.ValidRun(p, start) {
			return Selection{Source: col, Start: start}, true
		}
	}
	return Selection{}, false
}

// Grow extends the selection one card down the column while it stays a run
func (sel Selection) Grow(s game.State) Selection {
	p := s.Piles[sel.Source]
	if sel.Start > 0 && game.ValidRun(p, sel.Start-1) {
		sel.Start--
	}
	return sel
}

// Shrink drops the bottom card of the selection, keeping at least one
func (sel Selection) Shrink(s game.State) Selection {
	if sel.Start < len(s.Piles[sel.Source])-1 {
		sel.Start++
	}
	return sel
}

// Covers reports whether card i of column col is part of the selection
func (sel Selection) Covers(col, i int) bool {
	return col == sel.Source && i >= sel.Start
}

// To returns the move that drops the selection on column target
func (sel Selection) To(target int) game.Move {
	return game.Move{Source: sel.Source, Start: sel.Start, Target: target}
}
