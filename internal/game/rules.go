package game

import "github.com/lox/spider/internal/deck"

// IsValidMove reports whether a run whose first card has rank moving may be
// placed on target. Any run may go onto an empty pile; otherwise the top card
// must be face-up and exactly one rank above. Suits are not modelled.
func IsValidMove(moving deck.Rank, target Pile) bool {
	top, ok := target.Top()
	if !ok {
		return true
	}
	if top.Down {
		return false
	}
	return moving == top.Rank-1
}

// RunEnd returns the index one past the run that starts at start. The run
// extends toward the top while cards are face-up and each is one rank below
// the card beneath it. RunEnd returns start when p[start] is face-down.
func RunEnd(p Pile, start int) int {
	if start < 0 || start >= len(p) || p[start].Down {
		return start
	}
	end := start + 1
	for end < len(p) && !p[end].Down && p[end].Rank == p[end-1].Rank-1 {
		end++
	}
	return end
}

// ValidRun reports whether the cards from start to the top of p form a run
// that may be moved together.
func ValidRun(p Pile, start int) bool {
	if start < 0 || start >= len(p) {
		return false
	}
	return RunEnd(p, start) == len(p)
}

// CheckCompletedSet looks for thirteen consecutive face-up cards running from
// King down to Ace. Candidate windows are tried from the top of the pile
// downward, so the window holding the most recently placed cards wins. It
// returns the matched cards and the index of the King within p.
func CheckCompletedSet(p Pile) ([]deck.Card, int, bool) {
	up := p.FaceUpStart()
	for start := len(p) - SetSize; start >= up; start-- {
		if isCompleteRun(p[start : start+SetSize]) {
			set := make([]deck.Card, SetSize)
			copy(set, p[start:start+SetSize])
			return set, start, true
		}
	}
	return nil, -1, false
}

func isCompleteRun(window Pile) bool {
	if window[0].Rank != deck.King {
		return false
	}
	for i := 1; i < len(window); i++ {
		if window[i].Rank != window[i-1].Rank-1 {
			return false
		}
	}
	return true
}
