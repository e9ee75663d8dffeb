package game

import "errors"

var (
	// ErrInvalidMove is returned when a move breaks the run or rank rules
	ErrInvalidMove = errors.New("invalid move")

	// ErrEmptyHistory is returned by Undo when there is nothing to undo
	ErrEmptyHistory = errors.New("nothing to undo")

	// ErrEmptyStock is returned when dealing from a stock pile that was already dealt
	ErrEmptyStock = errors.New("stock pile is empty")

	// ErrNotStockPile is returned when dealing from a pile that is not a stock pile
	ErrNotStockPile = errors.New("not a stock pile")

	// ErrEmptyColumn is returned in strict-deal mode while a column is empty
	ErrEmptyColumn = errors.New("cannot deal while a column is empty")

	// ErrPileIndex is returned for pile indices outside 0-14. It indicates a
	// caller bug rather than a rule violation.
	ErrPileIndex = errors.New("pile index out of range")
)
