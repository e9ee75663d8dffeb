// Package game implements the Spider Solitaire game-state engine.
//
// The main type is Manager, which owns the fifteen piles of a one-suit game,
// the move and completed-set counters, and the undo history.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	m := game.NewManager(rng)
//	if _, err := m.AttemptMove(3, 5, 7); errors.Is(err, game.ErrInvalidMove) {
//	    // tell the player
//	}
//	_ = m.DealFromStock(m.NextStockPile())
//	_ = m.Undo()
//	if m.IsWon() {
//	    m.NewGame()
//	}
//
// # Layout
//
// Piles 0-9 are tableau columns and piles 10-14 are stock piles. Index 0 of a
// pile is its bottom card and the last index is its top card.
//
// # Architecture
//
// Manager delegates the rules to pure functions over piles:
//   - Initiate: shuffles 104 cards and lays out the fifteen piles
//   - IsValidMove and ValidRun: decide whether a run may move onto a pile
//   - CheckCompletedSet: finds a King-to-Ace run in a pile's face-up cards
//   - RankedMoves: enumerates legal moves for hints and simulations
//
// Callers observe changes either by pulling State snapshots or by subscribing
// to the EventBus passed with WithEventBus.
package game
