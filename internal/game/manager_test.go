package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/spider/internal/deck"
	"github.com/lox/spider/internal/gameid"
	"github.com/lox/spider/internal/randutil"
)

func TestNewManagerDealsGame(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t)
	s := m.State()

	assert.Equal(t, deck.Size, s.TotalCards())
	assert.Zero(t, s.MoveCount)
	assert.Zero(t, s.CompletedSets)
	assert.False(t, m.CanUndo())
	assert.False(t, m.IsWon())
	assert.NoError(t, gameid.Validate(m.ID()))
	assert.Equal(t, 1, rec.count(EventTypeNewGame))
}

func TestNewManagerRequiresRNG(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewManager(nil) })
	assert.Panics(t, func() { WithPiles(make([]Pile, NumPiles+1)...) })
}

func TestAttemptMove(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t, pile("5* 9"), pile("3* 10"))

	result, err := m.AttemptMove(0, 1, 1)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Zero(t, result.SetsCompleted)
	assert.False(t, result.Won)

	s := m.State()
	assert.Equal(t, "5", s.Piles[0].String(), "newly exposed card turns face-up")
	assert.Equal(t, "3* 10 9", s.Piles[1].String())
	assert.Equal(t, 1, s.MoveCount)
	assert.True(t, m.CanUndo())
	assert.Equal(t, 1, rec.count(EventTypeMove))
}

func TestAttemptMoveRun(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, pile("2* 8 7 6"), pile("9"))

	_, err := m.AttemptMove(0, 1, 1)
	require.NoError(t, err)

	s := m.State()
	assert.Equal(t, "2", s.Piles[0].String())
	assert.Equal(t, "9 8 7 6", s.Piles[1].String())
}

func TestAttemptMoveOntoEmptyColumn(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, pile("4* J 10"), Pile{})

	_, err := m.AttemptMove(0, 2, 1)
	require.NoError(t, err)

	s := m.State()
	assert.Equal(t, "4* J", s.Piles[0].String(), "a face-up card is not flipped")
	assert.Equal(t, "10", s.Piles[1].String())
}

func TestAttemptMoveEmptiesColumn(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, pile("9"), pile("10"))

	_, err := m.AttemptMove(0, 0, 1)
	require.NoError(t, err)
	assert.Empty(t, m.State().Piles[0])
}

func TestAttemptMoveRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		source, start, target int
	}{
		{name: "same pile", source: 0, start: 2, target: 0},
		{name: "face-down card", source: 0, start: 0, target: 1},
		{name: "broken run", source: 2, start: 0, target: 3},
		{name: "rank mismatch", source: 0, start: 2, target: 3},
		{name: "onto face-down top", source: 0, start: 2, target: 4},
		{name: "start past the top", source: 0, start: 3, target: 1},
		{name: "negative start", source: 0, start: -1, target: 1},
		{name: "from empty column", source: 5, start: 0, target: 1},
		{name: "stock pile as source", source: 10, start: 9, target: 5},
		{name: "stock pile as target", source: 0, start: 2, target: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := newTestManager(t,
				pile("3* 9* 8"),
				pile("9"),
				pile("7 5 4"),
				pile("J"),
				pile("9*"),
				Pile{},
				pile("A"), pile("A"), pile("A"), pile("A"),
				stockOf("7 7 7"),
			)
			before := m.State()

			result, err := m.AttemptMove(tt.source, tt.start, tt.target)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMove)
			assert.False(t, result.Applied)
			assert.True(t, before.Equal(m.State()), "state must not change")
			assert.False(t, m.CanUndo())
			assert.Equal(t, 1, rec.count(EventTypeInvalidMove))
		})
	}
}

func TestAttemptMovePileIndexOutOfRange(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t, pile("9"), pile("10"))
	before := m.State()

	for _, mv := range []Move{{-1, 0, 1}, {15, 0, 1}, {0, 0, 15}, {0, 0, -3}} {
		_, err := m.AttemptMove(mv.Source, mv.Start, mv.Target)
		assert.ErrorIs(t, err, ErrPileIndex, "move %s", mv)
		assert.NotErrorIs(t, err, ErrInvalidMove)
	}
	assert.True(t, before.Equal(m.State()))
	assert.Zero(t, rec.count(EventTypeInvalidMove))
}

func TestAttemptMoveCompletesSet(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t, pile("4* "+fullRun), pile("6 A"))
	before := m.State()

	result, err := m.AttemptMove(1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SetsCompleted)

	s := m.State()
	assert.Equal(t, "4", s.Piles[0].String(), "card under the set turns face-up")
	assert.Equal(t, "6", s.Piles[1].String())
	assert.Equal(t, 1, s.CompletedSets)
	assert.Equal(t, before.TotalCards()-SetSize, s.TotalCards())
	assert.Equal(t, 1, rec.count(EventTypeSetCompleted))
	assert.Zero(t, rec.count(EventTypeWon))

	require.NoError(t, m.Undo())
	assert.True(t, before.Equal(m.State()))
}

func TestUndoRoundTrip(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t, pile("5* 9"), pile("3* 10"), pile("K"))
	before := m.State()

	_, err := m.AttemptMove(0, 1, 1)
	require.NoError(t, err)
	assert.False(t, before.Equal(m.State()))

	require.NoError(t, m.Undo())
	assert.True(t, before.Equal(m.State()))
	assert.False(t, m.CanUndo())
	assert.Equal(t, 1, rec.count(EventTypeUndo))
}

func TestUndoEmptyHistory(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t)
	before := m.State()

	assert.ErrorIs(t, m.Undo(), ErrEmptyHistory)
	assert.True(t, before.Equal(m.State()))
	assert.Zero(t, rec.count(EventTypeUndo))
}

func TestUndoIsSingleStep(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, pile("5* 9"), pile("10"), pile("J"), Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, stockOf(""))

	s0 := m.State()
	_, err := m.AttemptMove(1, 0, 2)
	require.NoError(t, err)
	s1 := m.State()
	_, err = m.AttemptMove(0, 1, 2)
	require.NoError(t, err)
	require.NoError(t, m.DealFromStock(10))

	require.NoError(t, m.Undo())
	assert.Equal(t, 2, m.State().MoveCount)
	require.NoError(t, m.Undo())
	assert.True(t, s1.Equal(m.State()))
	require.NoError(t, m.Undo())
	assert.True(t, s0.Equal(m.State()))
	assert.ErrorIs(t, m.Undo(), ErrEmptyHistory)
}

func TestDealFromStock(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t,
		pile("K"), pile("K"), pile("K"), pile("K"), pile("K"),
		pile("K"), pile("K"), pile("K"), pile("K"), pile("K"),
		stockOf("2 3 4 5 6 7 8 9 10 J"), stockOf(""),
	)

	require.NoError(t, m.DealFromStock(10))

	s := m.State()
	expected := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J"}
	for i := 0; i < NumColumns; i++ {
		require.Len(t, s.Piles[i], 2)
		top, _ := s.Piles[i].Top()
		assert.False(t, top.Down, "dealt cards are face-up")
		assert.Equal(t, expected[i], top.Rank.String())
	}
	assert.Empty(t, s.Piles[10])
	assert.NotNil(t, s.Piles[10])
	assert.Equal(t, 1, s.MoveCount)
	assert.Equal(t, 1, s.StockRemaining())
	assert.True(t, m.CanUndo())
	assert.Equal(t, 11, m.NextStockPile())
	assert.Equal(t, 1, rec.count(EventTypeDeal))

	assert.ErrorIs(t, m.DealFromStock(10), ErrEmptyStock)
	assert.Equal(t, 1, m.State().MoveCount)
}

func TestDealFromStockErrors(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, pile("K"), Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, stockOf(""))
	before := m.State()

	assert.ErrorIs(t, m.DealFromStock(3), ErrNotStockPile)
	assert.ErrorIs(t, m.DealFromStock(15), ErrPileIndex)
	assert.ErrorIs(t, m.DealFromStock(-1), ErrPileIndex)
	assert.ErrorIs(t, m.DealFromStock(12), ErrEmptyStock)
	assert.True(t, before.Equal(m.State()))
	assert.False(t, m.CanUndo())
}

func TestDealWithEmptyColumns(t *testing.T) {
	t.Parallel()

	piles := []Pile{pile("K"), Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, Pile{}, stockOf("")}

	t.Run("permissive by default", func(t *testing.T) {
		m, _ := newTestManager(t, piles...)
		require.NoError(t, m.DealFromStock(10))
		assert.Len(t, m.State().Piles[1], 1)
	})

	t.Run("strict deal refuses", func(t *testing.T) {
		m := NewManager(randutil.New(1), WithLogger(quietLogger()), WithPiles(piles...), WithStrictDeal(true))
		before := m.State()
		assert.ErrorIs(t, m.DealFromStock(10), ErrEmptyColumn)
		assert.True(t, before.Equal(m.State()))
	})
}

func TestDealCompletesSet(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t,
		pile("9* "+fullRun), pile("Q"), pile("Q"), pile("Q"), pile("Q"),
		pile("Q"), pile("Q"), pile("Q"), pile("Q"), pile("Q"),
		stockOf("A 2 2 2 2 2 2 2 2 2"),
	)

	require.NoError(t, m.DealFromStock(10))

	s := m.State()
	assert.Equal(t, 1, s.CompletedSets)
	assert.Equal(t, "9", s.Piles[0].String())
	assert.Equal(t, 1, rec.count(EventTypeSetCompleted))
	assert.Equal(t, 13+9+10-SetSize, s.TotalCards())
}

func TestWinDetection(t *testing.T) {
	t.Parallel()

	piles := make([]Pile, 0, NumColumns)
	for i := 0; i < WinningSets; i++ {
		piles = append(piles, pile(fullRun))
	}
	piles = append(piles, pile("A A A A A A A A"))
	m, rec := newTestManager(t, piles...)

	require.Equal(t, deck.Size, m.State().TotalCards())

	for i := 0; i < WinningSets; i++ {
		assert.False(t, m.IsWon())
		result, err := m.AttemptMove(8, WinningSets-1-i, i)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SetsCompleted)

		s := m.State()
		assert.Equal(t, i+1, s.CompletedSets)
		assert.Equal(t, deck.Size-SetSize*s.CompletedSets, s.TotalCards())
	}

	assert.True(t, m.IsWon())
	assert.Equal(t, 1, rec.count(EventTypeWon))
	assert.Zero(t, m.State().TotalCards())

	// Undoing out of the win and winning again publishes a second event
	require.NoError(t, m.Undo())
	assert.False(t, m.IsWon())
	_, err := m.AttemptMove(8, 0, 7)
	require.NoError(t, err)
	assert.True(t, m.IsWon())
	assert.Equal(t, 2, rec.count(EventTypeWon))
}

func TestNewGameResets(t *testing.T) {
	t.Parallel()

	m, rec := newTestManager(t, pile("5* 9"), pile("10"))
	firstID := m.ID()
	_, err := m.AttemptMove(0, 1, 1)
	require.NoError(t, err)

	m.NewGame()

	s := m.State()
	assert.Zero(t, s.MoveCount)
	assert.Zero(t, s.CompletedSets)
	assert.Equal(t, deck.Size, s.TotalCards())
	assert.False(t, m.CanUndo())
	assert.NotEqual(t, firstID, m.ID())
	assert.Equal(t, 2, rec.count(EventTypeNewGame))
}

func TestStateReturnsCopy(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, pile("5* 9"))
	s := m.State()
	s.Piles[0][0].Down = false
	s.MoveCount = 99

	assert.Equal(t, "5* 9", m.State().Piles[0].String())
	assert.Zero(t, m.State().MoveCount)
}

// TestRandomPlayInvariants plays random legal actions and checks the card
// conservation and exposure rules after every step, then undoes everything.
func TestRandomPlayInvariants(t *testing.T) {
	t.Parallel()

	for seed := int64(1); seed <= 5; seed++ {
		m := NewManager(randutil.New(seed), WithLogger(quietLogger()))
		rng := randutil.New(seed * 31)
		initial := m.State()
		steps := 0

		for step := 0; step < 300; step++ {
			moves := m.LegalMoves()
			if len(moves) > 0 && (rng.IntN(8) != 0 || m.NextStockPile() < 0) {
				mv := moves[rng.IntN(len(moves))]
				_, err := m.AttemptMove(mv.Source, mv.Start, mv.Target)
				require.NoError(t, err, "legal move %s rejected", mv)
			} else if stock := m.NextStockPile(); stock >= 0 {
				require.NoError(t, m.DealFromStock(stock))
			} else {
				break
			}
			steps++

			s := m.State()
			require.Equal(t, deck.Size-SetSize*s.CompletedSets, s.TotalCards(), "seed %d step %d", seed, step)
			require.Equal(t, steps, s.MoveCount)
			for i, col := range s.Columns() {
				if top, ok := col.Top(); ok {
					require.False(t, top.Down, "seed %d step %d column %d top is face-down", seed, step, i)
				}
			}
		}

		for m.CanUndo() {
			require.NoError(t, m.Undo())
		}
		assert.True(t, initial.Equal(m.State()), "seed %d", seed)
	}
}
