package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/spider/internal/gameid"
)

// MoveResult describes an applied move
type MoveResult struct {
	Applied       bool
	SetsCompleted int
	Won           bool
}

// Manager owns the state of one game and its undo history. It is not safe
// for concurrent use; hosts must serialize calls.
type Manager struct {
	id         string
	state      State
	history    []State
	rng        *rand.Rand
	logger     *log.Logger
	bus        EventBus
	clock      quartz.Clock
	ids        *gameid.Generator
	strictDeal bool
}

// NewManager creates a manager and deals the first game.
// The RNG is required so that deals are reproducible from a seed.
func NewManager(rng *rand.Rand, opts ...Option) *Manager {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{
		rng:        rng,
		logger:     cfg.logger.WithPrefix("game"),
		bus:        cfg.bus,
		clock:      cfg.clock,
		ids:        gameid.NewGenerator(cfg.clock, nil),
		strictDeal: cfg.strictDeal,
	}

	if cfg.piles != nil {
		m.reset(*cfg.piles)
	} else {
		m.NewGame()
	}
	return m
}

// NewGame discards the current game and its history and deals a new one
func (m *Manager) NewGame() {
	layout := Initiate(m.rng)
	m.reset(layout.Piles)
}

func (m *Manager) reset(piles [NumPiles]Pile) {
	m.id = m.ids.Generate()
	m.state = State{Piles: piles}
	m.history = nil

	m.logger.Info("New game", "game", m.id)
	m.bus.Publish(NewGameEvent{GameID: m.id, timestamp: m.clock.Now()})
}

// AttemptMove moves the run that starts at card runStart of column source
// onto column target. Rejected moves return an error wrapping ErrInvalidMove
// (or ErrPileIndex for indices outside 0-14) and leave the state unchanged.
//
// On success the newly exposed card of the source column is turned face-up and
// every completed King-to-Ace run is removed.
func (m *Manager) AttemptMove(source, runStart, target int) (MoveResult, error) {
	mv := Move{Source: source, Start: runStart, Target: target}
	if err := checkIndex(source); err != nil {
		return MoveResult{}, err
	}
	if err := checkIndex(target); err != nil {
		return MoveResult{}, err
	}

	if err := m.validate(mv); err != nil {
		m.logger.Debug("Rejected move", "game", m.id, "move", mv, "reason", err)
		m.bus.Publish(InvalidMoveEvent{Move: mv, Reason: err, timestamp: m.clock.Now()})
		return MoveResult{}, err
	}

	wasWon := m.state.IsWon()
	m.pushHistory()

	src := m.state.Piles[source]
	run := src[runStart:]
	m.state.Piles[target] = append(m.state.Piles[target], run...)
	m.state.Piles[source] = src[:runStart:runStart]
	m.state.MoveCount++
	m.state.Piles[source].ExposeTop()

	sets := m.removeCompletedSets()

	m.logger.Debug("Moved run",
		"game", m.id,
		"move", mv,
		"cards", len(run),
		"sets", sets,
		"moves", m.state.MoveCount)
	m.bus.Publish(MoveEvent{
		Move:          mv,
		Cards:         len(run),
		SetsCompleted: sets,
		MoveCount:     m.state.MoveCount,
		timestamp:     m.clock.Now(),
	})
	m.checkWon(wasWon)

	return MoveResult{Applied: true, SetsCompleted: sets, Won: m.state.IsWon()}, nil
}

func (m *Manager) validate(mv Move) error {
	if mv.Source == mv.Target {
		return fmt.Errorf("%w: source and target are the same pile", ErrInvalidMove)
	}
	if !IsColumn(mv.Source) {
		return fmt.Errorf("%w: pile %d is not a tableau column", ErrInvalidMove, mv.Source)
	}
	if !IsColumn(mv.Target) {
		return fmt.Errorf("%w: pile %d is not a tableau column", ErrInvalidMove, mv.Target)
	}

	src := m.state.Piles[mv.Source]
	if mv.Start < 0 || mv.Start >= len(src) {
		return fmt.Errorf("%w: column %d has no card %d", ErrInvalidMove, mv.Source, mv.Start)
	}
	if src[mv.Start].Down {
		return fmt.Errorf("%w: card %d of column %d is face-down", ErrInvalidMove, mv.Start, mv.Source)
	}
	if !ValidRun(src, mv.Start) {
		return fmt.Errorf("%w: cards from %d of column %d are not a run", ErrInvalidMove, mv.Start, mv.Source)
	}
	if !IsValidMove(src[mv.Start].Rank, m.state.Piles[mv.Target]) {
		return fmt.Errorf("%w: %s cannot go on column %d", ErrInvalidMove, src[mv.Start].Rank, mv.Target)
	}
	return nil
}

// DealFromStock turns the named stock pile face-up and deals one card onto
// each column in index order. Dealing is allowed while columns are empty
// unless the manager was created WithStrictDeal.
func (m *Manager) DealFromStock(stock int) error {
	if err := checkIndex(stock); err != nil {
		return err
	}
	if !IsStock(stock) {
		return fmt.Errorf("%w: %d", ErrNotStockPile, stock)
	}
	pile := m.state.Piles[stock]
	if len(pile) == 0 {
		return fmt.Errorf("%w: %d", ErrEmptyStock, stock)
	}
	if m.strictDeal {
		for i, col := range m.state.Columns() {
			if len(col) == 0 {
				return fmt.Errorf("%w: column %d", ErrEmptyColumn, i)
			}
		}
	}

	wasWon := m.state.IsWon()
	m.pushHistory()

	for i, card := range pile {
		if i >= NumColumns {
			break
		}
		card.Down = false
		m.state.Piles[i] = append(m.state.Piles[i], card)
	}
	m.state.Piles[stock] = Pile{}
	m.state.MoveCount++

	sets := m.removeCompletedSets()

	m.logger.Debug("Dealt stock", "game", m.id, "stock", stock, "sets", sets, "moves", m.state.MoveCount)
	m.bus.Publish(DealEvent{
		Stock:          stock,
		StockRemaining: m.state.StockRemaining(),
		timestamp:      m.clock.Now(),
	})
	m.checkWon(wasWon)
	return nil
}

// Undo restores the state before the most recent move or deal
func (m *Manager) Undo() error {
	if len(m.history) == 0 {
		return ErrEmptyHistory
	}

	last := len(m.history) - 1
	m.state = m.history[last]
	m.history = m.history[:last]

	m.logger.Debug("Undo", "game", m.id, "moves", m.state.MoveCount, "history", len(m.history))
	m.bus.Publish(UndoEvent{MoveCount: m.state.MoveCount, timestamp: m.clock.Now()})
	return nil
}

// removeCompletedSets removes every King-to-Ace run and returns how many
func (m *Manager) removeCompletedSets() int {
	removed := 0
	for i := range m.state.Piles {
		for {
			_, start, ok := CheckCompletedSet(m.state.Piles[i])
			if !ok {
				break
			}
			p := m.state.Piles[i]
			m.state.Piles[i] = append(p[:start:start], p[start+SetSize:]...)
			m.state.Piles[i].ExposeTop()
			m.state.CompletedSets++
			removed++

			m.logger.Debug("Completed set", "game", m.id, "column", i, "completed", m.state.CompletedSets)
			m.bus.Publish(SetCompletedEvent{
				Column:        i,
				CompletedSets: m.state.CompletedSets,
				timestamp:     m.clock.Now(),
			})
		}
	}
	return removed
}

func (m *Manager) checkWon(wasWon bool) {
	if wasWon || !m.state.IsWon() {
		return
	}
	m.logger.Info("Game won", "game", m.id, "moves", m.state.MoveCount)
	m.bus.Publish(WonEvent{GameID: m.id, MoveCount: m.state.MoveCount, timestamp: m.clock.Now()})
}

func (m *Manager) pushHistory() {
	m.history = append(m.history, m.state.Clone())
}

// Subscribe registers sub for this game's events
func (m *Manager) Subscribe(sub EventSubscriber) {
	m.bus.Subscribe(sub)
}

// ID returns the identifier of the current game
func (m *Manager) ID() string {
	return m.id
}

// State returns a deep copy of the current state
func (m *Manager) State() State {
	return m.state.Clone()
}

// CanUndo reports whether there is a move to undo
func (m *Manager) CanUndo() bool {
	return len(m.history) > 0
}

// IsWon reports whether all eight sets have been completed
func (m *Manager) IsWon() bool {
	return m.state.IsWon()
}

// NextStockPile returns the lowest-numbered stock pile that still holds
// cards, or -1 when the stock is exhausted.
func (m *Manager) NextStockPile() int {
	for i := FirstStock; i < NumPiles; i++ {
		if len(m.state.Piles[i]) > 0 {
			return i
		}
	}
	return -1
}
