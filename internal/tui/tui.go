// Package tui is the terminal front end for a game of spider solitaire.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/spider/internal/game"
	"github.com/lox/spider/internal/timer"
)

const (
	noticeLines = 4
	maxNotices  = 50
)

// tickMsg refreshes the play clock
type tickMsg time.Time

// Model is the Bubble Tea model for one spider session
type Model struct {
	game      *game.Manager
	logger    *log.Logger
	clock     quartz.Clock
	stopwatch *timer.Stopwatch
	showTimer bool
	theme     Theme

	keys    keyMap
	help    help.Model
	notices viewport.Model

	cursor    int
	selection *Selection
	messages  []string
	quitting  bool

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the clock driving the play timer
func WithClock(clock quartz.Clock) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithTimer shows or hides the play timer
func WithTimer(show bool) Option {
	return func(m *Model) {
		m.showTimer = show
	}
}

// WithTheme selects the board theme by name
func WithTheme(name string) Option {
	return func(m *Model) {
		m.theme = ThemeFor(name)
	}
}

// New creates a model playing the manager's game and subscribes it to the
// game's events.
func New(manager *game.Manager, logger *log.Logger, opts ...Option) *Model {
	m := &Model{
		game:      manager,
		logger:    logger.WithPrefix("tui"),
		showTimer: true,
		theme:     ThemeFor("default"),
		keys:      defaultKeyMap(),
		help:      help.New(),
		notices:   viewport.New(10, noticeLines),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = quartz.NewReal()
	}

	m.stopwatch = timer.New(m.clock)
	m.stopwatch.Start()
	manager.Subscribe(m)
	return m
}

// Init starts the clock tick
func (m *Model) Init() tea.Cmd {
	if !m.showTimer {
		return nil
	}
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// OnEvent turns game events into notices. Events arrive synchronously from
// the manager calls made in Update.
func (m *Model) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.InvalidMoveEvent:
		m.notify(ErrorStyle.Render("Invalid move"))
		m.logger.Debug("Invalid move", "move", e.Move, "reason", e.Reason)
	case game.SetCompletedEvent:
		m.notify(SuccessStyle.Render(fmt.Sprintf("Set completed (%d/%d)", e.CompletedSets, game.WinningSets)))
	case game.WonEvent:
		m.stopwatch.Pause()
		m.notify(SuccessStyle.Render(fmt.Sprintf("You won in %d moves and %s!", e.MoveCount, m.stopwatch)))
		m.logger.Info("Game won", "game", e.GameID, "moves", e.MoveCount, "time", m.stopwatch.Elapsed())
	case game.NewGameEvent:
		m.notify(InfoStyle.Render("New game " + shortID(e.GameID)))
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.notices.Width = max(msg.Width-2, 1)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor + game.NumColumns - 1) % game.NumColumns
	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % game.NumColumns
	case key.Matches(msg, m.keys.Up):
		if m.selection != nil {
			sel := m.selection.Grow(m.game.State())
			m.selection = &sel
		}
	case key.Matches(msg, m.keys.Down):
		if m.selection != nil {
			sel := m.selection.Shrink(m.game.State())
			m.selection = &sel
		}
	case key.Matches(msg, m.keys.Select):
		m.selectOrDrop()
	case key.Matches(msg, m.keys.Cancel):
		m.selection = nil
	case key.Matches(msg, m.keys.Deal):
		m.deal()
	case key.Matches(msg, m.keys.Undo):
		m.selection = nil
		if err := m.game.Undo(); errors.Is(err, game.ErrEmptyHistory) {
			m.notify(WarningStyle.Render("Nothing to undo"))
		}
	case key.Matches(msg, m.keys.New):
		m.selection = nil
		m.game.NewGame()
		m.stopwatch.Start()
	case key.Matches(msg, m.keys.Hint):
		m.hint()
	case key.Matches(msg, m.keys.Pause):
		if !m.game.IsWon() {
			if m.stopwatch.Toggle() {
				m.notify(InfoStyle.Render("Timer resumed"))
			} else {
				m.notify(InfoStyle.Render("Timer paused"))
			}
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) selectOrDrop() {
	if m.selection == nil {
		sel, ok := Pick(m.game.State(), m.cursor)
		if !ok {
			m.notify(WarningStyle.Render("Nothing to pick up"))
			return
		}
		m.selection = &sel
		return
	}

	sel := *m.selection
	m.selection = nil
	if sel.Source == m.cursor {
		return
	}

	mv := sel.To(m.cursor)
	// rejections are reported through InvalidMoveEvent
	if _, err := m.game.AttemptMove(mv.Source, mv.Start, mv.Target); err != nil {
		m.logger.Debug("Move rejected", "move", mv, "error", err)
	}
}

func (m *Model) deal() {
	m.selection = nil
	stock := m.game.NextStockPile()
	if stock < 0 {
		m.notify(WarningStyle.Render("The stock is empty"))
		return
	}
	if err := m.game.DealFromStock(stock); err != nil {
		if errors.Is(err, game.ErrEmptyColumn) {
			m.notify(WarningStyle.Render("Fill every column before dealing"))
			return
		}
		m.notify(ErrorStyle.Render(err.Error()))
	}
}

func (m *Model) hint() {
	h, ok := m.game.Hint()
	if !ok {
		m.notify(WarningStyle.Render("No moves left"))
		return
	}
	if !h.Deal {
		m.cursor = h.Move.Source
	}
	m.notify(InfoStyle.Render(h.String()))
}

// notify appends a line to the notice pane
func (m *Model) notify(text string) {
	m.messages = append(m.messages, text)
	if len(m.messages) > maxNotices {
		m.messages = m.messages[len(m.messages)-maxNotices:]
	}
	m.notices.SetContent(strings.Join(m.messages, "\n"))
	m.notices.GotoBottom()
}

// Notices returns the notices shown so far, oldest first
func (m *Model) Notices() []string {
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

// Cursor returns the highlighted column
func (m *Model) Cursor() int {
	return m.cursor
}

// Selection returns the run currently held, if any
func (m *Model) Selection() (Selection, bool) {
	if m.selection == nil {
		return Selection{}, false
	}
	return *m.selection, true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
