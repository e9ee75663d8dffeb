package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/spider/internal/game"
	"github.com/lox/spider/internal/randutil"
	"github.com/lox/spider/internal/tui"
)

// PlayCmd runs the terminal game
type PlayCmd struct {
	Seed    *int64 `help:"Deal reproducibly from this seed"`
	NoTimer bool   `help:"Hide the play clock"`
	Strict  bool   `help:"Refuse to deal while a column is empty"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, g.level(cfg))

	seed := randutil.Seed(firstSeed(c.Seed, cfg.Game.Seed))
	logger.Info("Starting game", "seed", seed)

	manager := game.NewManager(randutil.New(seed),
		game.WithLogger(logger),
		game.WithStrictDeal(c.Strict || cfg.Game.StrictDeal),
	)
	model := tui.New(manager, logger,
		tui.WithTimer(cfg.TimerEnabled() && !c.NoTimer),
		tui.WithTheme(cfg.UI.Theme),
	)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
