package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/lox/spider/internal/randutil"
	"github.com/lox/spider/internal/simulator"
)

// SimulateCmd plays games without a player
type SimulateCmd struct {
	Games    int    `default:"100" help:"Number of games to play"`
	Workers  int    `help:"Parallel workers (default: number of CPUs)"`
	Seed     *int64 `help:"Seed of the first game; game i uses seed+i"`
	MaxMoves int    `default:"1000" help:"Give up on a game after this many actions"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, g.level(cfg))

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := randutil.Seed(firstSeed(c.Seed, cfg.Game.Seed))

	logger.Info("Starting simulation", "games", c.Games, "workers", workers, "seed", seed)
	res, err := simulator.Run(setupSignalHandler(logger), simulator.Config{
		Games:    c.Games,
		Workers:  workers,
		Seed:     seed,
		MaxMoves: c.MaxMoves,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Println(titleStyle.Render(" Spider simulation "))
	fmt.Println()
	fmt.Print(res.Summary())
	return nil
}
