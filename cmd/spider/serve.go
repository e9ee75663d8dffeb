package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/spider/internal/game"
	"github.com/lox/spider/internal/randutil"
	"github.com/lox/spider/internal/server"
)

// ServeCmd serves games over WebSocket
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides the config file)"`
	Seed   *int64 `help:"Seed for the sequence of deals (optional)"`
	Strict bool   `help:"Refuse to deal while a column is empty"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, g.level(cfg))

	addr := cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	seed := randutil.Seed(firstSeed(c.Seed, cfg.Game.Seed))
	logger.Info("Using seed", "seed", seed)

	srv := server.NewServer(logger, randutil.New(seed),
		server.WithGameOptions(game.WithStrictDeal(c.Strict || cfg.Game.StrictDeal)))

	grp, ctx := errgroup.WithContext(setupSignalHandler(logger))
	grp.Go(func() error {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return grp.Wait()
}
