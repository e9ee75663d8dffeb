// Package simulator plays many games with a greedy policy. It measures how
// often the engine's deals can be won and checks card conservation at the
// end of every game.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/spider/internal/deck"
	"github.com/lox/spider/internal/game"
	"github.com/lox/spider/internal/randutil"
)

// DefaultMaxMoves caps the actions of a single game
const DefaultMaxMoves = 1000

// ErrConservation reports a game whose card count no longer adds up
var ErrConservation = errors.New("card conservation violated")

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Workers  int
	Seed     int64
	MaxMoves int
	Logger   *log.Logger
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed  int64
	Won   bool
	Sets  int
	Moves int
	Deals int
}

// Result aggregates the simulated games
type Result struct {
	Games []GameResult
	Wins  int
	Sets  int
	Moves int
}

// WinRate returns the fraction of games won
func (r *Result) WinRate() float64 {
	if len(r.Games) == 0 {
		return 0
	}
	return float64(r.Wins) / float64(len(r.Games))
}

// Summary formats the totals for display
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Games:     %d\n", len(r.Games))
	fmt.Fprintf(&b, "Won:       %d (%.1f%%)\n", r.Wins, r.WinRate()*100)
	fmt.Fprintf(&b, "Sets:      %d\n", r.Sets)
	if len(r.Games) > 0 {
		fmt.Fprintf(&b, "Moves/game: %.1f\n", float64(r.Moves)/float64(len(r.Games)))
	}
	return b.String()
}

// Run plays cfg.Games games across cfg.Workers workers. Game i is dealt from
// seed cfg.Seed+i, so results do not depend on the number of workers.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxMoves <= 0 {
		cfg.MaxMoves = DefaultMaxMoves
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger := cfg.Logger.WithPrefix("simulator")

	games := make([]GameResult, cfg.Games)
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < cfg.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				seed := cfg.Seed + int64(i)
				m := game.NewManager(randutil.New(seed), game.WithLogger(cfg.Logger))
				result, err := Play(ctx, m, cfg.MaxMoves)
				if err != nil {
					return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
				}
				result.Seed = seed
				games[i] = result
				logger.Debug("Game finished", "seed", seed, "won", result.Won, "sets", result.Sets, "moves", result.Moves)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Games: games}
	for _, r := range games {
		if r.Won {
			res.Wins++
		}
		res.Sets += r.Sets
		res.Moves += r.Moves
	}
	logger.Info("Simulation complete", "games", len(games), "wins", res.Wins, "sets", res.Sets)
	return res, nil
}

// Play drives m with a greedy policy until the game is won, no action is
// left, or maxMoves actions have been taken. It takes the best ranked move
// that leads to a position not seen before, and deals when there is none.
func Play(ctx context.Context, m *game.Manager, maxMoves int) (GameResult, error) {
	var result GameResult
	seen := map[string]bool{stateKey(m.State()): true}

	for !m.IsWon() && m.State().MoveCount < maxMoves {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		moved, err := tryMoves(m, seen)
		if err != nil {
			return result, err
		}
		if moved {
			continue
		}

		stock := m.NextStockPile()
		if stock < 0 {
			break
		}
		if err := m.DealFromStock(stock); err != nil {
			return result, fmt.Errorf("deal from %d: %w", stock, err)
		}
		seen[stateKey(m.State())] = true
		result.Deals++
	}

	s := m.State()
	if want := deck.Size - game.SetSize*s.CompletedSets; s.TotalCards() != want {
		return result, fmt.Errorf("%w: %d cards with %d sets completed", ErrConservation, s.TotalCards(), s.CompletedSets)
	}

	result.Won = s.IsWon()
	result.Sets = s.CompletedSets
	result.Moves = s.MoveCount
	return result, nil
}

// tryMoves applies the first ranked move that reaches an unseen position
func tryMoves(m *game.Manager, seen map[string]bool) (bool, error) {
	for _, mv := range game.RankedMoves(m.State()) {
		if _, err := m.AttemptMove(mv.Source, mv.Start, mv.Target); err != nil {
			return false, fmt.Errorf("legal move %s rejected: %w", mv, err)
		}
		key := stateKey(m.State())
		if !seen[key] {
			seen[key] = true
			return true, nil
		}
		if err := m.Undo(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// stateKey identifies a position by its piles
func stateKey(s game.State) string {
	var b strings.Builder
	for _, p := range s.Piles {
		for _, c := range p {
			b.WriteByte(byte('a' + c.Rank))
			if c.Down {
				b.WriteByte('*')
			}
		}
		b.WriteByte('|')
	}
	return b.String()
}
