package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Option configures a Manager during creation.
type Option func(*managerConfig)

// managerConfig holds all configuration for creating a manager.
type managerConfig struct {
	logger     *log.Logger
	bus        EventBus
	clock      quartz.Clock
	strictDeal bool
	piles      *[NumPiles]Pile // If provided, the first game uses these piles
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *managerConfig) {
		c.logger = logger
	}
}

// WithEventBus publishes game events to bus
func WithEventBus(bus EventBus) Option {
	return func(c *managerConfig) {
		c.bus = bus
	}
}

// WithClock sets the clock used for game IDs and event timestamps
func WithClock(clock quartz.Clock) Option {
	return func(c *managerConfig) {
		c.clock = clock
	}
}

// WithStrictDeal refuses to deal from the stock while any column is empty,
// as in the standard rules. By default dealing is always allowed.
func WithStrictDeal(strict bool) Option {
	return func(c *managerConfig) {
		c.strictDeal = strict
	}
}

// WithPiles starts the first game from the given piles instead of a shuffled
// deal. Missing trailing piles are empty. Intended for tests and replays.
func WithPiles(piles ...Pile) Option {
	if len(piles) > NumPiles {
		panic("too many piles")
	}
	return func(c *managerConfig) {
		var layout [NumPiles]Pile
		for i := range layout {
			if i < len(piles) {
				layout[i] = piles[i].Clone()
			} else {
				layout[i] = Pile{}
			}
		}
		c.piles = &layout
	}
}

func defaultConfig() *managerConfig {
	return &managerConfig{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		bus:    NewEventBus(),
		clock:  quartz.NewReal(),
	}
}
