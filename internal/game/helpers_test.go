package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/spider/internal/deck"
	"github.com/lox/spider/internal/randutil"
)

// pile parses "3* 9* K Q" into a Pile
func pile(s string) Pile {
	return Pile(deck.MustParseCards(s))
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// eventRecorder captures published events in order
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == t {
			n++
		}
	}
	return n
}

// newTestManager creates a manager over fixed piles with an event recorder
func newTestManager(t *testing.T, piles ...Pile) (*Manager, *eventRecorder) {
	t.Helper()

	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	opts := []Option{
		WithLogger(quietLogger()),
		WithEventBus(bus),
		WithClock(quartz.NewMock(t)),
	}
	if len(piles) > 0 {
		opts = append(opts, WithPiles(piles...))
	}
	return NewManager(randutil.New(1), opts...), rec
}

// fullRun is a face-up King to Two run, one Ace short of a completed set
const fullRun = "K Q J 10 9 8 7 6 5 4 3 2"

// stockOf returns ten face-down cards with the given ranks on top of Aces
func stockOf(ranks string) Pile {
	p := pile(ranks)
	for i := range p {
		p[i].Down = true
	}
	for len(p) < NumColumns {
		p = append(p, deck.NewCard(deck.Ace))
	}
	return p
}
