package game

import (
	"time"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeNewGame      EventType = "new_game"
	EventTypeMove         EventType = "move"
	EventTypeInvalidMove  EventType = "invalid_move"
	EventTypeDeal         EventType = "deal"
	EventTypeUndo         EventType = "undo"
	EventTypeSetCompleted EventType = "set_completed"
	EventTypeWon          EventType = "won"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// NewGameEvent is published when a fresh layout is dealt
type NewGameEvent struct {
	GameID    string
	timestamp time.Time
}

func (e NewGameEvent) EventType() EventType { return EventTypeNewGame }
func (e NewGameEvent) Timestamp() time.Time { return e.timestamp }

// MoveEvent is published after a run has been moved
type MoveEvent struct {
	Move          Move
	Cards         int
	SetsCompleted int
	MoveCount     int
	timestamp     time.Time
}

func (e MoveEvent) EventType() EventType { return EventTypeMove }
func (e MoveEvent) Timestamp() time.Time { return e.timestamp }

// InvalidMoveEvent is published whenever AttemptMove rejects a move
type InvalidMoveEvent struct {
	Move      Move
	Reason    error
	timestamp time.Time
}

func (e InvalidMoveEvent) EventType() EventType { return EventTypeInvalidMove }
func (e InvalidMoveEvent) Timestamp() time.Time { return e.timestamp }

// DealEvent is published after a stock pile has been dealt onto the columns
type DealEvent struct {
	Stock          int
	StockRemaining int
	timestamp      time.Time
}

func (e DealEvent) EventType() EventType { return EventTypeDeal }
func (e DealEvent) Timestamp() time.Time { return e.timestamp }

// UndoEvent is published after the previous state has been restored
type UndoEvent struct {
	MoveCount int
	timestamp time.Time
}

func (e UndoEvent) EventType() EventType { return EventTypeUndo }
func (e UndoEvent) Timestamp() time.Time { return e.timestamp }

// SetCompletedEvent is published for every King-to-Ace run removed from a column
type SetCompletedEvent struct {
	Column        int
	CompletedSets int
	timestamp     time.Time
}

func (e SetCompletedEvent) EventType() EventType { return EventTypeSetCompleted }
func (e SetCompletedEvent) Timestamp() time.Time { return e.timestamp }

// WonEvent is published once, when the eighth set is completed
type WonEvent struct {
	GameID    string
	MoveCount int
	timestamp time.Time
}

func (e WonEvent) EventType() EventType { return EventTypeWon }
func (e WonEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on
// the goroutine that mutated the game.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. SubscriberFunc
// values cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, isFunc := sub.(SubscriberFunc); isFunc {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
