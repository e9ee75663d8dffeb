package server

import (
	"sync"

	"github.com/lox/spider/internal/game"
)

// Session is the game behind one connection. Calls are serialized by mu and
// the events each call produces are collected for the connection to relay.
type Session struct {
	mu      sync.Mutex
	game    *game.Manager
	pending []game.GameEvent
}

// NewSession wraps manager and subscribes to its events
func NewSession(manager *game.Manager) *Session {
	s := &Session{game: manager}
	manager.Subscribe(s)
	return s
}

// OnEvent records events published while a call holds the lock
func (s *Session) OnEvent(event game.GameEvent) {
	switch event.(type) {
	case game.SetCompletedEvent, game.WonEvent:
		s.pending = append(s.pending, event)
	}
}

// Do runs fn against the game and returns fn's error, a snapshot of the
// resulting state and the events fn produced.
func (s *Session) Do(fn func(m *game.Manager) error) (StateData, []game.GameEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	err := fn(s.game)
	events := s.pending
	s.pending = nil

	return StateDataFromGame(s.game.ID(), s.game.State(), s.game.CanUndo()), events, err
}
