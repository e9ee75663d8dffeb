// Package timer provides the pausable play clock shown in the game header.
package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Stopwatch accumulates play time between Start/Resume and Pause.
// It is safe for concurrent use.
type Stopwatch struct {
	mu      sync.Mutex
	clock   quartz.Clock
	since   time.Time
	elapsed time.Duration
	running bool
}

// New returns a stopped stopwatch. A nil clock uses the real clock.
func New(clock quartz.Clock) *Stopwatch {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Stopwatch{clock: clock}
}

// Start runs the stopwatch from zero
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed = 0
	s.since = s.clock.Now("stopwatch", "start")
	s.running = true
}

// Pause stops accumulating time. Pausing a stopped stopwatch does nothing.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.elapsed += s.clock.Now("stopwatch", "pause").Sub(s.since)
	s.running = false
}

// Resume continues a paused stopwatch
func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.since = s.clock.Now("stopwatch", "resume")
	s.running = true
}

// Toggle pauses a running stopwatch or resumes a paused one, and reports
// whether it is running afterwards.
func (s *Stopwatch) Toggle() bool {
	if s.Running() {
		s.Pause()
		return false
	}
	s.Resume()
	return true
}

// Reset stops the stopwatch and clears the elapsed time
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed = 0
	s.running = false
}

// Running reports whether time is currently accumulating
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the accumulated play time
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return s.elapsed
	}
	return s.elapsed + s.clock.Now("stopwatch", "elapsed").Sub(s.since)
}

// String formats the elapsed time
func (s *Stopwatch) String() string {
	return Format(s.Elapsed())
}

// Format renders d as "m:ss", or "h:mm:ss" from one hour up.
// Fractions of a second are truncated.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, sec := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
