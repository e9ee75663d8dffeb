// Package server serves spider games to browsers over WebSocket. Every
// connection plays its own game.
package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/spider/internal/game"
	"github.com/lox/spider/internal/randutil"
)

// Server represents the WebSocket server
type Server struct {
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	clock       quartz.Clock
	gameOpts    []game.Option
	mu          sync.RWMutex

	rngMu sync.Mutex
	rng   *rand.Rand

	httpMu     sync.Mutex
	httpServer *http.Server
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for message timestamps and pings
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithGameOptions applies opts to every game the server creates
func WithGameOptions(opts ...game.Option) Option {
	return func(s *Server) {
		s.gameOpts = append(s.gameOpts, opts...)
	}
}

// NewServer creates a new WebSocket server. Each connection's game is seeded
// from rng, so a seeded rng makes the sequence of deals reproducible.
func NewServer(logger *log.Logger, rng *rand.Rand, opts ...Option) *Server {
	if rng == nil {
		panic("rng is required")
	}

	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
		rng:         rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on addr and serves until Shutdown is called
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.httpMu.Lock()
	s.httpServer = srv
	s.httpMu.Unlock()

	s.logger.Info("Starting WebSocket server", "addr", addr)
	return srv.ListenAndServe()
}

// Shutdown stops accepting connections and closes the open ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.httpMu.Lock()
	srv := s.httpServer
	s.httpMu.Unlock()
	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// newSession deals a fresh game for a connection
func (s *Server) newSession() *Session {
	s.rngMu.Lock()
	seed := s.rng.Int64()
	s.rngMu.Unlock()

	opts := append([]game.Option{
		game.WithLogger(s.logger),
		game.WithClock(s.clock),
	}, s.gameOpts...)
	return NewSession(game.NewManager(randutil.New(seed), opts...))
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.newSession(), s.logger, s.clock)

	s.mu.Lock()
	s.connections[client] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "remote", r.RemoteAddr, "total", total)

	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "remote", r.RemoteAddr, "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
