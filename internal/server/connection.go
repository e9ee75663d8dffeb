package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/spider/internal/game"
)

// Connection represents a WebSocket connection to a browser playing one game
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	session   *Session
	logger    *log.Logger
	clock     quartz.Clock
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, session *Session, logger *log.Logger, clock quartz.Clock) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		session: session,
		logger:  logger.WithPrefix("conn"),
		clock:   clock,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start sends the initial state and begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	c.reply("", func(*game.Manager) error { return nil })
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := c.clock.NewTicker(pingPeriod, "conn", "ping")
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "request", msg.RequestID)

	switch msg.Type {
	case MessageTypeNewGame:
		c.reply(msg.RequestID, func(m *game.Manager) error {
			m.NewGame()
			return nil
		})

	case MessageTypeMove:
		var data MoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse move data")
			return
		}
		c.reply(msg.RequestID, func(m *game.Manager) error {
			_, err := m.AttemptMove(data.Source, data.Start, data.Target)
			return err
		})

	case MessageTypeDeal:
		var data DealData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError(msg.RequestID, "invalid_message", "Failed to parse deal data")
				return
			}
		}
		c.reply(msg.RequestID, func(m *game.Manager) error {
			stock := m.NextStockPile()
			if data.Stock != nil {
				stock = *data.Stock
			} else if stock < 0 {
				return game.ErrEmptyStock
			}
			return m.DealFromStock(stock)
		})

	case MessageTypeUndo:
		c.reply(msg.RequestID, func(m *game.Manager) error {
			return m.Undo()
		})

	case MessageTypeHint:
		var hint HintData
		_, _, _ = c.session.Do(func(m *game.Manager) error {
			hint = HintDataFromGame(m.Hint())
			return nil
		})
		c.sendMessage(msg.RequestID, MessageTypeHintResult, hint)

	case MessageTypeState:
		c.reply(msg.RequestID, func(*game.Manager) error { return nil })

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// reply runs fn on the session. A rejected operation is answered with
// invalid_move and leaves the game as it was. Otherwise the new state is sent,
// followed by any set_completed and won notifications.
func (c *Connection) reply(requestID string, fn func(m *game.Manager) error) {
	state, events, err := c.session.Do(fn)
	if err != nil {
		if isRuleError(err) {
			c.sendMessage(requestID, MessageTypeInvalidMove, InvalidMoveData{Reason: err.Error()})
			return
		}
		c.logger.Error("Operation failed", "game", state.GameID, "error", err)
		c.sendError(requestID, "internal_error", err.Error())
		return
	}

	c.sendMessage(requestID, MessageTypeGameState, state)
	for _, event := range events {
		switch e := event.(type) {
		case game.SetCompletedEvent:
			c.sendMessage(requestID, MessageTypeSetCompleted, SetCompletedData{Column: e.Column, CompletedSets: e.CompletedSets})
		case game.WonEvent:
			c.logger.Info("Game won", "game", e.GameID, "moves", e.MoveCount)
			c.sendMessage(requestID, MessageTypeWon, WonData{GameID: e.GameID, MoveCount: e.MoveCount})
		}
	}
}

func isRuleError(err error) bool {
	for _, target := range []error{
		game.ErrInvalidMove,
		game.ErrPileIndex,
		game.ErrEmptyHistory,
		game.ErrEmptyStock,
		game.ErrNotStockPile,
		game.ErrEmptyColumn,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (c *Connection) sendMessage(requestID string, messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data, c.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message", "type", messageType, "error", err)
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	c.sendMessage(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}
