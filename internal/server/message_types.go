package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeNewGame MessageType = "new_game"
	MessageTypeMove    MessageType = "move"
	MessageTypeDeal    MessageType = "deal"
	MessageTypeUndo    MessageType = "undo"
	MessageTypeHint    MessageType = "hint"
	MessageTypeState   MessageType = "state"

	// Server to client messages
	MessageTypeGameState    MessageType = "state"
	MessageTypeInvalidMove  MessageType = "invalid_move"
	MessageTypeSetCompleted MessageType = "set_completed"
	MessageTypeWon          MessageType = "won"
	MessageTypeHintResult   MessageType = "hint"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
