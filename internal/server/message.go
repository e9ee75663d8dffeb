package server

import (
	"encoding/json"
	"time"

	"github.com/lox/spider/internal/deck"
	"github.com/lox/spider/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with ts
func NewMessage(messageType MessageType, data any, ts time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: ts,
	}, nil
}

// Client → Server Messages

type MoveData struct {
	Source int `json:"source"`
	Start  int `json:"start"`
	Target int `json:"target"`
}

// DealData names the stock pile to deal. A nil Stock deals the next
// non-empty stock pile.
type DealData struct {
	Stock *int `json:"stock,omitempty"`
}

// Server → Client Messages

// CardData is a card as the browser sees it. Face-down cards carry no rank.
type CardData struct {
	Rank string `json:"rank,omitempty"`
	Down bool   `json:"down"`
}

type StateData struct {
	GameID         string       `json:"gameId"`
	Piles          [][]CardData `json:"piles"`
	MoveCount      int          `json:"moveCount"`
	CompletedSets  int          `json:"completedSets"`
	CanUndo        bool         `json:"canUndo"`
	Won            bool         `json:"won"`
	StockRemaining int          `json:"stockRemaining"`
}

type InvalidMoveData struct {
	Reason string `json:"reason"`
}

type SetCompletedData struct {
	Column        int `json:"column"`
	CompletedSets int `json:"completedSets"`
}

type WonData struct {
	GameID    string `json:"gameId"`
	MoveCount int    `json:"moveCount"`
}

type HintData struct {
	Available bool `json:"available"`
	Source    int  `json:"source"`
	Start     int  `json:"start"`
	Target    int  `json:"target"`
	Deal      bool `json:"deal"`
	Stock     int  `json:"stock,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Helper functions to convert between game types and message types

func CardDataFromDeck(c deck.Card) CardData {
	if c.Down {
		return CardData{Down: true}
	}
	return CardData{Rank: c.Rank.String()}
}

func StateDataFromGame(id string, s game.State, canUndo bool) StateData {
	piles := make([][]CardData, len(s.Piles))
	for i, p := range s.Piles {
		piles[i] = make([]CardData, len(p))
		for j, c := range p {
			piles[i][j] = CardDataFromDeck(c)
		}
	}

	return StateData{
		GameID:         id,
		Piles:          piles,
		MoveCount:      s.MoveCount,
		CompletedSets:  s.CompletedSets,
		CanUndo:        canUndo,
		Won:            s.IsWon(),
		StockRemaining: s.StockRemaining(),
	}
}

func HintDataFromGame(h game.Hint, ok bool) HintData {
	if !ok {
		return HintData{}
	}
	return HintData{
		Available: true,
		Source:    h.Move.Source,
		Start:     h.Move.Start,
		Target:    h.Move.Target,
		Deal:      h.Deal,
		Stock:     h.Stock,
	}
}
