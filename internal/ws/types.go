package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove          MessageType = "move"
	MessageTypePromote       MessageType = "promote"
	MessageTypePossibleMoves MessageType = "possibleMoves"
	MessageTypeGameState     MessageType = "gameState"
	MessageTypeMatchFound    MessageType = "matchFound"
	MessageTypeError         MessageType = "error"
)

var ErrUnknownMessageType = errors.New("unknown message type")

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type PossibleMovesPayload struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: data}, nil
}

func NewErrorMessage(err error) Message {
	data, _ := json.Marshal(ErrorPayload{Error: err.Error()})
	return Message{Type: MessageTypeError, Payload: data}
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s message has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return nil
}
