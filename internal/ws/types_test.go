package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(MessageTypePossibleMoves, PossibleMovesPayload{Square: "g1", Moves: []string{"f3", "h3"}})
	if err != nil {
		t.Fatalf("NewMessage error: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"type":"possibleMoves","payload":{"square":"g1","moves":["f3","h3"]}}`
	if string(data) != want {
		t.Errorf("wire form = %s, want %s", data, want)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	var payload PossibleMovesPayload
	if err := decoded.Decode(&payload); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if diff := cmp.Diff(PossibleMovesPayload{Square: "g1", Moves: []string{"f3", "h3"}}, payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage(errors.New(`bad "move"`))
	if msg.Type != MessageTypeError {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeError)
	}
	var payload ErrorPayload
	if err := msg.Decode(&payload); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if payload.Error != `bad "move"` {
		t.Errorf("Error = %q", payload.Error)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	var payload ErrorPayload
	if err := (Message{Type: MessageTypeMove}).Decode(&payload); err == nil {
		t.Error("Decode of an empty payload succeeded")
	}
}
