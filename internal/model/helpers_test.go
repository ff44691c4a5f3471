package model

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/chessmatch-backend/internal/chess"
	"github.com/benbeisheim/chessmatch-backend/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	broken   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) WriteMessage(int, []byte) error {
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// lastState decodes the most recent gameState message.
func (c *fakeConn) lastState(t *testing.T) GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Type != ws.MessageTypeGameState {
			continue
		}
		var state GameState
		if err := c.messages[i].Decode(&state); err != nil {
			t.Fatalf("decode game state: %v", err)
		}
		return state
	}
	t.Fatal("no game state received")
	return GameState{}
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time {
	return f.t
}

func (f *fakeTime) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

// newSeatedGame returns a game with "white" and "black" seated and both clocks on fake time.
func newSeatedGame(t *testing.T, timeControl time.Duration) (*Game, *fakeTime) {
	t.Helper()
	g := NewGame("game-1", timeControl)
	clock := &fakeTime{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	g.whiteClock.now = clock.now
	g.blackClock.now = clock.now
	for _, id := range []string{"white", "black"} {
		if _, err := g.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%s) error: %v", id, err)
		}
	}
	return g, clock
}

// playMoves alternates the two seated players through "e2e4" style moves.
func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		player := "white"
		if g.match.CurrentPlayer() == chess.Black {
			player = "black"
		}
		if _, err := g.MakeMove(player, MoveRequest{From: mv[:2], To: mv[2:4]}); err != nil {
			t.Fatalf("MakeMove(%s, %s) error: %v", player, mv, err)
		}
	}
}
