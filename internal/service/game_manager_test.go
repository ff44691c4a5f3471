package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chessmatch-backend/internal/chess"
	"github.com/benbeisheim/chessmatch-backend/internal/model"
	"github.com/benbeisheim/chessmatch-backend/internal/ws"
)

func receiveMatch(t *testing.T, ch chan ws.Message) model.MatchFoundEvent {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed without a match")
		}
		if msg.Type != ws.MessageTypeMatchFound {
			t.Fatalf("message type = %q, want %q", msg.Type, ws.MessageTypeMatchFound)
		}
		var event model.MatchFoundEvent
		if err := msg.Decode(&event); err != nil {
			t.Fatalf("decode match found: %v", err)
		}
		return event
	default:
		t.Fatal("no match found message")
	}
	return model.MatchFoundEvent{}
}

func TestMatchPlayers(t *testing.T) {
	gm := newGameManager(Options{TimeControl: time.Minute})
	alice, bob := make(chan ws.Message, 1), make(chan ws.Message, 1)
	for id, ch := range map[string]chan ws.Message{"alice": alice, "bob": bob} {
		if err := gm.RegisterMatchmakingChannel(id, ch); err != nil {
			t.Fatalf("RegisterMatchmakingChannel(%s) error: %v", id, err)
		}
	}
	for _, id := range []string{"alice", "bob"} {
		if err := gm.JoinMatchmaking(id); err != nil {
			t.Fatalf("JoinMatchmaking(%s) error: %v", id, err)
		}
	}

	gm.matchPlayers()

	aliceEvent := receiveMatch(t, alice)
	bobEvent := receiveMatch(t, bob)
	if aliceEvent.GameID == "" || aliceEvent.GameID != bobEvent.GameID {
		t.Fatalf("game ids %q and %q, want one shared id", aliceEvent.GameID, bobEvent.GameID)
	}
	if aliceEvent.Color != chess.White || bobEvent.Color != chess.Black {
		t.Errorf("colors = %s, %s, want white, black", aliceEvent.Color, bobEvent.Color)
	}
	if _, ok := <-alice; ok {
		t.Error("alice's channel left open after delivery")
	}

	state, err := gm.GetGameState(aliceEvent.GameID)
	if err != nil {
		t.Fatalf("GetGameState error: %v", err)
	}
	if state.Players.White.ID != "alice" || state.Players.Black.ID != "bob" {
		t.Errorf("players = %+v", state.Players)
	}
	if state.Players.White.TimeLeft != 600 {
		t.Errorf("White TimeLeft = %d, want the configured minute", state.Players.White.TimeLeft)
	}
}

func TestMatchFoundBeforeListening(t *testing.T) {
	gm := newGameManager(Options{})
	for _, id := range []string{"alice", "bob"} {
		if err := gm.JoinMatchmaking(id); err != nil {
			t.Fatalf("JoinMatchmaking(%s) error: %v", id, err)
		}
	}
	gm.matchPlayers()

	ch := make(chan ws.Message, 1)
	if err := gm.RegisterMatchmakingChannel("bob", ch); err != nil {
		t.Fatalf("RegisterMatchmakingChannel error: %v", err)
	}
	if event := receiveMatch(t, ch); event.Color != chess.Black {
		t.Errorf("bob's color = %s, want black", event.Color)
	}
	if len(gm.pendingMatches) != 1 {
		t.Errorf("pending matches = %d, want only alice's", len(gm.pendingMatches))
	}
}

func TestJoinMatchmakingTwice(t *testing.T) {
	gm := newGameManager(Options{})
	if err := gm.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("JoinMatchmaking error: %v", err)
	}
	if err := gm.JoinMatchmaking("alice"); !errors.Is(err, model.ErrAlreadyQueued) {
		t.Errorf("second JoinMatchmaking error = %v, want %v", err, model.ErrAlreadyQueued)
	}
}

func TestUnregisterMatchmakingLeavesQueue(t *testing.T) {
	gm := newGameManager(Options{})
	ch := make(chan ws.Message, 1)
	if err := gm.RegisterMatchmakingChannel("alice", ch); err != nil {
		t.Fatalf("RegisterMatchmakingChannel error: %v", err)
	}
	if err := gm.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("JoinMatchmaking error: %v", err)
	}

	gm.UnregisterMatchmakingChannel("alice", make(chan ws.Message, 1))
	if gm.queue.Size() != 1 {
		t.Fatal("a stale channel took alice out of the queue")
	}
	gm.UnregisterMatchmakingChannel("alice", ch)
	if gm.queue.Size() != 0 {
		t.Errorf("queue size = %d after leaving, want 0", gm.queue.Size())
	}
}

func TestReplacedMatchmakingChannelIsClosed(t *testing.T) {
	gm := newGameManager(Options{})
	first := make(chan ws.Message, 1)
	if err := gm.RegisterMatchmakingChannel("alice", first); err != nil {
		t.Fatalf("RegisterMatchmakingChannel error: %v", err)
	}
	if err := gm.RegisterMatchmakingChannel("alice", make(chan ws.Message, 1)); err != nil {
		t.Fatalf("second RegisterMatchmakingChannel error: %v", err)
	}
	if _, ok := <-first; ok {
		t.Error("replaced channel still open")
	}
}

func TestGameLookups(t *testing.T) {
	gm := newGameManager(Options{})
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	if err := gm.CreateGame("g1"); !errors.Is(err, model.ErrGameExists) {
		t.Errorf("duplicate CreateGame error = %v, want %v", err, model.ErrGameExists)
	}

	unknown := []struct {
		name string
		call func() error
	}{
		{"GetGame", func() error { _, err := gm.GetGame("nope"); return err }},
		{"AddPlayerToGame", func() error { _, err := gm.AddPlayerToGame("nope", "alice"); return err }},
		{"GetGameState", func() error { _, err := gm.GetGameState("nope"); return err }},
		{"PossibleMoves", func() error { _, err := gm.PossibleMoves("nope", "alice", "e2"); return err }},
		{"MakeMove", func() error { _, err := gm.MakeMove("nope", "alice", model.MoveRequest{From: "e2", To: "e4"}); return err }},
		{"Promote", func() error { _, err := gm.Promote("nope", "alice", "Q"); return err }},
		{"RegisterConnection", func() error { return gm.RegisterConnection("nope", "alice", nil) }},
	}
	for _, tt := range unknown {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, model.ErrGameNotFound) {
				t.Errorf("%s on an unknown game error = %v, want %v", tt.name, err, model.ErrGameNotFound)
			}
		})
	}
}

func TestGameServiceFlow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	gs := NewGameService(NewGameManager(ctx, Options{TimeControl: time.Minute, MatchmakingInterval: time.Hour}))

	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	if got, err := gs.JoinGame(gameID, "alice"); err != nil || got != chess.White {
		t.Fatalf("JoinGame(alice) = %s, %v, want white", got, err)
	}
	if got, err := gs.JoinGame(gameID, "bob"); err != nil || got != chess.Black {
		t.Fatalf("JoinGame(bob) = %s, %v, want black", got, err)
	}

	if _, err := gs.HandleMove(gameID, "alice", model.MoveRequest{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("HandleMove error: %v", err)
	}
	moves, err := gs.PossibleMoves(gameID, "bob", "e7")
	if err != nil {
		t.Fatalf("PossibleMoves error: %v", err)
	}
	if len(moves) != 2 {
		t.Errorf("PossibleMoves(e7) = %v, want two squares", moves)
	}
	if _, err := gs.HandlePromotion(gameID, "bob", "Q"); !errors.Is(err, chess.ErrNoPendingPromotion) {
		t.Errorf("HandlePromotion error = %v, want %v", err, chess.ErrNoPendingPromotion)
	}

	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState error: %v", err)
	}
	if state.Match.CurrentPlayer != chess.Black {
		t.Errorf("CurrentPlayer = %s, want black", state.Match.CurrentPlayer)
	}
}

func TestCheckClocks(t *testing.T) {
	gm := newGameManager(Options{TimeControl: time.Millisecond})
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	for _, id := range []string{"alice", "bob"} {
		if _, err := gm.AddPlayerToGame("g1", id); err != nil {
			t.Fatalf("AddPlayerToGame(%s) error: %v", id, err)
		}
	}
	if _, err := gm.MakeMove("g1", "alice", model.MoveRequest{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("MakeMove error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	gm.checkClocks()

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState error: %v", err)
	}
	if state.Result != model.ResultTimeout || state.Winner != chess.White {
		t.Errorf("Result, Winner = %q, %q, want timeout, white", state.Result, state.Winner)
	}
}
