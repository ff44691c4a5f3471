package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessmatch-backend/internal/chess"
	"github.com/benbeisheim/chessmatch-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

type Result string

const (
	ResultCheckmate Result = "checkmate"
	ResultTimeout   Result = "timeout"
)

// The Game struct focuses on a single game's state and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	match       *chess.Match
	white       Player
	black       Player
	whiteClock  *Clock
	blackClock  *Clock
	result      Result
	winner      chess.Color
	connections *GameConnections // Connections just for this game
}

type GameState struct {
	ID      string           `json:"id"`
	Match   chess.MatchState `json:"match"`
	Players Players          `json:"players"`
	Result  Result           `json:"result,omitempty"`
	Winner  chess.Color      `json:"winner,omitempty"`
}

func NewGame(id string, timeControl time.Duration) *Game {
	return &Game{
		ID:          id,
		match:       chess.NewMatch(),
		whiteClock:  NewClock(timeControl),
		blackClock:  NewClock(timeControl),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats playerID in the first free seat, White first. A player already seated gets
// their color back.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("adding player %s to game %s", playerID, g.ID)

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	if g.white.ID == "" {
		g.white = Player{ID: playerID, Color: chess.White}
		return chess.White, nil
	}
	if g.black.ID == "" {
		g.black = Player{ID: playerID, Color: chess.Black}
		return chess.Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) colorOf(playerID string) (chess.Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case g.white.ID == playerID:
		return chess.White, true
	case g.black.ID == playerID:
		return chess.Black, true
	}
	return "", false
}

func (g *Game) clock(color chess.Color) *Clock {
	if color == chess.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) state() GameState {
	return GameState{
		ID:    g.ID,
		Match: g.match.State(),
		Players: Players{
			White: ClientPlayer{ID: g.white.ID, Color: chess.White, TimeLeft: g.whiteClock.tenths()},
			Black: ClientPlayer{ID: g.black.ID, Color: chess.Black, TimeLeft: g.blackClock.tenths()},
		},
		Result: g.result,
		Winner: g.winner,
	}
}

// PossibleMoves lists the squares the piece on square can reach.
func (g *Game) PossibleMoves(playerID, square string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.colorOf(playerID); !ok {
		return nil, ErrNotPlayer
	}
	source, err := chess.ParseChessPosition(square)
	if err != nil {
		return nil, err
	}
	matrix, err := g.match.PossibleMoves(source)
	if err != nil {
		return nil, err
	}
	moves := []string{}
	for _, target := range matrix.Squares() {
		moves = append(moves, target.String())
	}
	return moves, nil
}

// MakeMove plays move for playerID and returns the captured piece, if any. Every connection
// receives the new state.
func (g *Game) MakeMove(playerID string, move MoveRequest) (*chess.PieceView, error) {
	g.mu.Lock()
	captured, changed, err := g.makeMove(playerID, move)
	state := g.state()
	g.mu.Unlock()

	if changed {
		g.broadcastState(state)
	}
	return captured, err
}

func (g *Game) makeMove(playerID string, move MoveRequest) (*chess.PieceView, bool, error) {
	color, err := g.checkTurn(playerID)
	if err != nil {
		return nil, false, err
	}
	if g.flagFall() {
		return nil, true, fmt.Errorf("%w: %s ran out of time", ErrGameOver, color.Title())
	}
	from, to, err := move.squares()
	if err != nil {
		return nil, false, err
	}
	var acronym string
	if move.Promotion != "" {
		if acronym, err = promotionAcronym(move.Promotion); err != nil {
			return nil, false, err
		}
	}

	captured, err := g.match.PerformChessMove(from, to)
	if err != nil {
		return nil, false, err
	}
	log.Infow("move played", "game", g.ID, "player", playerID, "from", from.String(), "to", to.String())

	var promoteErr error
	if acronym != "" && g.match.PendingPromotion() != nil {
		_, promoteErr = g.match.ReplacePromotedPiece(acronym)
	}

	g.settleClocks(color)
	if promoteErr != nil {
		return nil, true, promoteErr
	}

	if captured == nil {
		return nil, true, nil
	}
	view := captured.View()
	return &view, true, nil
}

// Promote swaps the piece playerID just promoted to for piece ("B", "N", "R" or "Q").
func (g *Game) Promote(playerID, piece string) (chess.PieceView, error) {
	g.mu.Lock()
	promoted, err := g.promote(playerID, piece)
	state := g.state()
	g.mu.Unlock()

	if err != nil {
		return chess.PieceView{}, err
	}
	g.broadcastState(state)
	return promoted.View(), nil
}

func (g *Game) promote(playerID, piece string) (*chess.Piece, error) {
	if g.result != "" {
		return nil, ErrGameOver
	}
	color, ok := g.colorOf(playerID)
	if !ok {
		return nil, ErrNotPlayer
	}
	pending := g.match.PendingPromotion()
	if pending == nil {
		return nil, chess.ErrNoPendingPromotion
	}
	if pending.Color() != color {
		return nil, ErrNotYourTurn
	}
	acronym, err := promotionAcronym(piece)
	if err != nil {
		return nil, err
	}
	promoted, err := g.match.ReplacePromotedPiece(acronym)
	if err != nil {
		return nil, err
	}
	g.settleClocks(color)
	return promoted, nil
}

// settleClocks stops mover's clock, then ends the game on mate or runs the opponent's clock.
func (g *Game) settleClocks(mover chess.Color) {
	g.clock(mover).Stop()
	if g.match.IsCheckMate() {
		g.finish(ResultCheckmate, mover)
		return
	}
	g.clock(mover.Opponent()).Start()
}

func (g *Game) checkTurn(playerID string) (chess.Color, error) {
	if g.result != "" {
		return "", ErrGameOver
	}
	color, ok := g.colorOf(playerID)
	if !ok {
		return "", ErrNotPlayer
	}
	if color != g.match.CurrentPlayer() {
		return "", ErrNotYourTurn
	}
	return color, nil
}

// flagFall ends the game when the player to move has no time left.
func (g *Game) flagFall() bool {
	current := g.match.CurrentPlayer()
	if !g.clock(current).Expired() {
		return false
	}
	g.finish(ResultTimeout, current.Opponent())
	return true
}

func (g *Game) finish(result Result, winner chess.Color) {
	g.whiteClock.Stop()
	g.blackClock.Stop()
	g.result = result
	g.winner = winner
	log.Infow("game over", "game", g.ID, "result", string(result), "winner", string(winner))
}

// CheckClock ends the game on time when the player to move has flagged. It reports whether
// that happened on this call.
func (g *Game) CheckClock() bool {
	g.mu.Lock()
	if g.result != "" {
		g.mu.Unlock()
		return false
	}
	fell := g.flagFall()
	state := g.state()
	g.mu.Unlock()

	if fell {
		g.broadcastState(state)
	}
	return fell
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result != ""
}

// RegisterConnection attaches conn for playerID. Anyone who is not seated joins as a spectator.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if playerID == "" {
		return fmt.Errorf("%w: anonymous connection to game %s", ErrNotPlayer, g.ID)
	}
	g.mu.Lock()
	state := g.state()
	g.mu.Unlock()

	if !g.connections.add(playerID, conn) {
		rejectDuplicate(conn)
		return ErrConnectionExists
	}
	log.Debugf("registered connection for player %s in game %s", playerID, g.ID)

	g.broadcastState(state)
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	if g.connections.remove(playerID, conn) {
		log.Debugf("unregistered connection for player %s in game %s", playerID, g.ID)
	}
}

func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("game %s: %v", g.ID, err)
		return
	}

	for playerID, conn := range g.connections.snapshot() {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.connections.remove(playerID, conn)
		}
	}
}
