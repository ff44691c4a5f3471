package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessmatch-backend/internal/chess"
	"github.com/benbeisheim/chessmatch-backend/internal/model"
	"github.com/benbeisheim/chessmatch-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	defaultTimeControl         = 10 * time.Minute
	defaultMatchmakingInterval = time.Second
)

type Options struct {
	TimeControl         time.Duration
	MatchmakingInterval time.Duration
}

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan ws.Message
	pendingMatches   map[string]ws.Message // matches found before the player listened
	timeControl      time.Duration
	mu               sync.RWMutex
}

// NewGameManager starts the matchmaking loop, which runs until ctx is done.
func NewGameManager(ctx context.Context, opts Options) *GameManager {
	gm := newGameManager(opts)
	interval := opts.MatchmakingInterval
	if interval <= 0 {
		interval = defaultMatchmakingInterval
	}
	go gm.processMatchmaking(ctx, interval)
	return gm
}

func newGameManager(opts Options) *GameManager {
	timeControl := opts.TimeControl
	if timeControl <= 0 {
		timeControl = defaultTimeControl
	}
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan ws.Message),
		pendingMatches:   make(map[string]ws.Message),
		timeControl:      timeControl,
	}
}

func (gm *GameManager) processMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("matchmaking stopped")
			return
		case <-ticker.C:
			gm.matchPlayers()
			gm.checkClocks()
		}
	}
}

// matchPlayers seats queued players two at a time, longest waiting first.
func (gm *GameManager) matchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID, gm.timeControl)
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Errorf("adding %s to game %s: %v", player1.ID, gameID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Errorf("adding %s to game %s: %v", player2.ID, gameID, err)
			continue
		}
		gm.games[gameID] = game
		log.Infow("match found", "game", gameID, "white", player1.ID, "black", player2.ID)

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch hands the event to the player's listener, or parks it until one registers.
// Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
	if err != nil {
		log.Errorf("match found event for %s: %v", playerID, err)
		return
	}
	if ch, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		select {
		case ch <- msg:
			close(ch)
			log.Debugf("sent match found event to player %s", playerID)
			return
		default:
			close(ch)
			log.Warnf("match found listener of %s is full", playerID)
		}
	}
	gm.pendingMatches[playerID] = msg
}

func (gm *GameManager) checkClocks() {
	gm.mu.RLock()
	games := make([]*model.Game, 0, len(gm.games))
	for _, game := range gm.games {
		games = append(games, game)
	}
	gm.mu.RUnlock()

	for _, game := range games {
		if game.CheckClock() {
			log.Infof("game %s ended on time", game.ID)
		}
	}
}

// RegisterMatchmakingChannel makes ch the player's match listener. ch needs room for one
// message; the manager closes it after delivering.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan ws.Message) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	log.Debugf("registering matchmaking channel for player %s", playerID)

	if existingCh, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existingCh)
	}

	if msg, ok := gm.pendingMatches[playerID]; ok {
		select {
		case ch <- msg:
			delete(gm.pendingMatches, playerID)
			close(ch)
			return nil
		default:
			return fmt.Errorf("matchmaking channel for %s has no room", playerID)
		}
	}

	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel drops ch if it is still the player's listener and takes the
// player out of the queue. The manager only closes channels it delivered to.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan ws.Message) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
		if gm.queue.Remove(playerID) {
			log.Debugf("player %s left matchmaking", playerID)
		}
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%s: %w", gameID, model.ErrGameExists)
	}

	gm.games[gameID] = model.NewGame(gameID, gm.timeControl)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, model.ErrGameNotFound)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		log.Warnf("adding player to matchmaking queue: %v", err)
		return err
	}
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) PossibleMoves(gameID, playerID, square string) ([]string, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.PossibleMoves(playerID, square)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) (*chess.PieceView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Promote(gameID, playerID, piece string) (chess.PieceView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return chess.PieceView{}, err
	}
	return game.Promote(playerID, piece)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
