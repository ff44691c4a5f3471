package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chessmatch-backend/internal/middleware"
	"github.com/benbeisheim/chessmatch-backend/internal/model"
	"github.com/benbeisheim/chessmatch-backend/internal/service"
	"github.com/benbeisheim/chessmatch-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one player's (or spectator's) socket for a game until it closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	conn := model.NewSafeConn(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("failed to register connection of %s to game %s: %v", playerID, gameID, err)
		if !errors.Is(err, model.ErrConnectionExists) {
			wsc.sendError(conn, err)
			conn.Close()
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error from %s in game %s: %v", playerID, gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.sendError(conn, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(conn, gameID, playerID, msg); err != nil {
			log.Debugf("handle %s from %s: %v", msg.Type, playerID, err)
			wsc.sendError(conn, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(conn model.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := msg.Decode(&move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypePromote:
		var req model.PromoteRequest
		if err := msg.Decode(&req); err != nil {
			return err
		}
		_, err := wsc.gameService.HandlePromotion(gameID, playerID, req.Piece)
		return err

	case ws.MessageTypePossibleMoves:
		var req ws.PossibleMovesPayload
		if err := msg.Decode(&req); err != nil {
			return err
		}
		moves, err := wsc.gameService.PossibleMoves(gameID, playerID, req.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypePossibleMoves, ws.PossibleMovesPayload{Square: req.Square, Moves: moves})
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	default:
		return fmt.Errorf("%w: %s", ws.ErrUnknownMessageType, msg.Type)
	}
}

// HandleMatchmaking waits for the player's match and pushes it as a matchFound message.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	ch := make(chan ws.Message, 1)

	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		log.Warnf("failed to register matchmaking channel for %s: %v", playerID, err)
		wsc.sendError(c, err)
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case msg, ok := <-ch:
		if !ok {
			return
		}
		if err := c.WriteJSON(msg); err != nil {
			log.Warnf("failed to send match to %s: %v", playerID, err)
		}
	case <-closed:
		log.Debugf("player %s stopped waiting for a match", playerID)
	}
}

func (wsc *WebSocketController) sendError(conn model.Conn, err error) {
	if writeErr := conn.WriteJSON(ws.NewErrorMessage(err)); writeErr != nil {
		log.Debugf("failed to send error: %v", writeErr)
	}
}
