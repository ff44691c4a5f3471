package controller

import (
	"errors"

	"github.com/benbeisheim/chessmatch-backend/internal/chess"
	"github.com/benbeisheim/chessmatch-backend/internal/middleware"
	"github.com/benbeisheim/chessmatch-backend/internal/model"
	"github.com/benbeisheim/chessmatch-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}
	log.Infow("player joined", "game", gameID, "player", playerID, "color", string(color))

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) PossibleMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := gc.gameService.PossibleMoves(c.Params("gameId"), middleware.PlayerID(c), square)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	var move model.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move request",
		})
	}

	captured, err := gc.gameService.HandleMove(gameID, middleware.PlayerID(c), move)
	if err != nil {
		return errorResponse(c, err)
	}
	return gc.withState(c, gameID, fiber.Map{"captured": captured})
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	var req model.PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion request",
		})
	}

	piece, err := gc.gameService.HandlePromotion(gameID, middleware.PlayerID(c), req.Piece)
	if err != nil {
		return errorResponse(c, err)
	}
	return gc.withState(c, gameID, fiber.Map{"piece": piece})
}

func (gc *GameController) withState(c *fiber.Ctx, gameID string, body fiber.Map) error {
	state, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	body["state"] = state
	return c.JSON(body)
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotPlayer), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameExists), errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, model.ErrConnectionExists):
		return fiber.StatusConflict
	case errors.Is(err, chess.ErrKingMissing):
		return fiber.StatusInternalServerError
	case errors.Is(err, model.ErrInvalidMoveFormat), errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, chess.ErrInvalidPosition),
		errors.Is(err, chess.ErrNoPieceAtSource),
		errors.Is(err, chess.ErrNotYourPiece),
		errors.Is(err, chess.ErrNoPossibleMoves),
		errors.Is(err, chess.ErrIllegalTarget),
		errors.Is(err, chess.ErrSelfCheck),
		errors.Is(err, chess.ErrNoPendingPromotion):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
