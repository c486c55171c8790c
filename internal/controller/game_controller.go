package controller

import (
	"errors"

	"github.com/benbeisheim/chessmoves/internal/middleware"
	"github.com/benbeisheim/chessmoves/internal/model"
	"github.com/benbeisheim/chessmoves/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
	defaultMode model.GameMode
}

func NewGameController(gameService *service.GameService, defaultMode model.GameMode) *GameController {
	return &GameController{gameService: gameService, defaultMode: defaultMode}
}

type createGameRequest struct {
	GameMode *model.GameMode `json:"gameMode"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	mode := gc.defaultMode
	if req.GameMode != nil {
		mode = *req.GameMode
	}

	gameID, err := gc.gameService.CreateGame(mode)
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

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	from := model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(model.LegalMovesReply{From: from, Moves: moves})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	playerID := middleware.PlayerID(c)

	if err := gc.gameService.HandleMove(c.Params("gameId"), playerID, move); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Move accepted",
	})
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
