package service

import (
	"fmt"

	"github.com/benbeisheim/chessmoves/internal/model"
	"github.com/gofiber/websocket/v2"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(mode model.GameMode) (string, error) {
	gameID, err := gs.gameManager.CreateGame(mode)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	moves, err := gs.gameManager.LegalMoves(gameID, from)
	if err != nil {
		return nil, fmt.Errorf("legal moves from (%d,%d): %w", from.X, from.Y, err)
	}
	return moves, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return fmt.Errorf("move rejected: %w", err)
	}
	return nil
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) (*model.Client, error) {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, client *model.Client) {
	gs.gameManager.UnregisterConnection(gameID, playerID, client)
}
