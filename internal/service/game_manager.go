package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessmoves/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidMode  = errors.New("invalid game mode")
)

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(mode model.GameMode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}
	gameID := uuid.New().String()

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = model.NewGame(gameID, mode)
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) (*model.Client, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, client *model.Client) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		client.Close()
		return
	}
	game.UnregisterConnection(playerID, client)
}
