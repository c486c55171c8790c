package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/chessmoves/internal/middleware"
	"github.com/benbeisheim/chessmoves/internal/model"
	"github.com/benbeisheim/chessmoves/internal/service"
	"github.com/benbeisheim/chessmoves/internal/ws"
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

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	client, err := wsc.gameService.RegisterConnection(gameID, playerID, c)
	if err != nil {
		log.Printf("Failed to register connection: %v", err)
		// nothing else writes to c until it is registered
		reason := "Registration failed"
		if errors.Is(err, model.ErrDuplicateConnection) {
			reason = "Connection already exists"
		}
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, client)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}
		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Printf("handle error: %v", err)
			reply = errorMessage(err)
		}
		if reply == nil {
			continue
		}
		if err := client.Send(reply); err != nil {
			log.Printf("write error: %v", err)
			return
		}
	}
}

// handleMessage returns the direct reply to msg, if any. State changes
// reach every connection through the game's broadcast instead.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		return nil, wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeLegalMoves:
		var from model.Position
		if err := json.Unmarshal(msg.Payload, &from); err != nil {
			return nil, err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, from)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(model.LegalMovesReply{From: from, Moves: moves})
		if err != nil {
			return nil, err
		}
		return &ws.Message{Type: ws.MessageTypeLegalMoves, Payload: payload}, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func errorMessage(err error) *ws.Message {
	payload, _ := json.Marshal(err.Error())
	return &ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}
}
