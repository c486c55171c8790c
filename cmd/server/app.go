package main

import (
	"strings"

	"github.com/benbeisheim/chessmoves/internal/config"
	"github.com/benbeisheim/chessmoves/internal/controller"
	"github.com/benbeisheim/chessmoves/internal/middleware"
	"github.com/benbeisheim/chessmoves/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

func newApp(cfg config.Config) *fiber.App {
	// player ids from headers and queries are kept past the request
	app := fiber.New(fiber.Config{Immutable: true})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService, cfg.Game.DefaultMode)
	wsController := controller.NewWebSocketController(gameService)

	// WebSocket routes
	app.Use("/ws", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameService.GameExists), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		Origins:         cfg.Server.AllowOrigins,
	}))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)

	return app
}
