package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	PlayerIDHeader = "X-Player-ID"
	PlayerIDKey    = "playerID"

	maxPlayerIDLength = 64
)

// EnsurePlayerID stores the caller's player id in Locals, taken from the
// X-Player-ID header or the playerId query parameter. The id outlives the
// request as a game's player, so it is copied out of the request buffer.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		switch {
		case playerID == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		case len(playerID) > maxPlayerIDLength:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Player ID is too long",
			})
		}

		c.Locals(PlayerIDKey, utils.CopyString(playerID))
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "".
func PlayerID(c *fiber.Ctx) string {
	playerID, _ := c.Locals(PlayerIDKey).(string)
	return playerID
}
