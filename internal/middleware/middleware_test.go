package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newPlayerApp(seen *[]string) *fiber.App {
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		*seen = append(*seen, PlayerID(c))
		return c.SendString(PlayerID(c))
	})
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		status int
		want   string
	}{
		{"header", "/whoami", "alice", fiber.StatusOK, "alice"},
		{"query", "/whoami?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins over query", "/whoami?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"missing", "/whoami", "", fiber.StatusUnauthorized, ""},
		{"too long", "/whoami", strings.Repeat("x", maxPlayerIDLength+1), fiber.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []string
			app := newPlayerApp(&seen)
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(PlayerIDHeader, tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("err -- %s", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status: got %d want %d", resp.StatusCode, tt.status)
			}
			if tt.status != fiber.StatusOK {
				return
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.want {
				t.Fatalf("player id: got %q want %q", body, tt.want)
			}
		})
	}
}

func TestPlayerIDOutlivesRequest(t *testing.T) {
	var seen []string
	app := newPlayerApp(&seen)

	for _, id := range []string{"alice", "mallory"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(PlayerIDHeader, id)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("err -- %s", err)
		}
		resp.Body.Close()
	}

	if len(seen) != 2 || seen[0] != "alice" || seen[1] != "mallory" {
		t.Fatalf("stored ids changed after later requests: %q", seen)
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	exists := func(gameID string) bool { return gameID == "g1" }

	tests := []struct {
		name     string
		path     string
		upgrade  bool
		playerID string
		status   int
	}{
		{"plain request", "/ws/game/g1", false, "alice", fiber.StatusUpgradeRequired},
		{"unknown game", "/ws/game/g2", true, "alice", fiber.StatusNotFound},
		{"missing player", "/ws/game/g1", true, "", fiber.StatusUnauthorized},
		{"accepted", "/ws/game/g1", true, "alice", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/ws/game/:gameId", func(c *fiber.Ctx) error {
				if tt.playerID != "" {
					c.Locals(PlayerIDKey, tt.playerID)
				}
				return c.Next()
			}, WebSocketUpgrade(exists), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("err -- %s", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status: got %d want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
