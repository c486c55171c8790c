package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benbeisheim/chessmoves/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Fatalf("addr: got %q want %q", cfg.Server.Addr, ":3000")
	}
	if cfg.Game.DefaultMode != model.GameModeWhiteBottom {
		t.Fatalf("mode: got %d want %d", cfg.Game.DefaultMode, model.GameModeWhiteBottom)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":8080"
  allowOrigins: ["https://example.org"]
game:
  defaultMode: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("err -- %s", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr: got %q want %q", cfg.Server.Addr, ":8080")
	}
	if len(cfg.Server.AllowOrigins) != 1 || cfg.Server.AllowOrigins[0] != "https://example.org" {
		t.Fatalf("origins: got %v", cfg.Server.AllowOrigins)
	}
	if cfg.Game.DefaultMode != model.GameModeWhiteTop {
		t.Fatalf("mode: got %d want %d", cfg.Game.DefaultMode, model.GameModeWhiteTop)
	}
	if cfg.WebSocket.ReadBufferSize != 1024 {
		t.Fatalf("read buffer kept default: got %d want 1024", cfg.WebSocket.ReadBufferSize)
	}
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	path := writeConfig(t, "game:\n  defaultMode: 3\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for game mode 3")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadRejectsWildcardOrigin(t *testing.T) {
	path := writeConfig(t, "server:\n  allowOrigins: [\"*\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for wildcard origin")
	}
}
