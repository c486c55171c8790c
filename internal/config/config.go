package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/benbeisheim/chessmoves/internal/model"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"readBufferSize"`
	WriteBufferSize int `yaml:"writeBufferSize"`
}

type GameConfig struct {
	DefaultMode model.GameMode `yaml:"defaultMode"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Game      GameConfig      `yaml:"game"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":3000",
			AllowOrigins: []string{"http://localhost:5173"},
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Game: GameConfig{
			DefaultMode: model.GameModeWhiteBottom,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is empty")
	}
	for _, origin := range c.Server.AllowOrigins {
		// cors refuses a wildcard together with credentials
		if origin == "*" {
			return errors.New("config: server.allowOrigins may not contain \"*\"")
		}
	}
	if !c.Game.DefaultMode.Valid() {
		return fmt.Errorf("config: game.defaultMode %d is not 0 or 1", c.Game.DefaultMode)
	}
	if c.WebSocket.ReadBufferSize <= 0 || c.WebSocket.WriteBufferSize <= 0 {
		return errors.New("config: websocket buffer sizes must be positive")
	}
	return nil
}
