package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/benbeisheim/chessmoves/internal/config"
	"github.com/benbeisheim/chessmoves/internal/model"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configPath, addr string

	root := &cobra.Command{
		Use:   "chessmoves",
		Short: "Serve chess games with legal move generation over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			app := newApp(cfg)
			log.Printf("listening on %s", cfg.Server.Addr)
			return app.Listen(cfg.Server.Addr)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	root.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	root.AddCommand(newMovesCommand())
	return root
}

func newMovesCommand() *cobra.Command {
	var mode int
	var color string

	cmd := &cobra.Command{
		Use:   "moves",
		Short: "Print the legal moves of one side in the starting position",
		RunE: func(cmd *cobra.Command, args []string) error {
			gameMode := model.GameMode(mode)
			if !gameMode.Valid() {
				return fmt.Errorf("mode must be 0 or 1, got %d", mode)
			}
			side := model.Color(color)
			if side != model.White && side != model.Black {
				return fmt.Errorf("color must be white or black, got %q", color)
			}
			return printStartingMoves(cmd.OutOrStdout(), gameMode, side)
		},
	}
	cmd.Flags().IntVar(&mode, "mode", int(model.GameModeWhiteBottom), "game mode: 0 white on row 0, 1 white on row 7")
	cmd.Flags().StringVar(&color, "color", string(model.White), "side to list: white or black")
	return cmd
}

func printStartingMoves(w io.Writer, mode model.GameMode, color model.Color) error {
	board := model.NewBoard(mode)
	replies := []model.LegalMovesReply{}
	for _, piece := range board.Pieces(color) {
		moves := model.LegalMoves(piece, board)
		if len(moves) == 0 {
			continue
		}
		replies = append(replies, model.LegalMovesReply{From: piece.Position, Moves: moves})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(replies)
}
