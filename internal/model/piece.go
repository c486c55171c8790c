package model

import (
	"errors"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) add(d Position, n int) Position {
	return Position{X: p.X + d.X*n, Y: p.Y + d.Y*n}
}

// ErrHistoryUnderflow is the panic value used when a piece is restored
// without a matching RecordAndMove.
var ErrHistoryUnderflow = errors.New("piece history underflow")

// Piece is a chess piece on a board. Type never changes after NewPiece.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`

	// undo stacks, pushed together by RecordAndMove
	positions []Position
	moved     []bool
}

func NewPiece(t PieceType, color Color, pos Position) *Piece {
	return &Piece{Type: t, Color: color, Position: pos}
}

// RecordAndMove saves the current position and moved flag, then moves
// the piece to `to` and marks it as moved.
func (p *Piece) RecordAndMove(to Position) {
	p.positions = append(p.positions, p.Position)
	p.moved = append(p.moved, p.HasMoved)
	p.MoveTo(to)
}

// MoveTo relocates the piece without recording history.
func (p *Piece) MoveTo(to Position) {
	p.Position = to
	p.HasMoved = true
}

func (p *Piece) RestorePosition() {
	n := len(p.positions)
	if n == 0 {
		panic(fmt.Errorf("%w: %s %s position", ErrHistoryUnderflow, p.Color, p.Type))
	}
	p.Position = p.positions[n-1]
	p.positions = p.positions[:n-1]
}

func (p *Piece) RestoreMovedFlag() {
	n := len(p.moved)
	if n == 0 {
		panic(fmt.Errorf("%w: %s %s moved flag", ErrHistoryUnderflow, p.Color, p.Type))
	}
	p.HasMoved = p.moved[n-1]
	p.moved = p.moved[:n-1]
}

// HistoryDepth reports how many simulated moves are pending rollback.
func (p *Piece) HistoryDepth() int {
	return len(p.positions)
}

func (p *Piece) clone() *Piece {
	return &Piece{Type: p.Type, Color: p.Color, Position: p.Position, HasMoved: p.HasMoved}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@(%d,%d)", p.Color, p.Type, p.Position.X, p.Position.Y)
}
