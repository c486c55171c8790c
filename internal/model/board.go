package model

import "errors"

const boardSize = 8

// GameMode selects which side starts on row 0.
type GameMode int

const (
	GameModeWhiteTop    GameMode = 0
	GameModeWhiteBottom GameMode = 1
)

func (m GameMode) Valid() bool {
	return m == GameModeWhiteTop || m == GameModeWhiteBottom
}

// Board is what move generation needs from a board. IsEmpty, HasFriend
// and HasOpponent must all be false for squares outside the board.
type Board interface {
	InBounds(pos Position) bool
	IsEmpty(pos Position) bool
	HasFriend(p *Piece, pos Position) bool
	HasOpponent(p *Piece, pos Position) bool
	// MakeMove relocates p. With keepHistory the move can be reverted by
	// UnmakeMove, including any capture.
	MakeMove(p *Piece, to Position, keepHistory bool)
	UnmakeMove(p *Piece)
	KingIsThreatened(color Color) bool
	GameMode() GameMode
}

// ErrNothingToUnmake is the panic value used when UnmakeMove has no
// recorded move for the piece.
var ErrNothingToUnmake = errors.New("no recorded move to unmake")

type undoEntry struct {
	piece    *Piece
	captured *Piece
}

// BoardState is an 8x8 mailbox indexed as Squares[y][x].
type BoardState struct {
	Squares [][]*Piece `json:"board"`
	Mode    GameMode   `json:"gameMode"`

	undo []undoEntry
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewEmptyBoard(mode GameMode) *BoardState {
	board := &BoardState{Mode: mode}
	for i := 0; i < boardSize; i++ {
		board.Squares = append(board.Squares, make([]*Piece, boardSize))
	}
	return board
}

// NewBoard sets up the initial position, oriented by mode.
func NewBoard(mode GameMode) *BoardState {
	board := NewEmptyBoard(mode)
	top, bottom := White, Black
	if mode == GameModeWhiteBottom {
		top, bottom = Black, White
	}
	for x, t := range backRank {
		board.Place(NewPiece(t, top, Position{X: x, Y: 0}))
		board.Place(NewPiece(Pawn, top, Position{X: x, Y: 1}))
		board.Place(NewPiece(Pawn, bottom, Position{X: x, Y: boardSize - 2}))
		board.Place(NewPiece(t, bottom, Position{X: x, Y: boardSize - 1}))
	}
	return board
}

// Place puts p on its own position, replacing whatever was there.
func (b *BoardState) Place(p *Piece) {
	b.Squares[p.Position.Y][p.Position.X] = p
}

func (b *BoardState) PieceAt(pos Position) *Piece {
	if !b.InBounds(pos) {
		return nil
	}
	return b.Squares[pos.Y][pos.X]
}

func (b *BoardState) Pieces(color Color) []*Piece {
	pieces := []*Piece{}
	for _, row := range b.Squares {
		for _, p := range row {
			if p != nil && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (b *BoardState) King(color Color) *Piece {
	for _, p := range b.Pieces(color) {
		if p.Type == King {
			return p
		}
	}
	return nil
}

func (b *BoardState) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < boardSize && pos.Y >= 0 && pos.Y < boardSize
}

func (b *BoardState) IsEmpty(pos Position) bool {
	return b.InBounds(pos) && b.Squares[pos.Y][pos.X] == nil
}

func (b *BoardState) HasFriend(p *Piece, pos Position) bool {
	other := b.PieceAt(pos)
	return other != nil && other.Color == p.Color
}

func (b *BoardState) HasOpponent(p *Piece, pos Position) bool {
	other := b.PieceAt(pos)
	return other != nil && other.Color != p.Color
}

func (b *BoardState) GameMode() GameMode {
	return b.Mode
}

func (b *BoardState) MakeMove(p *Piece, to Position, keepHistory bool) {
	captured := b.Squares[to.Y][to.X]
	b.Squares[p.Position.Y][p.Position.X] = nil
	if keepHistory {
		p.RecordAndMove(to)
		b.undo = append(b.undo, undoEntry{piece: p, captured: captured})
	} else {
		p.MoveTo(to)
	}
	b.Squares[to.Y][to.X] = p
}

func (b *BoardState) UnmakeMove(p *Piece) {
	n := len(b.undo)
	if n == 0 || b.undo[n-1].piece != p {
		panic(ErrNothingToUnmake)
	}
	entry := b.undo[n-1]
	b.undo = b.undo[:n-1]

	to := p.Position
	p.RestorePosition()
	p.RestoreMovedFlag()
	b.Squares[to.Y][to.X] = entry.captured
	b.Squares[p.Position.Y][p.Position.X] = p
}

// KingIsThreatened reports whether any opposing piece attacks the king
// of color. A side without a king is never threatened.
func (b *BoardState) KingIsThreatened(color Color) bool {
	king := b.King(color)
	if king == nil {
		return false
	}
	for _, attacker := range b.Pieces(color.Opponent()) {
		for _, sq := range attacker.AttackedSquares(b) {
			if sq == king.Position {
				return true
			}
		}
	}
	return false
}

// Clone deep-copies the pieces. Pending undo entries are not copied.
func (b *BoardState) Clone() *BoardState {
	clone := NewEmptyBoard(b.Mode)
	for y, row := range b.Squares {
		for x, p := range row {
			if p != nil {
				clone.Squares[y][x] = p.clone()
			}
		}
	}
	return clone
}
