package model

import "fmt"

// Rays never exceed the board edge on an 8x8 board.
const maxSlide = 7

var (
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	kingDirs   = []Position{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}, {X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}}
)

// Moves returns the candidate destinations of the piece, ignoring the
// safety of its own king.
func (p *Piece) Moves(b Board) []Position {
	return p.generate(b, false)
}

// AttackedSquares returns the squares the piece threatens, including
// squares held by its own side. Board implementations use it to answer
// KingIsThreatened; it is not a move list.
func (p *Piece) AttackedSquares(b Board) []Position {
	return p.generate(b, true)
}

func (p *Piece) generate(b Board, probe bool) []Position {
	switch p.Type {
	case Bishop:
		return slidingMoves(p, b, bishopDirs, probe)
	case Rook:
		return slidingMoves(p, b, rookDirs, probe)
	case Queen:
		return append(slidingMoves(p, b, rookDirs, probe), slidingMoves(p, b, bishopDirs, probe)...)
	case King:
		return steppingMoves(p, b, kingDirs, probe)
	case Knight:
		return steppingMoves(p, b, knightDirs, probe)
	case Pawn:
		return pawnMoves(p, b, probe)
	}
	panic(fmt.Sprintf("model: unknown piece type %q", p.Type))
}

func slidingMoves(p *Piece, b Board, dirs []Position, probe bool) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		for i := 1; i <= maxSlide; i++ {
			to := p.Position.add(dir, i)
			if !b.InBounds(to) || (!probe && b.HasFriend(p, to)) {
				break
			}
			moves = append(moves, to)
			if !b.IsEmpty(to) {
				// opponent, or a friend while probing
				break
			}
		}
	}
	return moves
}

// steppingMoves relies on the board treating off-board squares as
// neither empty nor occupied.
func steppingMoves(p *Piece, b Board, dirs []Position, probe bool) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		to := p.Position.add(dir, 1)
		if b.IsEmpty(to) || b.HasOpponent(p, to) || (probe && b.HasFriend(p, to)) {
			moves = append(moves, to)
		}
	}
	return moves
}

// pawnMoves never reports forward squares while probing: a pawn does
// not attack straight ahead. Diagonals are reported while probing
// whatever their occupant.
func pawnMoves(p *Piece, b Board, probe bool) []Position {
	moves := []Position{}
	dir := pawnDirection(b.GameMode(), p.Color)
	ahead := Position{X: p.Position.X, Y: p.Position.Y + dir}
	if !probe && b.IsEmpty(ahead) {
		moves = append(moves, ahead)
		double := Position{X: ahead.X, Y: ahead.Y + dir}
		if !p.HasMoved && b.IsEmpty(double) {
			moves = append(moves, double)
		}
	}
	for _, dx := range []int{-1, 1} {
		to := Position{X: p.Position.X + dx, Y: ahead.Y}
		if !b.InBounds(to) {
			continue
		}
		if b.HasOpponent(p, to) || (probe && (b.IsEmpty(to) || b.HasFriend(p, to))) {
			moves = append(moves, to)
		}
	}
	return moves
}

func pawnDirection(mode GameMode, color Color) int {
	if (mode == GameModeWhiteTop && color == White) || (mode == GameModeWhiteBottom && color == Black) {
		return 1
	}
	return -1
}
