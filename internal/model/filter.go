package model

// FilterMoves keeps the moves of p that do not leave its own king
// threatened, in their original order. Each move is tried on b and
// rolled back, so b is unchanged on return.
func FilterMoves(p *Piece, moves []Position, b Board) []Position {
	legal := make([]Position, 0, len(moves))
	for _, to := range moves {
		if !exposesKing(p, to, b) {
			legal = append(legal, to)
		}
	}
	return legal
}

func LegalMoves(p *Piece, b Board) []Position {
	return FilterMoves(p, p.Moves(b), b)
}

func exposesKing(p *Piece, to Position, b Board) bool {
	b.MakeMove(p, to, true)
	defer b.UnmakeMove(p)
	return b.KingIsThreatened(p.Color)
}
