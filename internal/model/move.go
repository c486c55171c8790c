package model

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece         PieceType `json:"piece"`
	Color         Color     `json:"color"`
	From          Position  `json:"from"`
	To            Position  `json:"to"`
	CapturedPiece *Piece    `json:"capturedPiece"`
}

// Move pairs white's ply with black's reply; BlackPly is nil until black
// has moved.
type Move struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type LegalMovesReply struct {
	From  Position   `json:"from"`
	Moves []Position `json:"moves"`
}
