package model

import (
	"encoding/json"
	"sort"
	"testing"
)

func place(b *BoardState, t PieceType, color Color, x, y int) *Piece {
	p := NewPiece(t, color, Position{X: x, Y: y})
	b.Place(p)
	return p
}

func sortedPositions(moves []Position) []Position {
	out := append([]Position(nil), moves...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func assertSameSquares(t *testing.T, got, want []Position) {
	t.Helper()
	g, w := sortedPositions(got), sortedPositions(want)
	if len(g) != len(w) {
		t.Fatalf("got %d squares %v want %d squares %v", len(g), g, len(w), w)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("got %v want %v", g, w)
		}
	}
}

func containsSquare(moves []Position, pos Position) bool {
	for _, m := range moves {
		if m == pos {
			return true
		}
	}
	return false
}

// boardFingerprint captures occupancy, positions and moved flags.
func boardFingerprint(t *testing.T, b *BoardState) string {
	t.Helper()
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal board: %v", err)
	}
	return string(raw)
}
