package testhelpers

import (
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/zobrist"
)

// TestSeed keeps zobrist salts identical across test runs.
const TestSeed = 0x123456789abcdef

func SeededZobrist(dim int) *zobrist.Zobrist {
	z := &zobrist.Zobrist{}
	z.InitializeSeeded(dim, TestSeed)
	return z
}

// BoardFromText builds a dim x dim board from a '.', 'X', 'O' grid and panics
// on a malformed grid.
func BoardFromText(dim int, text string) *board.Board {
	b := board.NewBoard(dim, SeededZobrist(dim))
	if err := b.SetFromPlaintext(text); err != nil {
		panic(err)
	}
	return b
}

// BoardWithStones builds a dim x dim board with the listed black and white
// stones, placed in order.
func BoardWithStones(dim int, black, white []board.Point) *board.Board {
	b := board.NewBoard(dim, SeededZobrist(dim))
	for _, p := range black {
		b.SetCell(p.X, p.Y, board.Black)
	}
	for _, p := range white {
		b.SetCell(p.X, p.Y, board.White)
	}
	return b
}

// Pts turns a flat list of x, y pairs into points.
func Pts(coords ...int) []board.Point {
	pts := make([]board.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, board.Point{X: coords[i], Y: coords[i+1]})
	}
	return pts
}
