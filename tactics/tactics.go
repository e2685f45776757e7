// Package tactics finds forced moves before any tree search runs: a
// winning square, a square that stops the opponent from winning, or a square
// that makes a four.
package tactics

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
)

// Kind says why a tactical square was chosen.
type Kind int

const (
	None Kind = iota
	Win
	Block
	FourThreat
)

func (k Kind) String() string {
	switch k {
	case Win:
		return "win"
	case Block:
		return "block"
	case FourThreat:
		return "four-threat"
	}
	return "none"
}

// Margin is how far past the stones' bounding box the scan reaches.
const Margin = 2

// Find scans the empty squares near the stones and returns the first
// square, in priority order, that wins for side, blocks an opponent win, or
// gives side a four. Each priority is checked over the whole area before the
// next is tried. The board is left as it was found.
func Find(b *board.Board, side board.Side) (board.Point, Kind) {
	if b.IsEmpty() {
		return board.NoPoint, None
	}
	opp := side.Opponent()
	checks := []struct {
		kind Kind
		side board.Side
		test func(b *board.Board, x, y int, s board.Side) bool
	}{
		{Win, side, makesFive},
		{Block, opp, makesFive},
		{FourThreat, side, makesFour},
	}
	r := b.Expanded(Margin)
	for _, c := range checks {
		for y := r.MinY; y <= r.MaxY; y++ {
			for x := r.MinX; x <= r.MaxX; x++ {
				if b.At(x, y) != board.Empty {
					continue
				}
				if probe(b, x, y, c.side, c.test) {
					p := board.Point{X: x, Y: y}
					log.Debug().Str("kind", c.kind.String()).Str("square", p.String()).
						Str("side", side.String()).Msg("tactical-move")
					return p, c.kind
				}
			}
		}
	}
	return board.NoPoint, None
}

// probe places a stone for s on (x, y), runs test, and removes the stone
// again on every exit path.
func probe(b *board.Board, x, y int, s board.Side,
	test func(b *board.Board, x, y int, s board.Side) bool) bool {

	b.SetCell(x, y, s)
	defer b.SetCell(x, y, board.Empty)
	return test(b, x, y, s)
}

func makesFive(b *board.Board, x, y int, s board.Side) bool {
	return b.IsFive(x, y, s)
}

// makesFour is true if some 5-square window through (x, y) holds exactly
// four stones of s, one empty square and nothing of the opponent's, so that
// s threatens to complete five on the next move.
func makesFour(b *board.Board, x, y int, s board.Side) bool {
	for _, d := range board.Directions {
		for start := -4; start <= 0; start++ {
			if fourInWindow(b, x+start*d[0], y+start*d[1], d[0], d[1], s) {
				return true
			}
		}
	}
	return false
}

func fourInWindow(b *board.Board, x, y, dx, dy int, s board.Side) bool {
	own, empty := 0, 0
	for i := 0; i < 5; i++ {
		cx, cy := x+i*dx, y+i*dy
		if !b.InBounds(cx, cy) {
			return false
		}
		switch b.At(cx, cy) {
		case s:
			own++
		case board.Empty:
			empty++
		default:
			return false
		}
	}
	return own == 4 && empty == 1
}
