// Package movegen generates and orders candidate squares for the search.
package movegen

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
)

const (
	HashMoveOffset = 1_000_000
	Killer0Offset  = 900_000
	Killer1Offset  = 800_000

	// GenMargin is how far past the stones' bounding box candidates are
	// looked for; Neighborhood is the Chebyshev distance within which a
	// candidate must have a stone.
	GenMargin    = 2
	Neighborhood = 2
)

// ScoredMove is a candidate square with its ordering estimate.
type ScoredMove struct {
	Point board.Point
	Score int
}

// Hints carry what the search has learned so far about good squares at the
// node being expanded. Unused hints are NoPoint (or a nil history).
type Hints struct {
	HashMove board.Point
	Killers  [2]board.Point
	History  *HistoryTable
}

// NoHints orders by the static heuristics alone.
var NoHints = Hints{
	HashMove: board.NoPoint,
	Killers:  [2]board.Point{board.NoPoint, board.NoPoint},
}

// Generator produces ordered candidate squares.
type Generator struct {
	eval *eval.Evaluator
}

func NewGenerator(e *eval.Evaluator) *Generator {
	return &Generator{eval: e}
}

// Candidates returns every empty square within GenMargin of the stones'
// bounding box that has a stone within Neighborhood, in row-major order.
func (g *Generator) Candidates(b *board.Board) []board.Point {
	r := b.Expanded(GenMargin)
	cands := make([]board.Point, 0, 64)
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			if b.At(x, y) != board.Empty {
				continue
			}
			if hasNeighbor(b, x, y) {
				cands = append(cands, board.Point{X: x, Y: y})
			}
		}
	}
	return cands
}

func hasNeighbor(b *board.Board, x, y int) bool {
	for dy := -Neighborhood; dy <= Neighborhood; dy++ {
		for dx := -Neighborhood; dx <= Neighborhood; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) && b.At(nx, ny) != board.Empty {
				return true
			}
		}
	}
	return false
}

// GenAll returns the candidates for side, best first. Equal estimates keep
// their generation order so the search is reproducible.
func (g *Generator) GenAll(b *board.Board, side board.Side, hints Hints) []ScoredMove {
	cands := g.Candidates(b)
	moves := make([]ScoredMove, len(cands))
	c := b.Center()
	for i, p := range cands {
		score := 0
		if p == hints.HashMove {
			score += HashMoveOffset
		}
		if p == hints.Killers[0] {
			score += Killer0Offset
		} else if p == hints.Killers[1] {
			score += Killer1Offset
		}
		if hints.History != nil {
			score += hints.History.Score(side, b.Index(p))
		}
		score += g.eval.CellScore(b, p, side)
		score -= abs(p.X-c.X) + abs(p.Y-c.Y)
		moves[i] = ScoredMove{Point: p, Score: score}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Score > moves[j].Score
	})
	return moves
}

// Points strips the estimates from a list of scored moves.
func Points(moves []ScoredMove) []board.Point {
	return lo.Map(moves, func(m ScoredMove, _ int) board.Point {
		return m.Point
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
