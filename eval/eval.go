// Package eval scores gomoku positions from line patterns.
package eval

import (
	"github.com/domino14/gomoku/board"
)

const (
	// WinScore is the value of a completed five. Search scores stay well
	// inside (-Infinity, Infinity).
	WinScore = 100_000_000
	Infinity = 1_000_000_000
)

// attack and defend weigh the line a stone on a square would make for the
// mover, and the opponent line it would cut, indexed by run length (capped
// at 5). Making a five outranks stopping one, which outranks making a four.
var (
	attackTable = [6]int{0, 0, 10, 100, 5000, 200000}
	defendTable = [6]int{0, 0, 8, 80, 4000, 100000}
)

// Evaluator computes static scores with a fixed set of weights.
type Evaluator struct {
	weights Weights
}

func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{weights: w}
}

func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Evaluate returns the sum of side's run scores minus the opponent's. Only
// the bounding box of the stones widened by one square is scanned; nothing
// outside it can be part of a run or an open end.
func (e *Evaluator) Evaluate(b *board.Board, side board.Side) int {
	r := b.Expanded(1)
	total := 0
	for _, d := range board.Directions {
		for y := r.MinY; y <= r.MaxY; y++ {
			for x := r.MinX; x <= r.MaxX; x++ {
				total += e.runAt(b, x, y, d[0], d[1], side)
			}
		}
	}
	return total
}

// runAt scores the run that starts at (x, y) in direction (dx, dy), signed
// from side's point of view. It returns 0 unless (x, y) is the first stone of
// a run, so every run is counted once per direction.
func (e *Evaluator) runAt(b *board.Board, x, y, dx, dy int, side board.Side) int {
	p := b.At(x, y)
	if p == board.Empty {
		return 0
	}
	px, py := x-dx, y-dy
	if b.InBounds(px, py) && b.At(px, py) == p {
		return 0
	}
	count := 1 + b.CountDir(x, y, dx, dy, p, b.Dim())
	tx, ty := x+count*dx, y+count*dy

	openHead := b.InBounds(px, py) && b.At(px, py) == board.Empty
	openTail := b.InBounds(tx, ty) && b.At(tx, ty) == board.Empty

	val := e.weights.RunScore(count, openHead, openTail)
	if p != side {
		return -val
	}
	return val
}

// CellScore is a cheap tactical estimate of a stone for side on the empty
// square p. Per axis it counts the run side would get by playing there and
// the opponent run the stone would interrupt.
func (e *Evaluator) CellScore(b *board.Board, p board.Point, side board.Side) int {
	opp := side.Opponent()
	score := 0
	for _, d := range board.Directions {
		own := 1 + b.CountDir(p.X, p.Y, d[0], d[1], side, 4) +
			b.CountDir(p.X, p.Y, -d[0], -d[1], side, 4)
		theirs := 1 + b.CountDir(p.X, p.Y, d[0], d[1], opp, 4) +
			b.CountDir(p.X, p.Y, -d[0], -d[1], opp, 4)
		score += attackTable[min(own, 5)]
		score += defendTable[min(theirs, 5)]
	}
	return score
}
