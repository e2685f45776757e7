package game

import (
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
)

// Move is a stone placed on the board.
type Move struct {
	Point board.Point
	Side  board.Side
}

func (m Move) String() string {
	return m.Side.DisplayString() + " " + m.Point.String()
}

// Moves returns the stones still on the board, in the order they were
// placed.
func (g *Game) Moves() []Move {
	return append([]Move(nil), g.history...)
}

// Turn is the number of stones on the board.
func (g *Game) Turn() int {
	return len(g.history)
}

// LastMove returns the most recent placement, if any.
func (g *Game) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// Undo takes back the most recent stone and gives its side the turn again.
func (g *Game) Undo() (Move, bool) {
	m, ok := g.LastMove()
	if !ok {
		return Move{}, false
	}
	g.history = g.history[:len(g.history)-1]
	g.board.SetCell(m.Point.X, m.Point.Y, board.Empty)
	g.onturn = m.Side
	g.updateState(board.NoPoint, board.Empty)
	return m, true
}

// forget drops the history entry for a square that is being cleared or
// overwritten.
func (g *Game) forget(p board.Point) {
	g.history = lo.Reject(g.history, func(m Move, _ int) bool {
		return m.Point == p
	})
}

// MoveListString is the history as space-separated "x,y" squares.
func (g *Game) MoveListString() string {
	return strings.Join(lo.Map(g.history, func(m Move, _ int) string {
		return m.Point.String()
	}), " ")
}
