package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/testhelpers"
)

func newGen() *Generator {
	return NewGenerator(eval.NewEvaluator(eval.DefaultWeights))
}

func TestCandidatesAroundSingleStone(t *testing.T) {
	is := is.New(t)
	b := testhelpers.BoardWithStones(10, testhelpers.Pts(5, 5), nil)
	cands := newGen().Candidates(b)

	is.Equal(len(cands), 24)
	is.Equal(cands[0], board.Point{X: 3, Y: 3})
	is.Equal(cands[len(cands)-1], board.Point{X: 7, Y: 7})
	for _, p := range cands {
		is.Equal(b.At(p.X, p.Y), board.Empty)
	}
}

func TestCandidatesEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard(10, testhelpers.SeededZobrist(10))
	is.Equal(len(newGen().Candidates(b)), 0)
}

func TestCandidatesNearEdge(t *testing.T) {
	is := is.New(t)
	b := testhelpers.BoardWithStones(10, testhelpers.Pts(0, 0), nil)
	cands := newGen().Candidates(b)
	// the 3x3 corner block minus the stone itself
	is.Equal(len(cands), 8)
	for _, p := range cands {
		is.True(b.InBounds(p.X, p.Y))
	}
}

func TestOrderingStaticTiesKeepRowMajor(t *testing.T) {
	is := is.New(t)
	b := testhelpers.BoardWithStones(10, testhelpers.Pts(5, 5), nil)
	moves := newGen().GenAll(b, board.Black, NoHints)
	is.Equal(len(moves), 24)

	// orthogonal neighbours tie, then diagonal ones, each in row-major order
	is.Equal(Points(moves[:8]), []board.Point{
		{X: 5, Y: 4}, {X: 4, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6},
		{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 4, Y: 6}, {X: 6, Y: 6},
	})
}

func TestOrderingHints(t *testing.T) {
	is := is.New(t)
	b := testhelpers.BoardWithStones(10, testhelpers.Pts(5, 5), nil)
	hist := NewHistoryTable(10)
	hist.Add(board.Black, b.Index(board.Point{X: 7, Y: 3}), 20)

	moves := newGen().GenAll(b, board.Black, Hints{
		HashMove: board.Point{X: 3, Y: 3},
		Killers:  [2]board.Point{{X: 7, Y: 7}, {X: 3, Y: 7}},
		History:  hist,
	})
	is.Equal(Points(moves[:4]), []board.Point{
		{X: 3, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}, {X: 7, Y: 3},
	})
}

func TestOrderingPrefersWinningSquare(t *testing.T) {
	is := is.New(t)
	b := testhelpers.BoardWithStones(10,
		testhelpers.Pts(0, 5, 1, 5, 2, 5, 3, 5),
		testhelpers.Pts(5, 1, 5, 2, 5, 3))
	moves := newGen().GenAll(b, board.Black, NoHints)
	is.Equal(moves[0].Point, board.Point{X: 4, Y: 5})
}

func TestKillerTable(t *testing.T) {
	is := is.New(t)
	k := NewKillerTable()
	is.Equal(k.At(3), [2]board.Point{board.NoPoint, board.NoPoint})

	a := board.Point{X: 1, Y: 1}
	c := board.Point{X: 2, Y: 2}
	k.Store(3, a)
	k.Store(3, a)
	is.Equal(k.At(3), [2]board.Point{a, board.NoPoint})
	k.Store(3, c)
	is.Equal(k.At(3), [2]board.Point{c, a})

	k.Store(MaxKillerPly, a)
	is.Equal(k.At(MaxKillerPly), [2]board.Point{board.NoPoint, board.NoPoint})

	k.Clear()
	is.Equal(k.At(3), [2]board.Point{board.NoPoint, board.NoPoint})
}

func TestHistoryTable(t *testing.T) {
	is := is.New(t)
	h := NewHistoryTable(10)
	h.Add(board.White, 12, 3)
	h.Add(board.White, 12, 2)
	is.Equal(h.Score(board.White, 12), 13)
	is.Equal(h.Score(board.Black, 12), 0)

	h.Add(board.Empty, 12, 5)
	h.Add(board.Black, 100, 5)
	is.Equal(h.Score(board.Black, 100), 0)

	h.Reset(10)
	is.Equal(h.Score(board.White, 12), 0)
	h.Reset(15)
	h.Add(board.Black, 200, 4)
	is.Equal(h.Score(board.Black, 200), 16)
}
