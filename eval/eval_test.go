package eval_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/testhelpers"
)

var pts = testhelpers.Pts

func TestEvaluatePatterns(t *testing.T) {
	e := eval.NewEvaluator(eval.DefaultWeights)
	w := eval.DefaultWeights

	type testcase struct {
		name  string
		black []board.Point
		white []board.Point
		score int
	}

	for _, tc := range []testcase{
		{"empty", nil, nil, 0},
		{"single stone", pts(4, 4), nil, 0},
		{"live two", pts(3, 4, 4, 4), nil, w.LiveTwo},
		{"dead two", pts(0, 4, 1, 4), nil, 0},
		{"live three", pts(3, 4, 4, 4, 5, 4), nil, w.LiveThree},
		{"dead three by stone", pts(3, 4, 4, 4, 5, 4), pts(2, 4), w.DeadThree},
		{"dead three by wall", pts(0, 2, 1, 2, 2, 2), nil, w.DeadThree},
		{"live four vertical", pts(4, 2, 4, 3, 4, 4, 4, 5), nil, w.LiveFour},
		{"dead four diagonal", pts(0, 0, 1, 1, 2, 2, 3, 3), nil, w.DeadFour},
		{"closed four", pts(2, 4, 3, 4, 4, 4, 5, 4), pts(1, 4, 6, 4), 0},
		{"split twos", pts(1, 4, 2, 4, 4, 4, 5, 4), nil, 2 * w.LiveTwo},
		{"five", pts(2, 4, 3, 4, 4, 4, 5, 4, 6, 4), nil, w.Win},
		{"opponent live three", nil, pts(3, 4, 4, 4, 5, 4), -w.LiveThree},
	} {
		b := testhelpers.BoardWithStones(9, tc.black, tc.white)
		assert.Equal(t, tc.score, e.Evaluate(b, board.Black), tc.name)
		assert.Equal(t, -tc.score, e.Evaluate(b, board.White), tc.name)
	}
}

func TestEvaluateIsSymmetricUnderColorSwap(t *testing.T) {
	e := eval.NewEvaluator(eval.DefaultWeights)
	b1 := testhelpers.BoardFromText(7, `
		. . . . . . .
		. X X X . . .
		. . O . . . .
		. . O . . . .
		. . . X . . .
		. . . . . . .
		. . . . . . .`)
	b2 := testhelpers.BoardFromText(7, `
		. . . . . . .
		. O O O . . .
		. . X . . . .
		. . X . . . .
		. . . O . . .
		. . . . . . .
		. . . . . . .`)
	assert.Equal(t, e.Evaluate(b1, board.Black), e.Evaluate(b2, board.White))
	assert.NotZero(t, e.Evaluate(b1, board.Black))
}

func TestRunScoreOrdering(t *testing.T) {
	w := eval.DefaultWeights
	assert.Greater(t, w.RunScore(5, false, false), w.RunScore(4, true, true))
	assert.Greater(t, w.RunScore(4, true, true), w.RunScore(4, true, false))
	assert.GreaterOrEqual(t, w.RunScore(4, false, true), w.RunScore(3, true, true))
	assert.Greater(t, w.RunScore(3, true, true), w.RunScore(3, false, true))
	assert.GreaterOrEqual(t, w.RunScore(3, true, false), w.RunScore(2, true, true))
	assert.Zero(t, w.RunScore(2, true, false))
	assert.Zero(t, w.RunScore(1, true, true))
	assert.Equal(t, w.Win, w.RunScore(7, false, false))
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, eval.DefaultWeights.Validate())

	bad := eval.DefaultWeights
	bad.LiveThree = bad.LiveFour + 1
	assert.True(t, errors.Is(bad.Validate(), eval.ErrWeightOrder))

	bad = eval.DefaultWeights
	bad.LiveTwo = 0
	assert.Error(t, bad.Validate())

	bad = eval.DefaultWeights
	bad.Win = eval.WinScore * 2
	assert.Error(t, bad.Validate())
}

func TestCellScorePrefersWinThenBlock(t *testing.T) {
	e := eval.NewEvaluator(eval.DefaultWeights)
	b := testhelpers.BoardWithStones(10,
		pts(0, 5, 1, 5, 2, 5, 3, 5),
		pts(0, 2, 1, 2, 2, 2, 3, 2))

	win := e.CellScore(b, board.Point{X: 4, Y: 5}, board.Black)
	block := e.CellScore(b, board.Point{X: 4, Y: 2}, board.Black)
	quiet := e.CellScore(b, board.Point{X: 8, Y: 8}, board.Black)

	assert.Greater(t, win, block)
	assert.Greater(t, block, quiet)
	assert.Zero(t, quiet)
}
