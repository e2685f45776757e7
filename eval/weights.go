package eval

import (
	"errors"
	"fmt"
)

var ErrWeightOrder = errors.New("pattern weights are out of order")

// Weights are the scores assigned to line patterns. Only their relative
// order is load-bearing; the magnitudes are tunable.
type Weights struct {
	Win       int
	LiveFour  int
	DeadFour  int
	LiveThree int
	DeadThree int
	LiveTwo   int
}

var DefaultWeights = Weights{
	Win:       WinScore,
	LiveFour:  100000,
	DeadFour:  2000,
	LiveThree: 2000,
	DeadThree: 100,
	LiveTwo:   100,
}

// Validate checks win > live four > dead four, live four > live three >
// dead three >= live two > 0.
func (w Weights) Validate() error {
	switch {
	case w.Win <= w.LiveFour:
		return fmt.Errorf("%w: win %d <= live-four %d", ErrWeightOrder, w.Win, w.LiveFour)
	case w.LiveFour <= w.DeadFour || w.LiveFour <= w.LiveThree:
		return fmt.Errorf("%w: live-four %d must exceed dead-four and live-three", ErrWeightOrder, w.LiveFour)
	case w.LiveThree <= w.DeadThree || w.DeadFour <= w.DeadThree:
		return fmt.Errorf("%w: dead-three %d must be below dead-four and live-three", ErrWeightOrder, w.DeadThree)
	case w.DeadThree < w.LiveTwo || w.LiveTwo <= 0:
		return fmt.Errorf("%w: live-two %d must be in (0, dead-three]", ErrWeightOrder, w.LiveTwo)
	case w.Win > WinScore:
		return fmt.Errorf("%w: win %d exceeds %d", ErrWeightOrder, w.Win, WinScore)
	}
	return nil
}

// RunScore scores one maximal run of length stones. openHead and openTail
// say whether the square just beyond each end is empty and on the board.
func (w Weights) RunScore(length int, openHead, openTail bool) int {
	switch {
	case length >= 5:
		return w.Win
	case length == 4:
		if openHead && openTail {
			return w.LiveFour
		} else if openHead || openTail {
			return w.DeadFour
		}
	case length == 3:
		if openHead && openTail {
			return w.LiveThree
		} else if openHead || openTail {
			return w.DeadThree
		}
	case length == 2:
		if openHead && openTail {
			return w.LiveTwo
		}
	}
	return 0
}
