package search

import (
	"errors"
	"time"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/common"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/movegen"
)

// checkInterval is how many nodes pass between reads of the clock.
const checkInterval = 4096

// Scores at least this far from zero are wins or losses at a known ply.
const mateThreshold = eval.WinScore - 1000

var (
	// ErrSearchAborted is returned from every frame of a search that ran
	// past its deadline or whose context was cancelled. Its value is
	// meaningless.
	ErrSearchAborted = errors.New("search aborted")
)

// scoreToTT makes a win or loss relative to the node it is stored at, so
// that it reads back correctly at whatever ply the position is met again.
func scoreToTT(score, ply int) int {
	switch {
	case score >= mateThreshold:
		return score + ply
	case score <= -mateThreshold:
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	switch {
	case score >= mateThreshold:
		return score - ply
	case score <= -mateThreshold:
		return score + ply
	}
	return score
}

// checkAbort trips the abort flag once the deadline has passed or the
// context is done. The flag stays set until the next Solve.
func (s *Solver) checkAbort() bool {
	if s.aborted.Load() {
		return true
	}
	if !time.Now().Before(s.deadline) || s.ctx.Err() != nil {
		s.aborted.Store(true)
	}
	return s.aborted.Load()
}

func (s *Solver) nodeKey(side board.Side) uint64 {
	return s.board.Hash() ^ s.zobrist.SideToMove(uint8(side))
}

func (s *Solver) negamax(depth, α, β int, side board.Side, ply int, pv *common.PVLine) (int, error) {
	if s.nodes.Add(1)%checkInterval == 0 {
		s.checkAbort()
	}
	if s.aborted.Load() {
		return 0, ErrSearchAborted
	}
	if depth == 0 {
		return s.eval.Evaluate(s.board, side), nil
	}

	nodeKey := s.nodeKey(side)
	alphaOrig := α
	hashMove := board.NoPoint
	if ttEntry, ok := s.ttable.lookup(nodeKey); ok {
		if idx := ttEntry.bestIdx(); idx >= 0 {
			hashMove = s.board.PointAt(idx)
		}
		if int(ttEntry.depth) >= depth {
			score := scoreFromTT(int(ttEntry.score), ply)
			switch {
			case ttEntry.flag == TTExact,
				ttEntry.flag == TTLower && score >= β,
				ttEntry.flag == TTUpper && score <= α:
				return score, nil
			}
		}
	}

	children := s.movegen.GenAll(s.board, side, movegen.Hints{
		HashMove: hashMove,
		Killers:  s.killers.At(ply),
		History:  s.history,
	})
	if len(children) == 0 {
		return s.eval.Evaluate(s.board, side), nil
	}

	childPV := common.PVLine{}
	bestValue := -eval.Infinity
	bestMove := board.NoPoint
	for _, child := range children {
		p := child.Point
		s.board.SetCell(p.X, p.Y, side)
		if s.board.IsFive(p.X, p.Y, side) {
			s.board.SetCell(p.X, p.Y, board.Empty)
			// The shallowest win is the best one; nothing else here needs
			// to be looked at.
			bestValue = eval.WinScore - ply
			pv.Update(p, common.PVLine{}, bestValue)
			s.ttable.store(nodeKey, newEntry(scoreToTT(bestValue, ply), depth, TTExact, s.board.Index(p)))
			return bestValue, nil
		}
		value, err := s.negamax(depth-1, -β, -α, side.Opponent(), ply+1, &childPV)
		s.board.SetCell(p.X, p.Y, board.Empty)
		if err != nil {
			return 0, err
		}
		value = -value
		if value > bestValue {
			bestValue = value
			bestMove = p
			pv.Update(p, childPV, bestValue)
		}
		α = max(α, bestValue)
		if α >= β {
			s.killers.Store(ply, p)
			s.history.Add(side, s.board.Index(p), depth)
			break // beta cut-off
		}
		childPV.Clear() // clear the child node's pv for the next child node
	}

	var flag uint8
	if bestValue <= alphaOrig {
		flag = TTUpper
	} else if bestValue >= β {
		flag = TTLower
	} else {
		flag = TTExact
	}
	s.ttable.store(nodeKey, newEntry(scoreToTT(bestValue, ply), depth, flag, s.board.Index(bestMove)))
	return bestValue, nil
}
