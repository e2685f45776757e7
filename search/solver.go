// Package search picks a move with iterative-deepening alpha-beta negamax
// under a wall-clock budget.
package search

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/common"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/tactics"
	"github.com/domino14/gomoku/zobrist"
)

const (
	DefaultMaxDepth = 20
	// ForcedWinMargin: a completed depth scoring within this much of a win
	// has found a forced win and deepening stops.
	ForcedWinMargin = 100
)

var ErrBoardFull = errors.New("board is full")

// Source says how the solver arrived at its move.
type Source int

const (
	SourceNone Source = iota
	SourceOpening
	SourceTactics
	SourceSearch
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceOpening:
		return "opening"
	case SourceTactics:
		return "tactics"
	case SourceSearch:
		return "search"
	case SourceFallback:
		return "fallback"
	}
	return "none"
}

// TimeControl turns a caller's budget into a deadline.
type TimeControl struct {
	SafetyMargin time.Duration
	// MaxMoveTime caps the time spent on one move regardless of the budget.
	// A non-positive value falls back to DefaultMaxMoveTime.
	MaxMoveTime time.Duration
	MinMoveTime time.Duration
}

const DefaultMaxMoveTime = 30 * time.Second

var DefaultTimeControl = TimeControl{
	SafetyMargin: 100 * time.Millisecond,
	MaxMoveTime:  DefaultMaxMoveTime,
	MinMoveTime:  20 * time.Millisecond,
}

// Deadline is start + min(budget - SafetyMargin, MaxMoveTime). MinMoveTime
// lifts a short allowance back up, but never past the budget or the ceiling.
func (tc TimeControl) Deadline(start time.Time, budget time.Duration) time.Time {
	budget = max(budget, 0)
	ceiling := tc.MaxMoveTime
	if ceiling <= 0 {
		ceiling = DefaultMaxMoveTime
	}
	d := max(budget-tc.SafetyMargin, min(tc.MinMoveTime, budget))
	d = max(min(d, ceiling), 0)
	return start.Add(d)
}

type Options struct {
	MaxDepth         int
	TTSize           int
	TTMemoryFraction float64
	TimeControl      TimeControl
}

var DefaultOptions = Options{
	MaxDepth:         DefaultMaxDepth,
	TTSize:           DefaultTTSize,
	TTMemoryFraction: 0.25,
	TimeControl:      DefaultTimeControl,
}

// Result describes one move decision.
type Result struct {
	Move    board.Point
	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []board.Point
	Source  Source
	Tactic  tactics.Kind
	TTStats TTStats
}

// Solver owns all scratch state for move decisions on one board. It is not
// safe for concurrent use, and the board must not be touched by anyone else
// while Solve runs.
type Solver struct {
	board   *board.Board
	zobrist *zobrist.Zobrist
	eval    *eval.Evaluator
	movegen *movegen.Generator

	ttable  *TranspositionTable
	killers *movegen.KillerTable
	history *movegen.HistoryTable

	opts Options

	ctx      context.Context
	deadline time.Time
	aborted  atomic.Bool
	nodes    atomic.Uint64

	principalVariation common.PVLine
	bestPVValue        int
	completedDepth     int
}

func NewSolver(b *board.Board, ev *eval.Evaluator, opts Options) *Solver {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Solver{
		board:   b,
		zobrist: b.Zobrist(),
		eval:    ev,
		movegen: movegen.NewGenerator(ev),
		ttable:  &TranspositionTable{},
		killers: movegen.NewKillerTable(),
		history: movegen.NewHistoryTable(b.Dim()),
		opts:    opts,
	}
}

func (s *Solver) Board() *board.Board {
	return s.board
}

func (s *Solver) Options() Options {
	return s.opts
}

// reset clears every table and the abort flag for a new decision.
func (s *Solver) reset(ctx context.Context, start time.Time, budget time.Duration) {
	s.ctx = ctx
	s.deadline = s.opts.TimeControl.Deadline(start, budget)
	s.aborted.Store(false)
	s.nodes.Store(0)
	s.ttable.Reset(s.opts.TTSize, s.opts.TTMemoryFraction)
	s.killers.Clear()
	s.history.Reset(s.board.Dim())
	s.principalVariation.Clear()
	s.bestPVValue = 0
	s.completedDepth = 0
}

// Solve chooses a move for side. It only returns an error when the board has
// no empty square; running out of time is not an error, the best move found
// so far is returned instead.
func (s *Solver) Solve(ctx context.Context, side board.Side, budget time.Duration) (Result, error) {
	tstart := time.Now()
	s.reset(ctx, tstart, budget)
	res := Result{Move: board.NoPoint}
	defer func() {
		log.Debug().
			Str("move", res.Move.String()).
			Str("source", res.Source.String()).
			Int("depth", res.Depth).
			Int("score", res.Score).
			Msg("move-chosen")
	}()

	if s.board.IsFull() {
		return res, ErrBoardFull
	}
	if s.board.IsEmpty() {
		res.Move = s.board.Center()
		res.Source = SourceOpening
		res.Elapsed = time.Since(tstart)
		return res, nil
	}
	if p, kind := tactics.Find(s.board, side); kind != tactics.None {
		res.Move = p
		res.Source = SourceTactics
		res.Tactic = kind
		res.PV = []board.Point{p}
		if kind == tactics.Win {
			res.Score = eval.WinScore
		}
		res.Elapsed = time.Since(tstart)
		return res, nil
	}

	rootMoves := s.movegen.GenAll(s.board, side, movegen.Hints{
		HashMove: board.NoPoint,
		Killers:  [2]board.Point{board.NoPoint, board.NoPoint},
		History:  s.history,
	})

	g := &errgroup.Group{}
	done := make(chan struct{})

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	var best board.Point
	g.Go(func() error {
		defer close(done)
		best = s.iterativelyDeepen(side)
		return nil
	})
	// Neither goroutine returns an error.
	_ = g.Wait()

	switch {
	case best != board.NoPoint:
		res.Move = best
		res.Source = SourceSearch
		res.Score = s.bestPVValue
		res.PV = s.principalVariation.Moves
	case len(rootMoves) > 0:
		res.Move = rootMoves[0].Point
		res.Source = SourceFallback
	default:
		res.Move = s.board.NearestEmptyToCenter()
		res.Source = SourceFallback
	}
	res.Depth = s.completedDepth
	res.Nodes = s.nodes.Load()
	res.Elapsed = time.Since(tstart)
	res.TTStats = s.ttable.Stats()

	log.Debug().
		Uint64("ttable-created", res.TTStats.Created).
		Uint64("ttable-lookups", res.TTStats.Lookups).
		Uint64("ttable-hits", res.TTStats.Hits).
		Uint64("ttable-t2collisions", res.TTStats.T2Collisions).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")

	return res, nil
}

// iterativelyDeepen searches depth 1, 2, ... until the deadline, a forced
// win or the depth cap. It returns the best move of the deepest fully
// completed depth, or NoPoint if none completed.
func (s *Solver) iterativelyDeepen(side board.Side) board.Point {
	best := board.NoPoint
	empties := s.board.NumEmpty()
	for p := 1; p <= s.opts.MaxDepth && p <= empties; p++ {
		if s.checkAbort() {
			break
		}
		log.Debug().Int("plies", p).Msg("deepening-iteratively")
		pv := common.PVLine{}
		move, val, err := s.searchRoot(p, side, best, &pv)
		if err != nil {
			log.Debug().Int("plies", p).Err(err).Msg("depth-discarded")
			break
		}
		if move == board.NoPoint {
			// nothing near the stones to search
			break
		}
		best = move
		s.principalVariation = pv
		s.bestPVValue = val
		s.completedDepth = p
		log.Debug().Int("score", val).Int("ply", p).Str("pv", pv.NLBString()).Msg("best-val")
		if val >= eval.WinScore-ForcedWinMargin {
			log.Debug().Int("plies", p).Msg("forced-win-found")
			break
		}
	}
	return best
}

func (s *Solver) searchRoot(depth int, side board.Side, prevBest board.Point, pv *common.PVLine) (board.Point, int, error) {
	moves := s.movegen.GenAll(s.board, side, movegen.Hints{
		HashMove: prevBest,
		Killers:  [2]board.Point{board.NoPoint, board.NoPoint},
		History:  s.history,
	})
	α, β := -eval.Infinity, eval.Infinity
	bestValue := -eval.Infinity
	bestMove := board.NoPoint
	childPV := common.PVLine{}
	for _, m := range moves {
		p := m.Point
		s.board.SetCell(p.X, p.Y, side)
		if s.board.IsFive(p.X, p.Y, side) {
			s.board.SetCell(p.X, p.Y, board.Empty)
			pv.Update(p, common.PVLine{}, eval.WinScore)
			return p, eval.WinScore, nil
		}
		value, err := s.negamax(depth-1, -β, -α, side.Opponent(), 1, &childPV)
		s.board.SetCell(p.X, p.Y, board.Empty)
		if err != nil {
			return board.NoPoint, 0, err
		}
		value = -value
		if value > bestValue {
			bestValue = value
			bestMove = p
			pv.Update(p, childPV, bestValue)
		}
		α = max(α, bestValue)
		childPV.Clear()
	}
	return bestMove, bestValue, nil
}
