// Package game is the engine facade: a board, whose turn it is, and a
// solver that picks moves on it.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/search"
	"github.com/domino14/gomoku/zobrist"
)

var ErrUnsupportedSize = errors.New("unsupported board size")

type PlayState int

const (
	PlayStatePlaying PlayState = iota
	PlayStateWon
	PlayStateDrawn
)

func (p PlayState) String() string {
	switch p {
	case PlayStateWon:
		return "won"
	case PlayStateDrawn:
		return "drawn"
	}
	return "playing"
}

type Game struct {
	evaluator *eval.Evaluator
	opts      search.Options
	seed      uint64

	zobrist *zobrist.Zobrist
	board   *board.Board
	solver  *search.Solver

	onturn  board.Side
	history []Move
	winner  board.Side
	state   PlayState

	lastResult search.Result
}

// NewGame builds an engine from cfg. Init must be called before stones are
// placed.
func NewGame(cfg *config.Config) (*Game, error) {
	if cfg == nil {
		c := config.DefaultConfig()
		cfg = &c
	}
	w, err := cfg.Weights()
	if err != nil {
		return nil, fmt.Errorf("loading weights: %w", err)
	}
	return &Game{
		evaluator: eval.NewEvaluator(w),
		opts:      cfg.SearchOptions(),
		seed:      cfg.GetUint64(config.ConfigZobristSeed),
		onturn:    board.Black,
	}, nil
}

// Init (re)allocates a size x size board and resets everything on it.
func (g *Game) Init(size int) error {
	if size < board.MinDim {
		return fmt.Errorf("%w: %d", ErrUnsupportedSize, size)
	}
	if g.zobrist == nil || g.zobrist.BoardDim() != size {
		g.zobrist = &zobrist.Zobrist{}
		if g.seed != 0 {
			g.zobrist.InitializeSeeded(size, g.seed)
		} else {
			g.zobrist.Initialize(size)
		}
	}
	g.board = board.NewBoard(size, g.zobrist)
	g.solver = search.NewSolver(g.board, g.evaluator, g.opts)
	g.Restart()
	log.Debug().Int("size", size).Msg("game-initialized")
	return nil
}

// Restart clears the board for a new game of the same size.
func (g *Game) Restart() {
	if g.board != nil {
		g.board.Clear()
	}
	g.onturn = board.Black
	g.history = g.history[:0]
	g.winner = board.Empty
	g.state = PlayStatePlaying
	g.lastResult = search.Result{Move: board.NoPoint}
}

func (g *Game) Initialized() bool {
	return g.board != nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Size() int {
	if g.board == nil {
		return 0
	}
	return g.board.Dim()
}

func (g *Game) PlayerOnTurn() board.Side {
	return g.onturn
}

// SetPlayerOnTurn overrides whose turn it is, for positions set up stone by
// stone in no particular order.
func (g *Game) SetPlayerOnTurn(side board.Side) {
	if side == board.Black || side == board.White {
		g.onturn = side
	}
}

func (g *Game) Playing() PlayState {
	return g.state
}

// Winner is the side that completed five, or Empty.
func (g *Game) Winner() board.Side {
	return g.winner
}

// PlaceStone puts a stone for side on (x, y), or clears the square when side
// is Empty. Out-of-range squares are ignored. Placing a stone passes the
// turn to the other side.
func (g *Game) PlaceStone(x, y int, side board.Side) {
	if g.board == nil || !g.board.InBounds(x, y) {
		return
	}
	if side == board.Empty {
		g.board.SetCell(x, y, board.Empty)
		g.forget(board.Point{X: x, Y: y})
		g.updateState(board.NoPoint, board.Empty)
		return
	}
	if g.board.At(x, y) == side {
		return
	}
	if g.board.At(x, y) != board.Empty {
		g.forget(board.Point{X: x, Y: y})
	}
	g.board.SetCell(x, y, side)
	p := board.Point{X: x, Y: y}
	g.history = append(g.history, Move{Point: p, Side: side})
	g.onturn = side.Opponent()
	g.updateState(p, side)
}

// updateState works out whether someone has five, looking at the stone just
// placed first and then at every stone still standing.
func (g *Game) updateState(last board.Point, side board.Side) {
	g.winner = board.Empty
	if last != board.NoPoint && g.board.IsFive(last.X, last.Y, side) {
		g.winner = side
	} else {
		for _, m := range g.history {
			if g.board.IsFive(m.Point.X, m.Point.Y, m.Side) {
				g.winner = m.Side
				break
			}
		}
	}
	switch {
	case g.winner != board.Empty:
		g.state = PlayStateWon
	case g.board.IsFull():
		g.state = PlayStateDrawn
	default:
		g.state = PlayStatePlaying
	}
}

// ComputeBestMove picks a move for the side on turn within budget. It
// returns an empty square whenever the board has one, and NoPoint otherwise.
// Cancelling ctx ends the search early, as running out of time does.
func (g *Game) ComputeBestMove(ctx context.Context, budget time.Duration) board.Point {
	if g.solver == nil {
		return board.NoPoint
	}
	res, err := g.solver.Solve(ctx, g.onturn, budget)
	g.lastResult = res
	if err != nil {
		log.Debug().Err(err).Msg("no-move")
		return board.NoPoint
	}
	log.Debug().
		Str("side", g.onturn.String()).
		Str("move", res.Move.String()).
		Str("source", res.Source.String()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("best-move")
	return res.Move
}

// LastResult describes the most recent ComputeBestMove call.
func (g *Game) LastResult() search.Result {
	return g.lastResult
}

// Evaluate is the static score of the position for side.
func (g *Game) Evaluate(side board.Side) int {
	if g.board == nil {
		return 0
	}
	return g.evaluator.Evaluate(g.board, side)
}

func (g *Game) ToDisplayText() string {
	if g.board == nil {
		return ""
	}
	return g.board.ToDisplayText()
}
