// Package automatic plays the engine against itself: many games, each move
// logged, with a summary of who won and how deep the search got.
package automatic

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

// LogHeader names the columns of the CSV move log.
var LogHeader = []string{"gameID", "turn", "side", "move", "source", "depth",
	"score", "nodes", "elapsedms", "winner"}

// openingRadius bounds how far from the center random opening stones land.
const openingRadius = 2

// GameRunner plays one game at a time between two engines. Each side has
// its own game.Game, so search tables are never shared; both are told about
// every move. The black engine doubles as the referee.
type GameRunner struct {
	config       *config.Config
	engines      [2]*game.Game
	size         int
	turnTime     time.Duration
	openingMoves int

	logchan chan []string
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	ID     string
	Winner board.Side
	Moves  int
	// Depths and NPS hold one value per engine move, opening stones excluded.
	Depths []float64
	NPS    []float64
}

// NewGameRunner builds a runner from the selfplay settings in cfg. Move
// records go to logchan when it is not nil.
func NewGameRunner(logchan chan []string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{
		config:       cfg,
		size:         cfg.GetInt(config.ConfigSelfplayBoardSize),
		turnTime:     cfg.GetDuration(config.ConfigSelfplayTurnTime),
		openingMoves: cfg.GetInt(config.ConfigSelfplayOpeningMoves),
		logchan:      logchan,
	}
	for i := range r.engines {
		g, err := game.NewGame(cfg)
		if err != nil {
			return nil, err
		}
		if err := g.Init(r.size); err != nil {
			return nil, err
		}
		r.engines[i] = g
	}
	return r, nil
}

func (r *GameRunner) referee() *game.Game {
	return r.engines[0]
}

func (r *GameRunner) engineFor(side board.Side) *game.Game {
	if side == board.White {
		return r.engines[1]
	}
	return r.engines[0]
}

func (r *GameRunner) place(p board.Point, side board.Side) {
	for _, g := range r.engines {
		g.PlaceStone(p.X, p.Y, side)
	}
}

func (r *GameRunner) restart() {
	for _, g := range r.engines {
		g.Restart()
	}
}

// playOpening drops alternating random stones near the center so that games
// do not all repeat the same line.
func (r *GameRunner) playOpening(rng *frand.RNG) {
	center := r.referee().Board().Center()
	b := r.referee().Board()
	for i := 0; i < r.openingMoves; i++ {
		side := r.referee().PlayerOnTurn()
		for tries := 0; tries < 100; tries++ {
			x := center.X + rng.Intn(2*openingRadius+1) - openingRadius
			y := center.Y + rng.Intn(2*openingRadius+1) - openingRadius
			if b.InBounds(x, y) && b.At(x, y) == board.Empty {
				r.place(board.Point{X: x, Y: y}, side)
				break
			}
		}
	}
}

// PlayGame plays a full game, from a random opening drawn from seed, until
// someone makes five or the board fills up.
func (r *GameRunner) PlayGame(ctx context.Context, id string, seed [32]byte) (GameResult, error) {
	r.restart()
	r.playOpening(newRNG(seed))

	res := GameResult{ID: id}
	var records [][]string
	ref := r.referee()
	for ref.Playing() == game.PlayStatePlaying {
		side := ref.PlayerOnTurn()
		eng := r.engineFor(side)
		eng.SetPlayerOnTurn(side)
		m := eng.ComputeBestMove(ctx, r.turnTime)
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if m == board.NoPoint {
			break
		}
		sr := eng.LastResult()
		r.place(m, side)

		res.Depths = append(res.Depths, float64(sr.Depth))
		if secs := sr.Elapsed.Seconds(); secs > 0 {
			res.NPS = append(res.NPS, float64(sr.Nodes)/secs)
		}
		records = append(records, []string{
			id,
			strconv.Itoa(ref.Turn()),
			side.String(),
			m.String(),
			sr.Source.String(),
			strconv.Itoa(sr.Depth),
			strconv.Itoa(sr.Score),
			strconv.FormatUint(sr.Nodes, 10),
			strconv.FormatInt(sr.Elapsed.Milliseconds(), 10),
		})
	}
	res.Winner = ref.Winner()
	res.Moves = ref.Turn()

	if r.logchan != nil {
		for _, rec := range records {
			r.logchan <- append(rec, res.Winner.String())
		}
	}
	log.Debug().Str("game", id).Str("winner", res.Winner.String()).
		Int("moves", res.Moves).Msg("game-over")
	return res, nil
}

// Board returns the referee's board, for display after a game.
func (r *GameRunner) Board() *board.Board {
	return r.referee().Board()
}

func newRNG(seed [32]byte) *frand.RNG {
	return frand.NewCustom(seed[:], 1024, 12)
}

func gameID(idx int) string {
	return fmt.Sprintf("g%05d", idx)
}
