package game

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestGame(t *testing.T, size int) *Game {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigZobristSeed, uint64(testhelpers.TestSeed))
	cfg.Set(config.ConfigTTSize, 1<<16)
	cfg.Set(config.ConfigMaxDepth, 4)
	g, err := NewGame(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Init(size); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestInitRejectsSmallBoards(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(nil)
	is.NoErr(err)
	err = g.Init(4)
	is.True(errors.Is(err, ErrUnsupportedSize))
	is.True(!g.Initialized())
	is.Equal(g.ComputeBestMove(context.Background(), time.Second), board.NoPoint)

	is.NoErr(g.Init(5))
	is.Equal(g.Size(), 5)
}

func TestNewGameRejectsBadWeights(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigWeightsLiveTwo, 0)
	_, err := NewGame(&cfg)
	is.True(err != nil)
}

func TestPlaceStoneRoundTrip(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 15)
	g.PlaceStone(7, 7, board.Black)
	before := g.Board().Hash()

	g.PlaceStone(8, 8, board.White)
	is.True(g.Board().Hash() != before)
	g.PlaceStone(8, 8, board.Empty)
	is.Equal(g.Board().Hash(), before)
	is.Equal(g.Turn(), 1)

	// out of range is ignored
	g.PlaceStone(-1, 3, board.White)
	g.PlaceStone(15, 0, board.White)
	is.Equal(g.Board().Hash(), before)
	is.Equal(g.Turn(), 1)
}

func TestTurnPasses(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 15)
	is.Equal(g.PlayerOnTurn(), board.Black)
	g.PlaceStone(7, 7, board.Black)
	is.Equal(g.PlayerOnTurn(), board.White)
	g.PlaceStone(7, 8, board.White)
	is.Equal(g.PlayerOnTurn(), board.Black)

	m, ok := g.Undo()
	is.True(ok)
	is.Equal(m, Move{Point: board.Point{X: 7, Y: 8}, Side: board.White})
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Board().At(7, 8), board.Empty)
	is.Equal(g.MoveListString(), "7,7")
}

func TestWinnerAndUndo(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 10)
	for x := 0; x < 4; x++ {
		g.PlaceStone(x, 0, board.Black)
		g.PlaceStone(x, 1, board.White)
	}
	is.Equal(g.Playing(), PlayStatePlaying)
	g.PlaceStone(4, 0, board.Black)
	is.Equal(g.Playing(), PlayStateWon)
	is.Equal(g.Winner(), board.Black)

	g.Undo()
	is.Equal(g.Playing(), PlayStatePlaying)
	is.Equal(g.Winner(), board.Empty)
}

func TestEmptyBoardCenter(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 10)
	is.Equal(g.ComputeBestMove(context.Background(), time.Second), board.Point{X: 5, Y: 5})
}

func TestCompletesOwnFour(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 10)
	for x := 0; x < 4; x++ {
		g.PlaceStone(x, 5, board.Black)
	}
	g.SetPlayerOnTurn(board.Black)
	is.Equal(g.ComputeBestMove(context.Background(), time.Second), board.Point{X: 4, Y: 5})
}

func TestBlocksOpponentFour(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 10)
	for x := 0; x < 4; x++ {
		g.PlaceStone(x, 4, board.White)
	}
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.ComputeBestMove(context.Background(), time.Second), board.Point{X: 4, Y: 4})
	is.Equal(g.LastResult().Move, board.Point{X: 4, Y: 4})
}

func TestSelfPlayNeverReturnsOccupied(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 7)
	for g.Playing() == PlayStatePlaying {
		p := g.ComputeBestMove(context.Background(), 150*time.Millisecond)
		is.True(p.Valid())
		is.Equal(g.Board().At(p.X, p.Y), board.Empty)
		g.PlaceStone(p.X, p.Y, g.PlayerOnTurn())
	}
	is.True(g.Turn() >= 9)
}

func TestFullBoardNoMove(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 5)
	rows := []string{"XOXOX", "OXOXO", "OXOXO", "XOXOX", "XOXOX"}
	for y, row := range rows {
		for x, c := range row {
			side := board.Black
			if c == 'O' {
				side = board.White
			}
			g.PlaceStone(x, y, side)
		}
	}
	is.Equal(g.Playing(), PlayStateDrawn)
	is.Equal(g.ComputeBestMove(context.Background(), time.Second), board.NoPoint)
}
