package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/search"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	w, err := cfg.Weights()
	is.NoErr(err)
	is.Equal(w, eval.DefaultWeights)

	opts := cfg.SearchOptions()
	is.Equal(opts.MaxDepth, search.DefaultMaxDepth)
	is.Equal(opts.TTSize, search.DefaultTTSize)
	is.Equal(opts.TimeControl, search.DefaultTimeControl)
	is.Equal(cfg.GetDuration(ConfigDefaultTurnTimeout), 5*time.Second)
	is.Equal(cfg.GetUint64(ConfigZobristSeed), uint64(0))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--max-depth", "6", "--max-move-time", "2s", "--debug"})
	is.NoErr(err)
	is.Equal(cfg.SearchOptions().MaxDepth, 6)
	is.Equal(cfg.SearchOptions().TimeControl.MaxMoveTime, 2*time.Second)
	is.Equal(cfg.GetString(ConfigLogLevel), "debug")
}

func TestLoadSelfplayFlagsAndArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--selfplay.games", "40", "analyze", "--selfplay.turn-time", "50ms", "/tmp/games.csv"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigSelfplayGames), 40)
	is.Equal(cfg.GetDuration(ConfigSelfplayTurnTime), 50*time.Millisecond)
	is.Equal(cfg.GetInt(ConfigSelfplayThreads), 1)
	is.Equal(cfg.Args(), []string{"analyze", "/tmp/games.csv"})
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("GOMOKU_MAX_DEPTH", "7")
	t.Setenv("GOMOKU_WEIGHTS_DEAD_THREE", "150")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.SearchOptions().MaxDepth, 7)
	w, err := cfg.Weights()
	is.NoErr(err)
	is.Equal(w.DeadThree, 150)
}

func TestLoadConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "gomoku.yaml")
	err := os.WriteFile(path, []byte(`
max-depth: 9
selfplay:
  games: 40
weights:
  live-four: 50000
`), 0o644)
	is.NoErr(err)

	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config-file", path, "--max-depth", "4"}))
	// flags beat the file
	is.Equal(cfg.SearchOptions().MaxDepth, 4)
	is.Equal(cfg.GetInt(ConfigSelfplayGames), 40)
	w, err := cfg.Weights()
	is.NoErr(err)
	is.Equal(w.LiveFour, 50000)
	is.Equal(w.DeadFour, eval.DefaultWeights.DeadFour)
}

func TestMissingConfigFile(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--config-file", filepath.Join(t.TempDir(), "nope.yaml")})
	is.True(err != nil)
}

func TestBadWeights(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Set(ConfigWeightsLiveFour, 10)
	_, err := cfg.Weights()
	is.True(errors.Is(err, eval.ErrWeightOrder))
}
