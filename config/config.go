// Package config loads engine settings from defaults, an optional YAML file,
// GOMOKU_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/search"
)

const (
	ConfigLogLevel           = "log-level"
	ConfigDebug              = "debug"
	ConfigConfigFile         = "config-file"
	ConfigCPUProfile         = "cpu-profile"
	ConfigTTSize             = "tt-size"
	ConfigTTMemoryFraction   = "tt-memory-fraction"
	ConfigMaxDepth           = "max-depth"
	ConfigTimeSafetyMargin   = "time-safety-margin"
	ConfigMaxMoveTime        = "max-move-time"
	ConfigMinMoveTime        = "min-move-time"
	ConfigDefaultTurnTimeout = "default-turn-timeout"
	ConfigZobristSeed        = "zobrist-seed"

	ConfigWeightsWin       = "weights.win"
	ConfigWeightsLiveFour  = "weights.live-four"
	ConfigWeightsDeadFour  = "weights.dead-four"
	ConfigWeightsLiveThree = "weights.live-three"
	ConfigWeightsDeadThree = "weights.dead-three"
	ConfigWeightsLiveTwo   = "weights.live-two"

	ConfigSelfplayGames        = "selfplay.games"
	ConfigSelfplayThreads      = "selfplay.threads"
	ConfigSelfplayBoardSize    = "selfplay.board-size"
	ConfigSelfplayTurnTime     = "selfplay.turn-time"
	ConfigSelfplayOpeningMoves = "selfplay.opening-moves"
	ConfigSelfplayLogFile      = "selfplay.log-file"
	ConfigSelfplaySeedsFile    = "selfplay.seeds-file"

	ConfigPuzzlesFile     = "puzzles.file"
	ConfigPuzzlesTurnTime = "puzzles.turn-time"
	ConfigPuzzlesThreads  = "puzzles.threads"
)

type Config struct {
	*viper.Viper
	args []string
}

// DefaultConfig returns a config holding only the built-in defaults. It is
// what tests and library callers use when they have no flags to parse.
func DefaultConfig() Config {
	c := Config{Viper: viper.New()}
	setDefaults(c.Viper)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigTTSize, search.DefaultTTSize)
	v.SetDefault(ConfigTTMemoryFraction, search.DefaultOptions.TTMemoryFraction)
	v.SetDefault(ConfigMaxDepth, search.DefaultMaxDepth)
	v.SetDefault(ConfigTimeSafetyMargin, search.DefaultTimeControl.SafetyMargin)
	v.SetDefault(ConfigMaxMoveTime, search.DefaultTimeControl.MaxMoveTime)
	v.SetDefault(ConfigMinMoveTime, search.DefaultTimeControl.MinMoveTime)
	v.SetDefault(ConfigDefaultTurnTimeout, 5*time.Second)
	v.SetDefault(ConfigZobristSeed, uint64(0))

	v.SetDefault(ConfigWeightsWin, eval.DefaultWeights.Win)
	v.SetDefault(ConfigWeightsLiveFour, eval.DefaultWeights.LiveFour)
	v.SetDefault(ConfigWeightsDeadFour, eval.DefaultWeights.DeadFour)
	v.SetDefault(ConfigWeightsLiveThree, eval.DefaultWeights.LiveThree)
	v.SetDefault(ConfigWeightsDeadThree, eval.DefaultWeights.DeadThree)
	v.SetDefault(ConfigWeightsLiveTwo, eval.DefaultWeights.LiveTwo)

	v.SetDefault(ConfigSelfplayGames, 10)
	v.SetDefault(ConfigSelfplayThreads, 1)
	v.SetDefault(ConfigSelfplayBoardSize, 15)
	v.SetDefault(ConfigSelfplayTurnTime, 500*time.Millisecond)
	v.SetDefault(ConfigSelfplayOpeningMoves, 2)
	v.SetDefault(ConfigSelfplayLogFile, "/tmp/gomoku-selfplay.txt")
	v.SetDefault(ConfigSelfplaySeedsFile, "")

	v.SetDefault(ConfigPuzzlesFile, "")
	v.SetDefault(ConfigPuzzlesTurnTime, time.Second)
	v.SetDefault(ConfigPuzzlesThreads, 1)
}

func flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(ConfigLogLevel, "info", "log level: debug, info, warn, error or disabled")
	fs.Bool(ConfigDebug, false, "shorthand for --log-level=debug")
	fs.String(ConfigConfigFile, "", "optional YAML file with settings")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.Int(ConfigTTSize, search.DefaultTTSize, "transposition table entries")
	fs.Float64(ConfigTTMemoryFraction, search.DefaultOptions.TTMemoryFraction,
		"cap the transposition table at this fraction of system memory (0 = no cap)")
	fs.Int(ConfigMaxDepth, search.DefaultMaxDepth, "iterative deepening depth cap")
	fs.Duration(ConfigTimeSafetyMargin, search.DefaultTimeControl.SafetyMargin,
		"time kept back from every turn budget")
	fs.Duration(ConfigMaxMoveTime, search.DefaultTimeControl.MaxMoveTime,
		"hard ceiling on the time spent on one move")
	fs.Duration(ConfigMinMoveTime, search.DefaultTimeControl.MinMoveTime,
		"least time spent on one move")
	fs.Duration(ConfigDefaultTurnTimeout, 5*time.Second,
		"turn budget used until the manager sends one")
	fs.Uint64(ConfigZobristSeed, 0, "seed for the position hash salts (0 = random)")

	fs.Int(ConfigSelfplayGames, 10, "self-play: number of games")
	fs.Int(ConfigSelfplayThreads, 1, "self-play: games played at once")
	fs.Int(ConfigSelfplayBoardSize, 15, "self-play: board size")
	fs.Duration(ConfigSelfplayTurnTime, 500*time.Millisecond, "self-play: budget per move")
	fs.Int(ConfigSelfplayOpeningMoves, 2, "self-play: random stones placed before the engines take over")
	fs.String(ConfigSelfplayLogFile, "/tmp/gomoku-selfplay.txt", "self-play: CSV move log")
	fs.String(ConfigSelfplaySeedsFile, "", "self-play: file of opening seeds, one per game")

	fs.String(ConfigPuzzlesFile, "", "puzzles: YAML suite to solve")
	fs.Duration(ConfigPuzzlesTurnTime, time.Second, "puzzles: budget per position")
	fs.Int(ConfigPuzzlesThreads, 1, "puzzles: positions solved at once")
	return fs
}

// Load parses args on top of the defaults, environment and config file.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := flagSet("gomoku")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()
	c.SetEnvPrefix("gomoku")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()

	if f := c.GetString(ConfigConfigFile); f != "" {
		c.SetConfigFile(f)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", f, err)
		}
	}
	if c.GetBool(ConfigDebug) {
		c.Set(ConfigLogLevel, "debug")
	}
	return nil
}

// Args returns the command-line arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// Weights returns the evaluator weights, validated.
func (c *Config) Weights() (eval.Weights, error) {
	w := eval.Weights{
		Win:       c.GetInt(ConfigWeightsWin),
		LiveFour:  c.GetInt(ConfigWeightsLiveFour),
		DeadFour:  c.GetInt(ConfigWeightsDeadFour),
		LiveThree: c.GetInt(ConfigWeightsLiveThree),
		DeadThree: c.GetInt(ConfigWeightsDeadThree),
		LiveTwo:   c.GetInt(ConfigWeightsLiveTwo),
	}
	if err := w.Validate(); err != nil {
		return eval.Weights{}, err
	}
	return w, nil
}

// SearchOptions returns the solver settings.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		MaxDepth:         c.GetInt(ConfigMaxDepth),
		TTSize:           c.GetInt(ConfigTTSize),
		TTMemoryFraction: c.GetFloat64(ConfigTTMemoryFraction),
		TimeControl: search.TimeControl{
			SafetyMargin: c.GetDuration(ConfigTimeSafetyMargin),
			MaxMoveTime:  c.GetDuration(ConfigMaxMoveTime),
			MinMoveTime:  c.GetDuration(ConfigMinMoveTime),
		},
	}
}

// SanitizedSettings is every setting, for logging at startup.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
