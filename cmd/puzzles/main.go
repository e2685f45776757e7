// Command puzzles solves a suite of tactics positions and reports which
// ones the engine got right. Without --puzzles.file it runs the built-in
// suite.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/puzzles"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(cfg.GetString(config.ConfigLogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	var suite *puzzles.Suite
	if f := cfg.GetString(config.ConfigPuzzlesFile); f != "" {
		suite, err = puzzles.LoadFile(f)
	} else {
		suite, err = puzzles.DefaultSuite()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("loading-puzzles")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcomes, err := puzzles.Solve(ctx, cfg, suite, cfg.GetInt(config.ConfigPuzzlesThreads),
		cfg.GetDuration(config.ConfigPuzzlesTurnTime))
	if err != nil {
		log.Fatal().Err(err).Msg("solving-puzzles")
	}
	fmt.Print(puzzles.Summary(outcomes))
	for _, o := range outcomes {
		if !o.Passed {
			os.Exit(1)
		}
	}
}
