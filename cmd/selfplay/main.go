// Command selfplay pits the engine against itself and reports the results.
// Run "selfplay analyze FILE" to summarize an earlier move log instead.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/config"
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

	if args := cfg.Args(); len(args) == 2 && args[0] == "analyze" {
		out, err := automatic.AnalyzeLogFile(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("analyze-failed")
		}
		fmt.Print(out)
		return
	}

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	var seeds [][32]byte
	if sf := cfg.GetString(config.ConfigSelfplaySeedsFile); sf != "" {
		if _, err := os.Stat(sf); err == nil {
			seeds, err = automatic.LoadSeeds(sf)
			if err != nil {
				log.Fatal().Err(err).Msg("loading-seeds")
			}
			log.Info().Int("seeds", len(seeds)).Str("file", sf).Msg("loaded-seeds")
		} else {
			seeds = automatic.GenerateSeeds(cfg.GetInt(config.ConfigSelfplayGames))
			if err := automatic.SaveSeeds(seeds, sf); err != nil {
				log.Fatal().Err(err).Msg("saving-seeds")
			}
			log.Info().Int("seeds", len(seeds)).Str("file", sf).Msg("saved-seeds")
		}
	}

	logfile := cfg.GetString(config.ConfigSelfplayLogFile)
	f, err := os.Create(logfile)
	if err != nil {
		log.Fatal().Err(err).Msg("creating-log-file")
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := automatic.StartCompVComp(ctx, cfg,
		cfg.GetInt(config.ConfigSelfplayGames), cfg.GetInt(config.ConfigSelfplayThreads),
		seeds, f)
	if err != nil {
		log.Error().Err(err).Msg("self-play-failed")
	}
	if rep != nil {
		fmt.Print(rep.String())
	}
	log.Info().Str("log", logfile).Msg("done")
}
