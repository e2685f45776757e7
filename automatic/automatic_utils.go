package automatic

// Engine vs engine play, for tuning weights and checking for regressions.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Report sums up a batch of self-play games.
type Report struct {
	Games       int
	BlackWins   int
	WhiteWins   int
	Draws       int
	TotalStones int

	depths []float64
	nps    []float64
}

func (rep *Report) add(res GameResult) {
	rep.Games++
	switch res.Winner {
	case board.Black:
		rep.BlackWins++
	case board.White:
		rep.WhiteWins++
	default:
		rep.Draws++
	}
	rep.TotalStones += res.Moves
	rep.depths = append(rep.depths, res.Depths...)
	rep.nps = append(rep.nps, res.NPS...)
}

func (rep *Report) DepthSummary() stats.Summary {
	return stats.Summarize(rep.depths)
}

func (rep *Report) NPSSummary() stats.Summary {
	return stats.Summarize(rep.nps)
}

func (rep *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", rep.Games)
	fmt.Fprintf(&sb, "Black wins: %d  White wins: %d  Draws: %d\n",
		rep.BlackWins, rep.WhiteWins, rep.Draws)
	pct, ci := stats.WinRate(float64(rep.BlackWins)+0.5*float64(rep.Draws), rep.Games, 95)
	fmt.Fprintf(&sb, "Black score: %.2f%% ± %.2f%% (95%% confidence)\n", pct, ci)
	if rep.Games > 0 {
		fmt.Fprintf(&sb, "Average game length: %.1f stones\n",
			float64(rep.TotalStones)/float64(rep.Games))
	}
	fmt.Fprintf(&sb, "Depth: %s\n", rep.DepthSummary())
	fmt.Fprintf(&sb, "Nodes/sec: %s\n", rep.NPSSummary())
	sb.WriteString("Depth histogram:\n")
	if err := stats.FprintHistogram(&sb, rep.depths, 10, 40); err != nil {
		fmt.Fprintf(&sb, "(histogram failed: %v)\n", err)
	}
	return sb.String()
}

// StartCompVComp plays numGames games on threads workers and writes every
// move to logfile as CSV. Game i opens from seeds[i] when seeds has one, and
// from fresh randomness otherwise. Cancelling ctx stops queueing games; games
// already under way are abandoned and left out of the report.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	seeds [][32]byte, logfile io.Writer) (*Report, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan []string, 100)
	results := make(chan GameResult, 100)

	g, gctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	runners := make([]*GameRunner, threads)
	for i := range runners {
		r, err := NewGameRunner(logChan, cfg)
		if err != nil {
			return nil, err
		}
		runners[i] = r
	}
	for _, r := range runners {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for idx := range jobs {
				res, err := r.PlayGame(gctx, gameID(idx), seedFor(seeds, idx))
				if err != nil {
					if gctx.Err() != nil {
						// drain
						continue
					}
					return err
				}
				CVCCounter.Add(1)
				results <- res
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(logChan)
		close(results)
	}()

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%100 == 0 {
				log.Info().Msgf("Queued %v jobs", i+1)
			}
		}
		log.Info().Msg("Finished queueing all jobs.")
		return nil
	})

	g.Go(func() error {
		w := csv.NewWriter(logfile)
		var werr error
		if err := w.Write(LogHeader); err != nil {
			werr = err
		}
		// keep draining after a write error so workers never block
		for rec := range logChan {
			if werr == nil {
				werr = w.Write(rec)
			}
		}
		if werr != nil {
			return werr
		}
		w.Flush()
		return w.Error()
	})

	rep := &Report{}
	g.Go(func() error {
		for res := range results {
			rep.add(res)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return rep, err
	}
	log.Info().Int("games", rep.Games).Msg("all-games-finished")
	return rep, nil
}

func seedFor(seeds [][32]byte, idx int) [32]byte {
	if idx < len(seeds) {
		return seeds[idx]
	}
	var seed [32]byte
	frand.Read(seed[:])
	return seed
}
