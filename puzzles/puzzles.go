// Package puzzles loads suites of positions with known good moves and checks
// that the engine finds them.
package puzzles

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

//go:embed suites/tactics.yaml
var defaultSuite []byte

var ErrBadPuzzle = errors.New("bad puzzle")

type Puzzle struct {
	Name    string   `yaml:"name"`
	Size    int      `yaml:"size"`
	ToMove  string   `yaml:"to-move"`
	Black   []string `yaml:"black"`
	White   []string `yaml:"white"`
	Answers []string `yaml:"answers"`
}

type Suite struct {
	Puzzles []Puzzle `yaml:"puzzles"`
}

// Outcome is the engine's answer to one puzzle.
type Outcome struct {
	Name    string
	ID      string
	Move    board.Point
	Passed  bool
	Source  string
	Depth   int
	Elapsed time.Duration
}

// DefaultSuite returns the built-in tactics suite.
func DefaultSuite() (*Suite, error) {
	return Load(strings.NewReader(string(defaultSuite)))
}

func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML suite and validates every puzzle in it.
func Load(r io.Reader) (*Suite, error) {
	s := &Suite{}
	if err := yaml.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("decoding puzzle suite: %w", err)
	}
	for i := range s.Puzzles {
		if err := s.Puzzles[i].Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parseSquare(s string) (board.Point, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return board.NoPoint, fmt.Errorf("%w: square %q is not x,y", ErrBadPuzzle, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return board.NoPoint, fmt.Errorf("%w: square %q", ErrBadPuzzle, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return board.NoPoint, fmt.Errorf("%w: square %q", ErrBadPuzzle, s)
	}
	return board.Point{X: x, Y: y}, nil
}

func parseSquares(ss []string) ([]board.Point, error) {
	pts := make([]board.Point, 0, len(ss))
	for _, s := range ss {
		p, err := parseSquare(s)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func (p *Puzzle) side() board.Side {
	if strings.EqualFold(p.ToMove, "white") {
		return board.White
	}
	return board.Black
}

// Validate checks that every square is on the board, no square holds two
// stones, and there is at least one empty answer square.
func (p *Puzzle) Validate() error {
	if p.Size < board.MinDim {
		return fmt.Errorf("%w: %s: size %d", ErrBadPuzzle, p.Name, p.Size)
	}
	switch strings.ToLower(p.ToMove) {
	case "", "black", "white":
	default:
		return fmt.Errorf("%w: %s: to-move %q", ErrBadPuzzle, p.Name, p.ToMove)
	}
	black, err := parseSquares(p.Black)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	white, err := parseSquares(p.White)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	answers, err := parseSquares(p.Answers)
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	if len(answers) == 0 {
		return fmt.Errorf("%w: %s: no answers", ErrBadPuzzle, p.Name)
	}
	stones := append(black, white...)
	if len(lo.Uniq(stones)) != len(stones) {
		return fmt.Errorf("%w: %s: a square holds two stones", ErrBadPuzzle, p.Name)
	}
	for _, pt := range append(stones, answers...) {
		if pt.X < 0 || pt.Y < 0 || pt.X >= p.Size || pt.Y >= p.Size {
			return fmt.Errorf("%w: %s: %s is off the board", ErrBadPuzzle, p.Name, pt)
		}
	}
	if lo.Some(answers, stones) {
		return fmt.Errorf("%w: %s: an answer square is occupied", ErrBadPuzzle, p.Name)
	}
	return nil
}

// ID identifies the position, independent of the puzzle's name and of the
// order its stones are listed in.
func (p *Puzzle) ID() string {
	black := slices.Sorted(slices.Values(p.Black))
	white := slices.Sorted(slices.Values(p.White))
	key := fmt.Sprintf("%d|%s|%s|%s", p.Size, p.side(),
		strings.Join(black, " "), strings.Join(white, " "))
	return strconv.FormatUint(xxhash.Sum64String(key), 16)
}

// Setup puts the puzzle position on g, resizing its board if needed.
func (p *Puzzle) Setup(g *game.Game) error {
	if g.Size() != p.Size {
		if err := g.Init(p.Size); err != nil {
			return err
		}
	} else {
		g.Restart()
	}
	black, err := parseSquares(p.Black)
	if err != nil {
		return err
	}
	white, err := parseSquares(p.White)
	if err != nil {
		return err
	}
	for _, pt := range black {
		g.PlaceStone(pt.X, pt.Y, board.Black)
	}
	for _, pt := range white {
		g.PlaceStone(pt.X, pt.Y, board.White)
	}
	g.SetPlayerOnTurn(p.side())
	return nil
}

// Accepts reports whether m is one of the puzzle's answers.
func (p *Puzzle) Accepts(m board.Point) bool {
	answers, err := parseSquares(p.Answers)
	if err != nil {
		return false
	}
	return lo.Contains(answers, m)
}

// Solve runs every puzzle in the suite, threads at a time, giving the engine
// budget per position. Outcomes come back in suite order.
func Solve(ctx context.Context, cfg *config.Config, s *Suite, threads int,
	budget time.Duration) ([]Outcome, error) {

	outcomes := make([]Outcome, len(s.Puzzles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for i := range s.Puzzles {
		p := &s.Puzzles[i]
		g.Go(func() error {
			eng, err := game.NewGame(cfg)
			if err != nil {
				return err
			}
			if err := p.Setup(eng); err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}
			m := eng.ComputeBestMove(gctx, budget)
			res := eng.LastResult()
			outcomes[i] = Outcome{
				Name:    p.Name,
				ID:      p.ID(),
				Move:    m,
				Passed:  p.Accepts(m),
				Source:  res.Source.String(),
				Depth:   res.Depth,
				Elapsed: res.Elapsed,
			}
			log.Debug().Str("puzzle", p.Name).Str("move", m.String()).
				Bool("passed", outcomes[i].Passed).Msg("puzzle-solved")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summary renders one line per outcome and a pass count.
func Summary(outcomes []Outcome) string {
	var sb strings.Builder
	for _, o := range outcomes {
		mark := "PASS"
		if !o.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(&sb, "[%s] %-30s %-16s found %-6s (%s, depth %d, %s)\n",
			mark, o.Name, o.ID, o.Move, o.Source, o.Depth, o.Elapsed.Round(time.Millisecond))
	}
	passed := lo.CountBy(outcomes, func(o Outcome) bool { return o.Passed })
	fmt.Fprintf(&sb, "RESULT: %d/%d puzzles passed\n", passed, len(outcomes))
	return sb.String()
}
