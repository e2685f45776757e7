package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

const (
	DefaultPbrainSize = 20
	// estimated moves left when only the match clock is known
	movesLeftEstimate = 25
	minTurnBudget     = 100 * time.Millisecond

	AboutString = `name="gomoku-go", version="1.0", author="domino14", country="US"`
)

var (
	errNotStarted = errors.New("no game started; send START first")
	errBadCoords  = errors.New("bad coordinates")
)

// pbrain speaks the Piskvork brain protocol. The brain always plays black;
// the manager's stones are white.
type pbrain struct {
	g   *game.Game
	cfg *config.Config
	out io.Writer

	// turnBudget is the per-move budget in force; zero means unlimited, in
	// which case the match clock decides.
	turnBudget time.Duration
	matchTime  time.Duration

	lines    <-chan string
	quitting bool
}

// PbrainLoop reads protocol commands from in until END or end of input and
// writes replies to out. An END line cancels a search that is in progress so
// the brain can exit promptly.
func PbrainLoop(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	g, err := game.NewGame(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	scanner := bufio.NewScanner(in)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.EqualFold(line, "END") {
				cancel()
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
	}()

	p := &pbrain{
		g:          g,
		cfg:        cfg,
		out:        out,
		turnBudget: cfg.GetDuration(config.ConfigDefaultTurnTimeout),
		lines:      lines,
	}
	for line := range lines {
		if line == "" {
			continue
		}
		if err := p.processCommand(ctx, line); err != nil {
			p.errout(err)
		}
		if p.quitting {
			break
		}
	}
	return nil
}

func (p *pbrain) send(args ...any) {
	fmt.Fprintln(p.out, args...)
}

func (p *pbrain) errout(err error) {
	p.send("ERROR", err.Error())
}

func (p *pbrain) processCommand(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	cmd := strings.ToUpper(fields[0])
	args := fields[1:]
	log.Debug().Str("cmd", cmd).Strs("args", args).Msg("pbrain-command")

	switch cmd {
	case "START":
		size := DefaultPbrainSize
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				size = n
			}
		}
		return p.start(size)
	case "RECTSTART":
		if len(args) < 1 {
			return errors.New("RECTSTART needs width,height")
		}
		w, h, err := parsePair(args[0])
		if err != nil {
			return err
		}
		if w != h {
			return errors.New("rectangular boards are not supported")
		}
		return p.start(w)
	case "RESTART":
		if !p.g.Initialized() {
			return errNotStarted
		}
		p.g.Restart()
		p.send("OK")
	case "TURN":
		if !p.g.Initialized() {
			return errNotStarted
		}
		if len(args) < 1 {
			return errBadCoords
		}
		x, y, err := parsePair(args[0])
		if err != nil {
			return err
		}
		p.g.PlaceStone(x, y, board.White)
		p.play(ctx)
	case "BEGIN":
		if !p.g.Initialized() {
			return errNotStarted
		}
		p.play(ctx)
	case "BOARD":
		if !p.g.Initialized() {
			return errNotStarted
		}
		p.readBoard()
		p.play(ctx)
	case "TAKEBACK":
		if !p.g.Initialized() {
			return errNotStarted
		}
		if len(args) < 1 {
			return errBadCoords
		}
		x, y, err := parsePair(args[0])
		if err != nil {
			return err
		}
		p.g.PlaceStone(x, y, board.Empty)
		p.send("OK")
	case "INFO":
		p.info(args)
	case "END":
		p.quitting = true
	case "ABOUT":
		p.send(AboutString)
	default:
		p.send("UNKNOWN", "command not implemented")
	}
	return nil
}

func (p *pbrain) start(size int) error {
	if err := p.g.Init(size); err != nil {
		if errors.Is(err, game.ErrUnsupportedSize) {
			return errors.New("unsupported size")
		}
		return err
	}
	p.send("OK")
	return nil
}

// readBoard consumes "x,y,who" lines up to DONE. who is 1 for the brain's
// own stones and 2 for the opponent's; anything unparseable is skipped.
func (p *pbrain) readBoard() {
	p.g.Restart()
	for line := range p.lines {
		if strings.EqualFold(line, "DONE") {
			break
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			continue
		}
		vals := make([]int, 3)
		ok := true
		for i, s := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		switch vals[2] {
		case 1:
			p.g.PlaceStone(vals[0], vals[1], board.Black)
		case 2:
			p.g.PlaceStone(vals[0], vals[1], board.White)
		}
	}
}

// play picks a move for the brain, puts it on the board and reports it.
func (p *pbrain) play(ctx context.Context) {
	p.g.SetPlayerOnTurn(board.Black)
	m := p.g.ComputeBestMove(ctx, p.budget())
	if m == board.NoPoint {
		p.send("ERROR", "board is full")
		return
	}
	p.g.PlaceStone(m.X, m.Y, board.Black)
	res := p.g.LastResult()
	log.Debug().Str("move", m.String()).Int("depth", res.Depth).
		Str("source", res.Source.String()).Msg("pbrain-move")
	p.send(m.String())
}

func (p *pbrain) budget() time.Duration {
	if p.turnBudget > 0 {
		return p.turnBudget
	}
	return p.cfg.GetDuration(config.ConfigDefaultTurnTimeout)
}

// info applies "key value" pairs. Times are in milliseconds. With no per-turn
// limit the match clock is spread over an estimated number of remaining
// moves; otherwise the clock only caps the turn budget.
func (p *pbrain) info(args []string) {
	for i := 0; i+1 < len(args); i += 2 {
		key, val := strings.ToLower(args[i]), args[i+1]
		ms, err := strconv.Atoi(val)
		if err != nil {
			continue
		}
		d := time.Duration(ms) * time.Millisecond
		switch key {
		case "timeout_turn":
			p.turnBudget = d
		case "timeout_match":
			p.matchTime = d
		case "time_left":
			if p.turnBudget == 0 {
				p.turnBudget = max(d/movesLeftEstimate, minTurnBudget)
			} else if d < p.turnBudget {
				p.turnBudget = d
			}
		}
	}
	log.Debug().Dur("turn-budget", p.turnBudget).Dur("match-time", p.matchTime).Msg("pbrain-info")
}

func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errBadCoords, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errBadCoords, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errBadCoords, s)
	}
	return x, y, nil
}
