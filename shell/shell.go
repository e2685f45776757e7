package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

const DefaultShellSize = 15

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game in progress; use `new` first")
	errOccupied          = errors.New("that square is occupied")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game     *game.Game
	turnTime time.Duration
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config) *ShellController {
	return &ShellController{
		cfg:      cfg,
		turnTime: cfg.GetDuration(config.ConfigDefaultTurnTimeout),
	}
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgomoku>\033[0m ",
		HistoryFile:     "/tmp/gomoku-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func parseSide(s string) (board.Side, error) {
	switch strings.ToLower(s) {
	case "b", "black", "x":
		return board.Black, nil
	case "w", "white", "o":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("unknown side %q; use b or w", s)
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) status() string {
	g := sc.game
	switch g.Playing() {
	case game.PlayStateWon:
		return fmt.Sprintf("%s has five in a row.", g.Winner())
	case game.PlayStateDrawn:
		return "The board is full; the game is drawn."
	}
	return fmt.Sprintf("%s to move.", g.PlayerOnTurn())
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	size := DefaultShellSize
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, fmt.Errorf("bad board size %q", cmd.args[0])
		}
		size = n
	}
	g, err := game.NewGame(sc.cfg)
	if err != nil {
		return nil, err
	}
	if err := g.Init(size); err != nil {
		return nil, err
	}
	sc.game = g
	return msg(g.ToDisplayText() + sc.status()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) < 1 {
		return nil, errors.New("need a square, like 7,7")
	}
	x, y, err := parsePair(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if !sc.game.Board().InBounds(x, y) {
		return nil, fmt.Errorf("%w: %d,%d is off the board", errBadCoords, x, y)
	}
	if sc.game.Board().At(x, y) != board.Empty {
		return nil, errOccupied
	}
	side := sc.game.PlayerOnTurn()
	if len(cmd.args) > 1 {
		if side, err = parseSide(cmd.args[1]); err != nil {
			return nil, err
		}
	}
	sc.game.PlaceStone(x, y, side)
	return msg(sc.game.ToDisplayText() + sc.status()), nil
}

func (sc *ShellController) engineMove(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	budget := sc.turnTime
	if t, ok := cmd.options["time"]; ok {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
		budget = d
	}
	side := sc.game.PlayerOnTurn()
	m := sc.game.ComputeBestMove(ctx, budget)
	if m == board.NoPoint {
		return nil, errors.New("no empty square left")
	}
	sc.game.PlaceStone(m.X, m.Y, side)
	res := sc.game.LastResult()
	summary := fmt.Sprintf("%s plays %s (%s, depth %d, score %d, %d nodes, %s)\n",
		side, m, res.Source, res.Depth, res.Score, res.Nodes, res.Elapsed.Round(time.Millisecond))
	return msg(sc.game.ToDisplayText() + summary + sc.status()), nil
}

func (sc *ShellController) show() (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText() + sc.status()), nil
}

func (sc *ShellController) undo() (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	m, ok := sc.game.Undo()
	if !ok {
		return nil, errors.New("nothing to undo")
	}
	return msg(sc.game.ToDisplayText() + "Took back " + m.String() + ". " + sc.status()), nil
}

func (sc *ShellController) eval() (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	side := sc.game.PlayerOnTurn()
	return msg(fmt.Sprintf("Static evaluation for %s: %d", side, sc.game.Evaluate(side))), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb)
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(sb.String()), nil
}

// Execute runs one shell line. A nil response with a nil error means there
// is nothing to show.
func (sc *ShellController) Execute(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		if err == errNoData {
			return nil, nil
		}
		return nil, err
	}
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "play":
		return sc.play(cmd)
	case "go":
		return sc.engineMove(ctx, cmd)
	case "show", "s":
		return sc.show()
	case "undo":
		return sc.undo()
	case "eval":
		return sc.eval()
	case "help":
		return sc.help(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(line))
	return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
}

func (sc *ShellController) Loop(ctx context.Context, sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.Execute(ctx, line)
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
