package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func runPbrain(t *testing.T, script string) []string {
	t.Helper()
	var out bytes.Buffer
	err := PbrainLoop(context.Background(), testConfig(), strings.NewReader(script), &out)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestPbrainBeginPlaysCenter(t *testing.T) {
	is := is.New(t)
	lines := runPbrain(t, "START 10\nBEGIN\nEND\n")
	is.Equal(lines, []string{"OK", "5,5"})
}

func TestPbrainBoardCompletesFive(t *testing.T) {
	is := is.New(t)
	script := "START 10\nBOARD\n0,5,1\n1,5,1\n2,5,1\n3,5,1\nDONE\nEND\n"
	lines := runPbrain(t, script)
	is.Equal(lines, []string{"OK", "4,5"})
}

func TestPbrainBoardBlocksFour(t *testing.T) {
	is := is.New(t)
	script := "START 10\nBOARD\n0,4,2\n1,4,2\n2,4,2\n3,4,2\nDONE\nEND\n"
	lines := runPbrain(t, script)
	is.Equal(lines, []string{"OK", "4,4"})
}

func TestPbrainTurnReplies(t *testing.T) {
	is := is.New(t)
	lines := runPbrain(t, "START 10\nINFO timeout_turn 300\nTURN 5,5\nEND\n")
	is.Equal(len(lines), 2)
	is.Equal(lines[0], "OK")
	x, y, err := parsePair(lines[1])
	is.NoErr(err)
	is.True(x >= 0 && x < 10 && y >= 0 && y < 10)
	is.True(lines[1] != "5,5")
}

func TestPbrainErrors(t *testing.T) {
	is := is.New(t)
	lines := runPbrain(t, "TURN 1,1\nSTART 4\nSTART 10\nTURN 1\nFOO\nRECTSTART 10,12\nEND\n")
	is.Equal(lines, []string{
		"ERROR no game started; send START first",
		"ERROR unsupported size",
		"OK",
		`ERROR bad coordinates: "1"`,
		"UNKNOWN command not implemented",
		"ERROR rectangular boards are not supported",
	})
}

func TestPbrainAboutTakebackRestart(t *testing.T) {
	is := is.New(t)
	lines := runPbrain(t, "ABOUT\nSTART\nBEGIN\nTAKEBACK 10,10\nRESTART\nEND\n")
	is.Equal(lines, []string{AboutString, "OK", "10,10", "OK", "OK"})
}

func TestPbrainStopsAtEnd(t *testing.T) {
	is := is.New(t)
	lines := runPbrain(t, "START 10\nEND\nABOUT\nBEGIN\n")
	is.Equal(lines, []string{"OK"})
}

func TestPbrainInfoBudget(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	p := &pbrain{cfg: cfg}

	is.Equal(p.budget(), 5*time.Second)

	p.info([]string{"timeout_turn", "0", "timeout_match", "100000", "time_left", "10000"})
	is.Equal(p.matchTime, 100*time.Second)
	is.Equal(p.budget(), 400*time.Millisecond)

	p.turnBudget = 0
	p.info([]string{"time_left", "1000"})
	is.Equal(p.budget(), minTurnBudget)

	p.info([]string{"timeout_turn", "5000", "time_left", "2000"})
	is.Equal(p.budget(), 2*time.Second)

	// unknown keys and junk values are ignored
	p.info([]string{"rule", "1", "time_left", "abc", "max_memory"})
	is.Equal(p.budget(), 2*time.Second)
}
