package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/stats"
)

var errBadLogHeader = errors.New("not a self-play move log")

// AnalyzeLogFile reads a CSV move log written by StartCompVComp and
// summarizes it per side.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyzeLog(file)
}

func analyzeLog(in io.Reader) (string, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(LogHeader)

	header, err := r.Read()
	if err != nil {
		return "", err
	}
	if header[0] != LogHeader[0] {
		return "", errBadLogHeader
	}
	col := map[string]int{}
	for i, h := range header {
		col[h] = i
	}

	depths := map[string]*stats.Statistic{"black": {}, "white": {}}
	times := map[string]*stats.Statistic{"black": {}, "white": {}}
	winners := map[string]string{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		side := record[col["side"]]
		d, ok := depths[side]
		if !ok {
			return "", fmt.Errorf("unknown side %q", side)
		}
		depth, err := strconv.Atoi(record[col["depth"]])
		if err != nil {
			return "", err
		}
		ms, err := strconv.Atoi(record[col["elapsedms"]])
		if err != nil {
			return "", err
		}
		d.Push(float64(depth))
		times[side].Push(float64(ms))
		winners[record[col["gameID"]]] = record[col["winner"]]
	}

	tally := lo.CountValues(lo.Values(winners))
	games := len(winners)

	out := fmt.Sprintf("Games played: %d\n", games)
	for _, w := range []string{"black", "white", "empty"} {
		label := w + " wins"
		if w == "empty" {
			label = "draws"
		}
		pct := 0.0
		if games > 0 {
			pct = 100.0 * float64(tally[w]) / float64(games)
		}
		out += fmt.Sprintf("%v: %d (%.3f%%)\n", label, tally[w], pct)
	}
	for _, side := range []string{"black", "white"} {
		out += fmt.Sprintf("%v moves: %d  Mean depth: %.3f  Stdev: %.3f  Max depth: %.0f  Mean time: %.1fms\n",
			side, depths[side].Iterations(), depths[side].Mean(), depths[side].Stdev(),
			depths[side].Max(), times[side].Mean())
	}
	return out, nil
}
