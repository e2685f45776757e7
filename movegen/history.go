package movegen

import "github.com/domino14/gomoku/board"

// HistoryTable accumulates, per side and square, depth² for every cutoff the
// square caused.
type HistoryTable struct {
	scores [2][]int
}

func NewHistoryTable(dim int) *HistoryTable {
	h := &HistoryTable{}
	h.Reset(dim)
	return h
}

// Reset zeroes the table, reallocating it if the board size changed.
func (h *HistoryTable) Reset(dim int) {
	for i := range h.scores {
		if len(h.scores[i]) != dim*dim {
			h.scores[i] = make([]int, dim*dim)
		} else {
			clear(h.scores[i])
		}
	}
}

func (h *HistoryTable) Add(side board.Side, idx, depth int) {
	if side == board.Empty || idx < 0 || idx >= len(h.scores[0]) {
		return
	}
	h.scores[side-1][idx] += depth * depth
}

func (h *HistoryTable) Score(side board.Side, idx int) int {
	if side == board.Empty || idx < 0 || idx >= len(h.scores[0]) {
		return 0
	}
	return h.scores[side-1][idx]
}
