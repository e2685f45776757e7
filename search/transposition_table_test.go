package search

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/eval"
)

func TestTTableEntry(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(1024, 0)
	is.Equal(tt.Capacity(), 1024)

	tt.store(9409641586937047728, newEntry(12, 23, TTUpper, 40))

	te, ok := tt.lookup(9409641586937047728)
	is.True(ok)
	is.True(te.valid())
	is.Equal(te.depth, uint8(23))
	is.Equal(te.flag, uint8(TTUpper))
	is.Equal(te.score, int32(12))
	is.Equal(te.bestIdx(), 40)

	is.Equal(tt.Stats().T2Collisions, uint64(0))
	// same slot, different position
	_, ok = tt.lookup(9409641586937047728 + 1024)
	is.True(!ok)
	is.Equal(tt.Stats().T2Collisions, uint64(1))

	// an empty slot is a plain miss
	_, ok = tt.lookup(9409641586937047728 + 1)
	is.True(!ok)
	stats := tt.Stats()
	is.Equal(stats.Lookups, uint64(3))
	is.Equal(stats.Hits, uint64(1))
	is.Equal(stats.T2Collisions, uint64(1))
	is.Equal(stats.Created, uint64(1))
}

func TestTTableOverwrites(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(16, 0)
	tt.store(3, newEntry(5, 1, TTExact, -1))
	tt.store(19, newEntry(7, 2, TTLower, 2))

	_, ok := tt.lookup(3)
	is.True(!ok)
	te, ok := tt.lookup(19)
	is.True(ok)
	is.Equal(te.score, int32(7))

	tt.Reset(16, 0)
	_, ok = tt.lookup(19)
	is.True(!ok)
	is.Equal(tt.Stats().Created, uint64(0))
}

func TestTTableNoBestMove(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(16, 0)
	tt.store(4, newEntry(0, 3, TTExact, -1))
	te, ok := tt.lookup(4)
	is.True(ok)
	is.Equal(te.bestIdx(), -1)
}

func TestTTableMemoryClamp(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(1<<20, 1e-12)
	is.True(tt.Capacity() >= 1)
	is.True(tt.Capacity() <= 1<<20)
}

func TestWinScoresArePlyRelative(t *testing.T) {
	is := is.New(t)
	// a win found 7 plies from the root, stored at a node 3 plies deep,
	// read back at a node 5 plies deep.
	win := eval.WinScore - 7
	stored := scoreToTT(win, 3)
	is.Equal(scoreFromTT(stored, 3), win)
	is.Equal(scoreFromTT(stored, 5), eval.WinScore-9)

	is.Equal(scoreFromTT(scoreToTT(-win, 3), 3), -win)
	is.Equal(scoreToTT(1500, 3), 1500)
	is.Equal(scoreFromTT(-1500, 8), -1500)
}
