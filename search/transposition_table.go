package search

import (
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

// DefaultTTSize is the number of entries used when nothing is configured.
const DefaultTTSize = 1 << 20

// 24 bytes (entrySize), after alignment.
const entrySize = 24

type TableEntry struct {
	hash  uint64
	score int32
	// cell index of the best move plus one; 0 means no move was recorded.
	move  int32
	depth uint8
	flag  uint8
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

// bestIdx returns the stored best cell index, or -1.
func (t TableEntry) bestIdx() int {
	return int(t.move) - 1
}

func newEntry(score, depth int, flag uint8, bestIdx int) TableEntry {
	return TableEntry{
		score: int32(score),
		depth: uint8(min(depth, 255)),
		flag:  flag,
		move:  int32(bestIdx + 1),
	}
}

// TranspositionTable is a fixed array of entries indexed by hash modulo its
// capacity. A store always replaces whatever is in the slot. It belongs to
// one search goroutine.
type TranspositionTable struct {
	table        []TableEntry
	created      uint64
	lookups      uint64
	hits         uint64
	t2collisions uint64
}

// TTStats is a snapshot of the table's counters.
type TTStats struct {
	Created      uint64
	Lookups      uint64
	Hits         uint64
	T2Collisions uint64
}

func (t *TranspositionTable) lookup(zval uint64) (TableEntry, bool) {
	t.lookups++
	if len(t.table) == 0 {
		return TableEntry{}, false
	}
	entry := t.table[zval%uint64(len(t.table))]
	if !entry.valid() {
		return TableEntry{}, false
	}
	if entry.hash != zval {
		// Another unrelated position lives in this slot.
		t.t2collisions++
		return TableEntry{}, false
	}
	t.hits++
	return entry, true
}

func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	if len(t.table) == 0 {
		return
	}
	tentry.hash = zval
	// just overwrite whatever is there.
	t.table[zval%uint64(len(t.table))] = tentry
	t.created++
}

// Reset clears the table, sizing it to the requested number of entries
// clamped to fractionOfMemory of the system memory. A non-positive fraction
// disables the clamp. The backing array is reused when the size is unchanged.
func (t *TranspositionTable) Reset(numElems int, fractionOfMemory float64) {
	if numElems < 1 {
		numElems = DefaultTTSize
	}
	totalMem := memory.TotalMemory()
	if fractionOfMemory > 0 && totalMem > 0 {
		maxElems := int(fractionOfMemory * float64(totalMem) / entrySize)
		numElems = max(1, min(numElems, maxElems))
	}
	reset := false
	if len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	log.Debug().Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created, t.lookups, t.hits, t.t2collisions = 0, 0, 0, 0
}

func (t *TranspositionTable) Capacity() int {
	return len(t.table)
}

func (t *TranspositionTable) Stats() TTStats {
	return TTStats{
		Created:      t.created,
		Lookups:      t.lookups,
		Hits:         t.hits,
		T2Collisions: t.t2collisions,
	}
}
