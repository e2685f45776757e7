package zobrist

import (
	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a gomoku position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// There is one salt per (cell, side) pair. The side to move is not part of
// the board hash; callers fold it into table keys with SideToMove.
type Zobrist struct {
	posTable   [][2]uint64
	sideToMove [2]uint64

	boardDim int
}

// Initialize fills the tables with fresh random salts.
func (z *Zobrist) Initialize(boardDim int) {
	z.fill(boardDim, frand.Uint64n)
}

// InitializeSeeded fills the tables deterministically from seed. Two
// tables initialized with the same seed and dimension are identical.
func (z *Zobrist) InitializeSeeded(boardDim int, seed uint64) {
	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	rng := frand.NewCustom(key[:], 1024, 12)
	z.fill(boardDim, rng.Uint64n)
}

func (z *Zobrist) fill(boardDim int, next func(uint64) uint64) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = next(bignum) + 1
		}
	}
	for i := 0; i < 2; i++ {
		z.sideToMove[i] = next(bignum) + 1
	}
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

// Stone returns the salt for a stone of the given side (1 or 2) on square
// idx. It returns 0 for side 0 (an empty square).
func (z *Zobrist) Stone(idx int, side uint8) uint64 {
	if side == 0 {
		return 0
	}
	return z.posTable[idx][side-1]
}

// SideToMove returns the salt that distinguishes whose turn it is.
func (z *Zobrist) SideToMove(side uint8) uint64 {
	if side == 0 {
		return 0
	}
	return z.sideToMove[side-1]
}

// Hash computes the hash of a full position from scratch. squares holds one
// side value per cell in row-major order.
func (z *Zobrist) Hash(squares []uint8) uint64 {
	key := uint64(0)
	for i, side := range squares {
		if side == 0 {
			continue
		}
		key ^= z.posTable[i][side-1]
	}
	return key
}
