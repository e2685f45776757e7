package movegen

import "github.com/domino14/gomoku/board"

// MaxKillerPly bounds the plies that keep killer moves. Deeper plies just
// go without.
const MaxKillerPly = 128

// KillerTable holds, per ply, the two most recent squares that caused a
// beta cutoff there.
type KillerTable struct {
	killers [MaxKillerPly][2]board.Point
}

func NewKillerTable() *KillerTable {
	k := &KillerTable{}
	k.Clear()
	return k
}

// Store makes p the first killer at ply, demoting the old first killer.
// Storing the current first killer again is a no-op.
func (k *KillerTable) Store(ply int, p board.Point) {
	if ply < 0 || ply >= MaxKillerPly {
		return
	}
	if k.killers[ply][0] != p {
		k.killers[ply][1] = k.killers[ply][0]
		k.killers[ply][0] = p
	}
}

func (k *KillerTable) At(ply int) [2]board.Point {
	if ply < 0 || ply >= MaxKillerPly {
		return [2]board.Point{board.NoPoint, board.NoPoint}
	}
	return k.killers[ply]
}

// Clear the killer moves table.
func (k *KillerTable) Clear() {
	for ply := 0; ply < MaxKillerPly; ply++ {
		k.killers[ply][0] = board.NoPoint
		k.killers[ply][1] = board.NoPoint
	}
}
