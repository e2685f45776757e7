package board

import (
	"github.com/domino14/gomoku/zobrist"
)

// MinDim is the smallest board on which five in a row fits.
const MinDim = 5

// Rect is an inclusive rectangle of squares. A Rect with MinX > MaxX is empty.
type Rect struct {
	MinX, MaxX, MinY, MaxY int
}

func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Board is a square gomoku grid. It keeps an incremental zobrist hash of the
// stones on it and the bounding box of every stone ever placed since the last
// Clear. The box only widens; removing a stone does not shrink it.
type Board struct {
	dim     int
	squares []Side
	stones  int
	hash    uint64
	bbox    Rect
	zobrist *zobrist.Zobrist
}

// NewBoard creates an empty dim x dim board. If z is nil, or was initialized
// for a different dimension, a freshly salted table is created.
func NewBoard(dim int, z *zobrist.Zobrist) *Board {
	if z == nil || z.BoardDim() != dim {
		z = &zobrist.Zobrist{}
		z.Initialize(dim)
	}
	b := &Board{dim: dim, zobrist: z}
	b.squares = make([]Side, dim*dim)
	b.Clear()
	return b
}

// Clear removes every stone and resets the hash and bounding box.
func (b *Board) Clear() {
	clear(b.squares)
	b.stones = 0
	b.hash = 0
	b.bbox = Rect{MinX: b.dim, MaxX: -1, MinY: b.dim, MaxY: -1}
}

func (b *Board) Dim() int {
	return b.dim
}

func (b *Board) Zobrist() *zobrist.Zobrist {
	return b.zobrist
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.dim && y < b.dim
}

// At returns the occupant of (x, y). Out-of-range squares read as Empty;
// use InBounds to tell them apart.
func (b *Board) At(x, y int) Side {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.squares[y*b.dim+x]
}

// SetCell places side on (x, y), or clears the square if side is Empty.
// Out-of-range coordinates and writes that would not change the square are
// ignored.
func (b *Board) SetCell(x, y int, side Side) {
	if !b.InBounds(x, y) || side > White {
		return
	}
	idx := y*b.dim + x
	old := b.squares[idx]
	if old == side {
		return
	}
	if old != Empty {
		b.hash ^= b.zobrist.Stone(idx, uint8(old))
		b.stones--
	}
	b.squares[idx] = side
	if side == Empty {
		return
	}
	b.hash ^= b.zobrist.Stone(idx, uint8(side))
	b.stones++
	if x < b.bbox.MinX {
		b.bbox.MinX = x
	}
	if x > b.bbox.MaxX {
		b.bbox.MaxX = x
	}
	if y < b.bbox.MinY {
		b.bbox.MinY = y
	}
	if y > b.bbox.MaxY {
		b.bbox.MaxY = y
	}
}

// Hash is the XOR of the salts of every stone currently on the board.
func (b *Board) Hash() uint64 {
	return b.hash
}

// RecomputeHash hashes the board from scratch.
func (b *Board) RecomputeHash() uint64 {
	sq := make([]uint8, len(b.squares))
	for i, s := range b.squares {
		sq[i] = uint8(s)
	}
	return b.zobrist.Hash(sq)
}

// IsEmpty is true when there are no stones on the board.
func (b *Board) IsEmpty() bool {
	return b.stones == 0
}

func (b *Board) NumStones() int {
	return b.stones
}

func (b *Board) NumEmpty() int {
	return len(b.squares) - b.stones
}

// IsFull is true when there is no empty square left.
func (b *Board) IsFull() bool {
	return b.stones == len(b.squares)
}

// Bounds returns the bounding box of the stones placed since the last Clear.
func (b *Board) Bounds() Rect {
	return b.bbox
}

// Expanded returns the bounding box widened by margin on every side and
// clamped to the board. It is empty if no stone was ever placed.
func (b *Board) Expanded(margin int) Rect {
	if b.bbox.Empty() {
		return b.bbox
	}
	return Rect{
		MinX: max(0, b.bbox.MinX-margin),
		MaxX: min(b.dim-1, b.bbox.MaxX+margin),
		MinY: max(0, b.bbox.MinY-margin),
		MaxY: min(b.dim-1, b.bbox.MaxY+margin),
	}
}

func (b *Board) Center() Point {
	return Point{b.dim / 2, b.dim / 2}
}

// Index maps a point to its row-major square index.
func (b *Board) Index(p Point) int {
	return p.Y*b.dim + p.X
}

// PointAt maps a row-major square index back to its point.
func (b *Board) PointAt(idx int) Point {
	return Point{idx % b.dim, idx / b.dim}
}

// CountDir counts consecutive stones of side starting at the square one step
// from (x, y) in direction (dx, dy). At most limit stones are counted.
func (b *Board) CountDir(x, y, dx, dy int, side Side, limit int) int {
	n := 0
	for i := 1; i <= limit; i++ {
		nx, ny := x+i*dx, y+i*dy
		if !b.InBounds(nx, ny) || b.squares[ny*b.dim+nx] != side {
			break
		}
		n++
	}
	return n
}

// IsFive reports whether a stone of side on (x, y) is part of a line of five
// or more stones of that side. The square itself is assumed to hold side.
func (b *Board) IsFive(x, y int, side Side) bool {
	for _, d := range Directions {
		n := 1 + b.CountDir(x, y, d[0], d[1], side, 4) +
			b.CountDir(x, y, -d[0], -d[1], side, 4)
		if n >= 5 {
			return true
		}
	}
	return false
}

// NearestEmptyToCenter returns the empty square with the smallest Manhattan
// distance to the center, scanning row-major so ties resolve the same way
// every time. It returns NoPoint on a full board.
func (b *Board) NearestEmptyToCenter() Point {
	c := b.Center()
	best := NoPoint
	bestDist := -1
	for y := 0; y < b.dim; y++ {
		for x := 0; x < b.dim; x++ {
			if b.squares[y*b.dim+x] != Empty {
				continue
			}
			d := abs(x-c.X) + abs(y-c.Y)
			if bestDist < 0 || d < bestDist {
				best = Point{x, y}
				bestDist = d
			}
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
