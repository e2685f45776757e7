package board

import "fmt"

// Side is the occupant of a square: nobody, or one of the two players.
type Side uint8

const (
	Empty Side = iota
	Black
	White
)

// Opponent returns the other player. Empty has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (s Side) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// DisplayString is the single-character rendering used by ToDisplayText.
func (s Side) DisplayString() string {
	switch s {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "."
}

// Point is a square coordinate. X is the column, Y the row.
type Point struct {
	X, Y int
}

// NoPoint is returned when there is no square to report.
var NoPoint = Point{-1, -1}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Valid is false only for NoPoint-like values.
func (p Point) Valid() bool {
	return p.X >= 0 && p.Y >= 0
}

// Directions are the four line axes: horizontal, vertical, diagonal and
// anti-diagonal. Every line on the board runs along exactly one of them.
var Directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}
