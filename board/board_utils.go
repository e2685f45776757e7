package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadPlaintext = errors.New("plaintext board does not match board dimension")

// ToDisplayText renders the board with column and row indices, X for black
// and O for white.
func (b *Board) ToDisplayText() string {
	var str strings.Builder
	n := b.dim
	str.WriteString("\n    ")
	for i := 0; i < n; i++ {
		str.WriteString(fmt.Sprintf("%-2d", i%100))
	}
	str.WriteString("\n    " + strings.Repeat("-", n*2) + "\n")
	for y := 0; y < n; y++ {
		str.WriteString(fmt.Sprintf("%2d| ", y))
		for x := 0; x < n; x++ {
			str.WriteString(b.squares[y*n+x].DisplayString() + " ")
		}
		str.WriteString("|\n")
	}
	str.WriteString("    " + strings.Repeat("-", n*2) + "\n")
	return str.String()
}

// SetFromPlaintext clears the board and fills it from rows of '.', 'X' and
// 'O' characters. Whitespace inside a row is ignored, and blank lines are
// skipped, so the output of a plain grid dump can be pasted back in.
func (b *Board) SetFromPlaintext(text string) error {
	rows := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != b.dim {
		return fmt.Errorf("%w: got %d rows, want %d", ErrBadPlaintext, len(rows), b.dim)
	}
	b.Clear()
	for y, row := range rows {
		if len(row) != b.dim {
			return fmt.Errorf("%w: row %d has %d squares", ErrBadPlaintext, y, len(row))
		}
		for x, c := range row {
			switch c {
			case 'X', 'x':
				b.SetCell(x, y, Black)
			case 'O', 'o':
				b.SetCell(x, y, White)
			case '.':
			default:
				return fmt.Errorf("%w: unexpected %q at %d,%d", ErrBadPlaintext, c, x, y)
			}
		}
	}
	return nil
}
