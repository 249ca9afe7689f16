// Package grid implements the fixed-size occupancy board that pieces are placed on.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of rows and columns of every grid.
const Size = 10

// Cell values. Every cell of a grid holds exactly one of them.
const (
	Empty  uint8 = 0
	Filled uint8 = 1
)

// ErrOutOfRange is returned when a coordinate falls outside [0, Size).
var ErrOutOfRange = errors.New("coordinate out of range")

// Cells is a value copy of the board, indexed [row][col].
type Cells [Size][Size]uint8

// Grid is a Size×Size binary occupancy matrix.
// The zero value is an empty grid ready to use.
type Grid struct {
	cells Cells
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{}
}

// FromCells returns a grid holding a copy of cells. Any non-zero value is treated as filled.
func FromCells(cells Cells) *Grid {
	g := New()
	for row := range Size {
		for col := range Size {
			if cells[row][col] != Empty {
				g.cells[row][col] = Filled
			}
		}
	}
	return g
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func checkBounds(row, col int) error {
	if !InBounds(row, col) {
		return fmt.Errorf("cell (%d, %d): %w", row, col, ErrOutOfRange)
	}
	return nil
}

// IsOccupied reports whether the cell at (row, col) is filled.
func (g *Grid) IsOccupied(row, col int) (bool, error) {
	if err := checkBounds(row, col); err != nil {
		return false, err
	}
	return g.cells[row][col] == Filled, nil
}

// Occupy marks the cell at (row, col) as filled.
// The caller is responsible for checking that the cell is in range and empty.
func (g *Grid) Occupy(row, col int) {
	g.cells[row][col] = Filled
}

// ClearRow empties every cell of the given row. A row outside [0, Size) is ignored.
func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= Size {
		return
	}
	for col := range Size {
		g.cells[row][col] = Empty
	}
}

// ClearCol empties every cell of the given column. A column outside [0, Size) is ignored.
func (g *Grid) ClearCol(col int) {
	if col < 0 || col >= Size {
		return
	}
	for row := range Size {
		g.cells[row][col] = Empty
	}
}

// IsRowFull reports whether all cells of the row are filled. It is false for
// a row outside [0, Size).
func (g *Grid) IsRowFull(row int) bool {
	if row < 0 || row >= Size {
		return false
	}
	for col := range Size {
		if g.cells[row][col] != Filled {
			return false
		}
	}
	return true
}

// IsColFull reports whether all cells of the column are filled. It is false
// for a column outside [0, Size).
func (g *Grid) IsColFull(col int) bool {
	if col < 0 || col >= Size {
		return false
	}
	for row := range Size {
		if g.cells[row][col] != Filled {
			return false
		}
	}
	return true
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	g.cells = Cells{}
}

// FilledCount returns the number of filled cells.
func (g *Grid) FilledCount() int {
	n := 0
	for row := range Size {
		for col := range Size {
			if g.cells[row][col] == Filled {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a copy of the cells that the caller may keep.
func (g *Grid) Snapshot() Cells {
	return g.cells
}

// String renders the grid one row per line, '#' for filled and '.' for empty.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(Size * (Size + 1))
	for row := range Size {
		for col := range Size {
			if g.cells[row][col] == Filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse builds a grid from the String format. Blank lines and surrounding
// whitespace are ignored; missing trailing rows are left empty.
func Parse(s string) (*Grid, error) {
	g := New()
	row := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if row >= Size {
			return nil, fmt.Errorf("parse grid: more than %d rows", Size)
		}
		if len(line) != Size {
			return nil, fmt.Errorf("parse grid: row %d has %d cells, want %d", row, len(line), Size)
		}
		for col, ch := range line {
			switch ch {
			case '#':
				g.cells[row][col] = Filled
			case '.':
			default:
				return nil, fmt.Errorf("parse grid: row %d col %d: unexpected %q", row, col, ch)
			}
		}
		row++
	}
	return g, nil
}
