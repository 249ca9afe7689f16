// Package piece holds the fixed catalog of block shapes and deals them out in batches.
package piece

import "strings"

// Shape is an immutable binary matrix describing which subcells of a piece are filled.
// Orientation is fixed; shapes are never rotated or mirrored.
type Shape struct {
	name  string
	rows  int
	cols  int
	cells []bool
}

// NewShape builds a shape from a row-major matrix of 0/1 values.
// It panics on an empty or ragged matrix since shapes are only built from literals.
func NewShape(name string, matrix [][]uint8) Shape {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		panic("piece: shape " + name + " has no rows or columns")
	}
	s := Shape{
		name:  name,
		rows:  len(matrix),
		cols:  len(matrix[0]),
		cells: make([]bool, 0, len(matrix)*len(matrix[0])),
	}
	for _, row := range matrix {
		if len(row) != s.cols {
			panic("piece: shape " + name + " is ragged")
		}
		for _, v := range row {
			s.cells = append(s.cells, v != 0)
		}
	}
	return s
}

// Name returns the catalog name of the shape.
func (s Shape) Name() string { return s.name }

// Rows returns the height of the shape's bounding box.
func (s Shape) Rows() int { return s.rows }

// Cols returns the width of the shape's bounding box.
func (s Shape) Cols() int { return s.cols }

// Filled reports whether the subcell at (r, c) of the bounding box is filled.
func (s Shape) Filled(r, c int) bool {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return false
	}
	return s.cells[r*s.cols+c]
}

// FilledCount returns the number of filled subcells.
func (s Shape) FilledCount() int {
	n := 0
	for _, filled := range s.cells {
		if filled {
			n++
		}
	}
	return n
}

// Offset is the position of a filled subcell relative to the shape's top-left corner.
type Offset struct {
	Row, Col int
}

// Offsets returns the offsets of every filled subcell in row-major order.
func (s Shape) Offsets() []Offset {
	out := make([]Offset, 0, len(s.cells))
	for r := range s.rows {
		for c := range s.cols {
			if s.cells[r*s.cols+c] {
				out = append(out, Offset{Row: r, Col: c})
			}
		}
	}
	return out
}

// String renders the shape one row per line, '#' for filled and '.' for empty.
func (s Shape) String() string {
	var b strings.Builder
	for r := range s.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range s.cols {
			if s.cells[r*s.cols+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
