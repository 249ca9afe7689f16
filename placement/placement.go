// Package placement decides where a shape may go on a grid and applies it.
package placement

import (
	"fmt"

	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/piece"
)

// PointsPerCell is awarded for every filled subcell of a placed shape.
const PointsPerCell = 10

// Anchor is the grid position of a shape's top-left corner.
type Anchor struct {
	Row, Col int
}

// CanPlace reports whether shape fits on g with its top-left corner at (row, col):
// every filled subcell must land inside the grid on an empty cell.
func CanPlace(g *grid.Grid, shape piece.Shape, row, col int) bool {
	for r := range shape.Rows() {
		for c := range shape.Cols() {
			if !shape.Filled(r, c) {
				continue
			}

			occupied, err := g.IsOccupied(row+r, col+c)
			if err != nil || occupied {
				return false
			}
		}
	}
	return true
}

// Place occupies the cells covered by shape anchored at (row, col) and returns
// the points earned. The placement must have been checked with CanPlace.
func Place(g *grid.Grid, shape piece.Shape, row, col int) int {
	if !CanPlace(g, shape, row, col) {
		panic(fmt.Sprintf("placement: %s does not fit at (%d, %d)", shape.Name(), row, col))
	}

	filled := 0
	for _, off := range shape.Offsets() {
		g.Occupy(row+off.Row, col+off.Col)
		filled++
	}
	return filled * PointsPerCell
}

// HasAnyValidPlacement reports whether shape fits anywhere on g.
func HasAnyValidPlacement(g *grid.Grid, shape piece.Shape) bool {
	for row := range grid.Size {
		for col := range grid.Size {
			if CanPlace(g, shape, row, col) {
				return true
			}
		}
	}
	return false
}

// ValidAnchors lists every anchor where shape fits, in row-major order.
func ValidAnchors(g *grid.Grid, shape piece.Shape) []Anchor {
	var anchors []Anchor
	for row := range grid.Size {
		for col := range grid.Size {
			if CanPlace(g, shape, row, col) {
				anchors = append(anchors, Anchor{Row: row, Col: col})
			}
		}
	}
	return anchors
}
