// Package lineclear finds and clears full rows and columns after a placement.
package lineclear

import "github.com/plus3/blockquiz/grid"

// PointsPerLineSquared scales the quadratic clear bonus.
const PointsPerLineSquared = 100

// Result describes one sweep.
type Result struct {
	Rows  []int
	Cols  []int
	Lines int
}

// Sweep flags every full row (0..9) and every full column (0..9) against the
// grid as it is on entry, then clears all flagged lines. Flagging completes
// before any clearing so one line can never mask or fake another.
func Sweep(g *grid.Grid) Result {
	var res Result

	for row := range grid.Size {
		if g.IsRowFull(row) {
			res.Rows = append(res.Rows, row)
		}
	}
	for col := range grid.Size {
		if g.IsColFull(col) {
			res.Cols = append(res.Cols, col)
		}
	}

	for _, row := range res.Rows {
		g.ClearRow(row)
	}
	for _, col := range res.Cols {
		g.ClearCol(col)
	}

	res.Lines = len(res.Rows) + len(res.Cols)
	return res
}

// Bonus returns the extra points for clearing lines simultaneously: lines × 100 × lines.
func Bonus(lines int) int {
	if lines <= 0 {
		return 0
	}
	return lines * PointsPerLineSquared * lines
}
