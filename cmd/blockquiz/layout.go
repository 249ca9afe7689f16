package main

import (
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/piece"
	"github.com/plus3/blockquiz/trivia"
)

const (
	ScreenWidth  = 480
	ScreenHeight = 720

	BoardX   = 40
	BoardY   = 110
	CellSize = 40

	TrayY        = 540
	TrayHeight   = 140
	TrayCellSize = 24
)

// SlotWidth is the horizontal space each tray piece gets.
const SlotWidth = ScreenWidth / piece.BatchSize

// CellAt maps a screen position to the board cell under it. Positions left of
// or above the board give negative indices; ok reports whether the cell exists.
func CellAt(x, y int) (row, col int, ok bool) {
	row = floorDiv(y-BoardY, CellSize)
	col = floorDiv(x-BoardX, CellSize)
	return row, col, grid.InBounds(row, col)
}

// CellOrigin returns the top-left screen position of a board cell.
func CellOrigin(row, col int) (x, y float32) {
	return float32(BoardX + col*CellSize), float32(BoardY + row*CellSize)
}

// SlotAt returns the tray slot under a screen position.
func SlotAt(x, y int) (int, bool) {
	if y < TrayY || y >= TrayY+TrayHeight || x < 0 || x >= SlotWidth*piece.BatchSize {
		return 0, false
	}
	return x / SlotWidth, true
}

// SlotPieceOrigin returns where a shape is drawn, centred in its tray slot.
func SlotPieceOrigin(slot int, shape piece.Shape) (x, y int) {
	x = slot*SlotWidth + (SlotWidth-shape.Cols()*TrayCellSize)/2
	y = TrayY + (TrayHeight-shape.Rows()*TrayCellSize)/2
	return x, y
}

// GrabOffset returns the shape cell, clamped to the shape, that a pointer at
// (x, y) grabs when picking the piece up from its tray slot.
func GrabOffset(slot int, shape piece.Shape, x, y int) (row, col int) {
	ox, oy := SlotPieceOrigin(slot, shape)
	row = min(max(floorDiv(y-oy, TrayCellSize), 0), shape.Rows()-1)
	col = min(max(floorDiv(x-ox, TrayCellSize), 0), shape.Cols()-1)
	return row, col
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

const (
	OptionX      = 40
	OptionY      = 330
	OptionWidth  = ScreenWidth - 2*OptionX
	OptionHeight = 52
	OptionGap    = 10
)

// OptionRect returns the screen rectangle of answer button i.
func OptionRect(i int) (x, y, w, h int) {
	return OptionX, OptionY + i*(OptionHeight+OptionGap), OptionWidth, OptionHeight
}

// OptionAt returns the answer button under a screen position.
func OptionAt(x, y int) (int, bool) {
	for i := range trivia.OptionCount {
		ox, oy, w, h := OptionRect(i)
		if x >= ox && x < ox+w && y >= oy && y < oy+h {
			return i, true
		}
	}
	return 0, false
}
