package main

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/piece"
	"github.com/plus3/blockquiz/trivia"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	colorBackground = color.RGBA{R: 24, G: 26, B: 36, A: 255}
	colorEmpty      = color.RGBA{R: 44, G: 48, B: 64, A: 255}
	colorFilled     = color.RGBA{R: 92, G: 170, B: 240, A: 255}
	colorTray       = color.RGBA{R: 230, G: 180, B: 80, A: 255}
	colorGhostOK    = color.RGBA{R: 90, G: 220, B: 120, A: 150}
	colorGhostBad   = color.RGBA{R: 230, G: 80, B: 80, A: 150}
	colorText       = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	colorShade      = color.RGBA{R: 0, G: 0, B: 0, A: 190}
	colorButton     = color.RGBA{R: 60, G: 66, B: 90, A: 255}

	colorUrgency = map[trivia.Urgency]color.RGBA{
		trivia.Calm:     {R: 90, G: 220, B: 120, A: 255},
		trivia.Warning:  {R: 240, G: 200, B: 60, A: 255},
		trivia.Critical: {R: 240, G: 80, B: 80, A: 255},
	}
)

// Renderer draws a session snapshot.
type Renderer struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
}

func NewRenderer() (*Renderer, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

func (r *Renderer) Draw(screen *ebiten.Image, state game.Snapshot, drag *DragState) {
	screen.Fill(colorBackground)

	r.text(screen, fmt.Sprintf("Score %d", state.Score), 40, 40, 32, true, colorText)
	r.text(screen, fmt.Sprintf("Lines %d  Best combo %d", state.Stats.LinesCleared, state.Stats.BestClear), 40, 78, 16, false, colorText)

	for row := range state.Grid {
		for col, cell := range state.Grid[row] {
			x, y := CellOrigin(row, col)
			c := colorEmpty
			if cell != 0 {
				c = colorFilled
			}
			vector.DrawFilledRect(screen, x+1, y+1, CellSize-2, CellSize-2, c, false)
		}
	}

	for slot, p := range state.Pieces {
		if p.Used || (drag != nil && drag.Active && drag.Slot == slot) {
			continue
		}
		x, y := SlotPieceOrigin(slot, p.Shape)
		drawShape(screen, p.Shape, float32(x), float32(y), TrayCellSize, colorTray)
	}

	if drag != nil && drag.Active {
		r.drawDrag(screen, drag)
	}

	switch state.Phase {
	case game.TriviaAnswering:
		r.drawQuestion(screen, state)
	case game.Resumed:
		r.drawBanner(screen, state.LastOutcome.Message(), "Press Enter to continue")
	case game.Ended:
		r.drawBanner(screen, state.LastOutcome.Message(), fmt.Sprintf("Final score %d. Press Enter to play again", state.Score))
	}
}

func (r *Renderer) drawDrag(screen *ebiten.Image, drag *DragState) {
	if drag.OnBoard {
		ghost := colorGhostBad
		if drag.Valid {
			ghost = colorGhostOK
		}
		for _, off := range drag.Piece.Shape.Offsets() {
			row, col := drag.Row+off.Row, drag.Col+off.Col
			if !grid.InBounds(row, col) {
				continue
			}
			x, y := CellOrigin(row, col)
			vector.DrawFilledRect(screen, x+1, y+1, CellSize-2, CellSize-2, ghost, false)
		}
	}

	x := float32(drag.X - drag.GrabCol*CellSize - CellSize/2)
	y := float32(drag.Y - drag.GrabRow*CellSize - CellSize/2)
	drawShape(screen, drag.Piece.Shape, x, y, CellSize, colorTray)
}

func (r *Renderer) drawQuestion(screen *ebiten.Image, state game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorShade, false)

	q := state.Question
	urgency := trivia.UrgencyOf(state.Remaining)
	r.text(screen, "No moves left! Answer to continue", OptionX, 120, 20, true, colorText)
	r.text(screen, fmt.Sprintf("%ds", state.Remaining), ScreenWidth-OptionX-60, 120, 28, true, colorUrgency[urgency])

	barWidth := float32(OptionWidth) * float32(state.Remaining) / trivia.CountdownSeconds
	vector.DrawFilledRect(screen, OptionX, 170, barWidth, 8, colorUrgency[urgency], false)

	r.text(screen, q.Prompt, OptionX, 220, 22, false, colorText)

	for i, option := range q.Options {
		x, y, w, h := OptionRect(i)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), colorButton, false)
		label := fmt.Sprintf("%s. %s", trivia.OptionLabel(i), option)
		r.text(screen, label, float64(x+16), float64(y+14), 20, false, colorText)
	}
}

func (r *Renderer) drawBanner(screen *ebiten.Image, title, subtitle string) {
	vector.DrawFilledRect(screen, 0, 260, ScreenWidth, 160, colorShade, false)
	r.text(screen, title, 40, 290, 28, true, colorText)
	r.text(screen, subtitle, 40, 350, 16, false, colorText)
}

func (r *Renderer) text(screen *ebiten.Image, s string, x, y float64, size float64, bold bool, c color.Color) {
	src := r.regular
	if bold {
		src = r.bold
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, &text.GoTextFace{Source: src, Size: size}, op)
}

func drawShape(screen *ebiten.Image, shape piece.Shape, x, y, cell float32, c color.Color) {
	for _, off := range shape.Offsets() {
		cx := x + float32(off.Col)*cell
		cy := y + float32(off.Row)*cell
		vector.DrawFilledRect(screen, cx+1, cy+1, cell-2, cell-2, c, false)
	}
}
