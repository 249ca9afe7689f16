package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/trivia"
)

const (
	boardX = 2
	boardY = 2
	trayX  = boardX + 2*grid.Size + 6
	infoY  = boardY + 16
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFilled  = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	stylePiece   = tcell.StyleDefault.Foreground(tcell.ColorGoldenrod)
	styleGhostOK = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleGhostNo = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

	styleUrgency = map[trivia.Urgency]tcell.Style{
		trivia.Calm:     tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		trivia.Warning:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		trivia.Critical: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	}
)

const (
	glyphFilled = '█'
	glyphEmpty  = '·'
)

// Render draws the whole session. Each board cell is two columns wide.
func Render(s tcell.Screen, state game.Snapshot, ui *UIState) {
	s.Clear()

	drawText(s, boardX, 0, fmt.Sprintf("SCORE %d", state.Score), styleTitle)
	drawText(s, boardX+14, 0, fmt.Sprintf("lines %d  best %d", state.Stats.LinesCleared, state.Stats.BestClear), styleDim)

	for row := range grid.Size {
		for col := range grid.Size {
			ch, st := glyphEmpty, styleDim
			if state.Grid[row][col] != grid.Empty {
				ch, st = glyphFilled, styleFilled
			}
			setCell(s, row, col, ch, st)
		}
	}

	if state.Phase == game.Playing && ui.Slot < len(state.Pieces) {
		ghost := styleGhostNo
		if ui.Valid {
			ghost = styleGhostOK
		}
		for _, off := range state.Pieces[ui.Slot].Shape.Offsets() {
			row, col := ui.CursorRow+off.Row, ui.CursorCol+off.Col
			if grid.InBounds(row, col) {
				setCell(s, row, col, glyphFilled, ghost)
			}
		}
	}

	drawTray(s, state, ui)

	switch state.Phase {
	case game.TriviaAnswering:
		drawQuestion(s, state)
	case game.Resumed:
		drawText(s, boardX, infoY, state.LastOutcome.Message(), styleTitle)
		drawText(s, boardX, infoY+1, "Enter to continue", styleDim)
	case game.Ended:
		drawText(s, boardX, infoY, state.LastOutcome.Message(), styleTitle)
		drawText(s, boardX, infoY+1, fmt.Sprintf("Final score %d. Enter to play again, q to quit", state.Score), styleDim)
	default:
		drawText(s, boardX, infoY, "arrows move  tab/1-3 pick  enter place  r restart  q quit", styleDim)
	}

	s.Show()
}

func drawTray(s tcell.Screen, state game.Snapshot, ui *UIState) {
	y := boardY
	for slot, p := range state.Pieces {
		label := fmt.Sprintf("%d %s", slot+1, p.Shape.Name())
		st := styleDim
		if !p.Used {
			st = styleText
		}
		if slot == ui.Slot && state.Phase == game.Playing {
			label = "> " + label
		} else {
			label = "  " + label
		}
		drawText(s, trayX, y, label, st)
		y++

		if !p.Used {
			for _, line := range strings.Split(p.Shape.String(), "\n") {
				drawText(s, trayX+2, y, strings.ReplaceAll(strings.ReplaceAll(line, "#", "██"), ".", "  "), stylePiece)
				y++
			}
		}
		y++
	}
}

func drawQuestion(s tcell.Screen, state game.Snapshot) {
	q := state.Question
	drawText(s, boardX, infoY, "No moves left! Answer to continue:", styleTitle)
	drawText(s, boardX+36, infoY, fmt.Sprintf("%2ds", state.Remaining), styleUrgency[trivia.UrgencyOf(state.Remaining)])
	drawText(s, boardX, infoY+1, q.Prompt, styleText)
	for i, option := range q.Options {
		drawText(s, boardX+2, infoY+2+i, fmt.Sprintf("%s. %s", trivia.OptionLabel(i), option), styleText)
	}
}

func setCell(s tcell.Screen, row, col int, ch rune, st tcell.Style) {
	x := boardX + 2*col
	y := boardY + row
	s.SetContent(x, y, ch, nil, st)
	s.SetContent(x+1, y, ' ', nil, st)
	if ch == glyphFilled {
		s.SetContent(x+1, y, glyphFilled, nil, st)
	}
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}
