package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/trivia"
)

// UIState is the terminal cursor and piece selection.
type UIState struct {
	CursorRow, CursorCol int
	Slot                 int
	Valid                bool
	Quit                 bool
}

// KeyQueue buffers key events between scheduler frames.
type KeyQueue struct {
	keys []*tcell.EventKey
}

func (q *KeyQueue) Push(ev *tcell.EventKey) {
	q.keys = append(q.keys, ev)
}

func (q *KeyQueue) drain() []*tcell.EventKey {
	keys := q.keys
	q.keys = nil
	return keys
}

// InputSystem turns buffered keys into cursor moves and controller commands.
type InputSystem struct {
	UI   engine.Singleton[UIState]
	Keys engine.Singleton[KeyQueue]
}

func (s *InputSystem) Execute(frame *engine.Frame) {
	ui := s.UI.Get()
	for _, ev := range s.Keys.Get().drain() {
		s.handle(frame, ui, ev)
	}

	ui.Slot = nextUnused(frame.State, ui.Slot)
	ui.Valid = false
	if frame.State.Phase == game.Playing && ui.Slot < len(frame.State.Pieces) {
		id := frame.State.Pieces[ui.Slot].ID
		ok, err := frame.Game.QueryValidity(id, ui.CursorRow, ui.CursorCol)
		ui.Valid = err == nil && ok
	}
}

func (s *InputSystem) handle(frame *engine.Frame, ui *UIState, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ui.Quit = true
		return
	case tcell.KeyUp:
		ui.CursorRow = max(ui.CursorRow-1, 0)
	case tcell.KeyDown:
		ui.CursorRow = min(ui.CursorRow+1, grid.Size-1)
	case tcell.KeyLeft:
		ui.CursorCol = max(ui.CursorCol-1, 0)
	case tcell.KeyRight:
		ui.CursorCol = min(ui.CursorCol+1, grid.Size-1)
	case tcell.KeyTab:
		ui.Slot = nextUnused(frame.State, (ui.Slot+1)%max(len(frame.State.Pieces), 1))
	case tcell.KeyEnter:
		s.confirm(frame, ui)
	case tcell.KeyRune:
		s.rune(frame, ui, ev.Rune())
	}
}

func (s *InputSystem) confirm(frame *engine.Frame, ui *UIState) {
	switch frame.State.Phase {
	case game.Playing:
		if ui.Slot < len(frame.State.Pieces) {
			frame.Commands.Place(frame.State.Pieces[ui.Slot].ID, ui.CursorRow, ui.CursorCol)
		}
	case game.Resumed:
		frame.Commands.Resume()
	case game.Ended:
		frame.Commands.Restart()
	}
}

func (s *InputSystem) rune(frame *engine.Frame, ui *UIState, r rune) {
	switch {
	case r == 'q' || r == 'Q':
		ui.Quit = true
	case r == 'r' || r == 'R':
		frame.Commands.Restart()
	case r == ' ':
		s.confirm(frame, ui)
	case frame.State.Phase == game.TriviaAnswering:
		if i, ok := answerIndex(r); ok {
			frame.Commands.Answer(i)
		}
	case frame.State.Phase == game.Playing && r >= '1' && r <= '3':
		ui.Slot = int(r - '1')
	}
}

// answerIndex maps a-d, A-D and 1-4 to option indexes.
func answerIndex(r rune) (int, bool) {
	switch {
	case r >= 'a' && r < 'a'+trivia.OptionCount:
		return int(r - 'a'), true
	case r >= 'A' && r < 'A'+trivia.OptionCount:
		return int(r - 'A'), true
	case r >= '1' && r < '1'+trivia.OptionCount:
		return int(r - '1'), true
	}
	return 0, false
}

// nextUnused returns slot if its piece is unused, otherwise the next unused slot after it.
func nextUnused(state game.Snapshot, slot int) int {
	n := len(state.Pieces)
	for i := range n {
		s := (slot + i) % n
		if !state.Pieces[s].Used {
			return s
		}
	}
	return slot
}
