package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockquiz/debugui"
	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/piece"
)

// DragState is the piece currently held by the pointer.
type DragState struct {
	Active   bool
	Slot     int
	Piece    piece.Piece
	GrabRow  int
	GrabCol  int
	X, Y     int
	Row, Col int
	OnBoard  bool
	Valid    bool
}

// DragSystem picks pieces up from the tray, previews them over the board and
// drops them with a placement attempt.
type DragSystem struct {
	Drag  engine.Singleton[DragState]
	Imgui engine.Singleton[debugui.ImguiInputState]
}

func (s *DragSystem) Execute(frame *engine.Frame) {
	drag := s.Drag.Get()
	if drag == nil {
		return
	}

	if frame.State.Phase != game.Playing {
		*drag = DragState{}
		return
	}

	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureMouse && !drag.Active {
		return
	}

	x, y := ebiten.CursorPosition()

	if !drag.Active && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		slot, ok := SlotAt(x, y)
		if !ok || slot >= len(frame.State.Pieces) || frame.State.Pieces[slot].Used {
			return
		}
		p := frame.State.Pieces[slot]
		row, col := GrabOffset(slot, p.Shape, x, y)
		*drag = DragState{Active: true, Slot: slot, Piece: p, GrabRow: row, GrabCol: col}
	}

	if !drag.Active {
		return
	}

	drag.X, drag.Y = x, y
	pointerRow, pointerCol, onBoard := CellAt(x, y)
	drag.Row, drag.Col = pointerRow-drag.GrabRow, pointerCol-drag.GrabCol
	drag.OnBoard = onBoard
	valid, err := frame.Game.QueryValidity(drag.Piece.ID, drag.Row, drag.Col)
	drag.Valid = err == nil && valid

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if drag.OnBoard {
			frame.Commands.Place(drag.Piece.ID, drag.Row, drag.Col)
		}
		*drag = DragState{}
	}
}

var answerKeys = [][2]ebiten.Key{
	{ebiten.KeyA, ebiten.Key1},
	{ebiten.KeyB, ebiten.Key2},
	{ebiten.KeyC, ebiten.Key3},
	{ebiten.KeyD, ebiten.Key4},
}

// KeyboardSystem answers questions and handles restart and resume.
type KeyboardSystem struct {
	Imgui engine.Singleton[debugui.ImguiInputState]
}

func (s *KeyboardSystem) Execute(frame *engine.Frame) {
	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureKeyboard {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		frame.Commands.Restart()
		return
	}

	switch frame.State.Phase {
	case game.TriviaAnswering:
		for i, keys := range answerKeys {
			if inpututil.IsKeyJustPressed(keys[0]) || inpututil.IsKeyJustPressed(keys[1]) {
				frame.Commands.Answer(i)
				return
			}
		}
	case game.Resumed:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			frame.Commands.Resume()
		}
	case game.Ended:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			frame.Commands.Restart()
		}
	}
}

// AnswerClickSystem answers a question when one of the option buttons is clicked.
type AnswerClickSystem struct {
	Imgui engine.Singleton[debugui.ImguiInputState]
}

func (s *AnswerClickSystem) Execute(frame *engine.Frame) {
	if frame.State.Phase != game.TriviaAnswering {
		return
	}
	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureMouse {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	if i, ok := OptionAt(ebiten.CursorPosition()); ok {
		frame.Commands.Answer(i)
	}
}
