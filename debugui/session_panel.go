package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/trivia"
)

// SessionPanel shows the live session and offers shortcuts that queue
// controller operations: restart, resume, answer and countdown ticks.
type SessionPanel struct {
	// RevealAnswer marks the correct option while a question is open.
	RevealAnswer bool
}

func NewSessionPanel() *SessionPanel {
	return &SessionPanel{}
}

func (sp *SessionPanel) Render(frame *engine.Frame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(490, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 400), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	state := frame.State
	imgui.Text(fmt.Sprintf("ID: %s", state.SessionID))
	imgui.Text(fmt.Sprintf("Phase: %s", state.Phase))
	imgui.Text(fmt.Sprintf("Score: %d", state.Score))

	if imgui.Button("Restart") {
		frame.Commands.Restart()
	}
	if state.Phase == game.Resumed {
		imgui.SameLine()
		if imgui.Button("Resume") {
			frame.Commands.Resume()
		}
	}

	imgui.Separator()
	if imgui.TreeNodeStr("Grid") {
		for _, line := range GridLines(state.Grid) {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Pieces") {
		for _, p := range state.Pieces {
			status := "active"
			if p.Used {
				status = "used"
			}
			imgui.BulletText(fmt.Sprintf("#%d %s (%s)", p.ID, p.Shape.Name(), status))
			imgui.Indent()
			for _, line := range strings.Split(p.Shape.String(), "\n") {
				imgui.Text(line)
			}
			imgui.Unindent()
		}
		imgui.TreePop()
	}

	if state.Question != nil {
		imgui.Separator()
		sp.renderQuestion(frame)
	} else if state.LastOutcome != trivia.Pending {
		imgui.Separator()
		imgui.Text(state.LastOutcome.Message())
	}

	if imgui.TreeNodeStr("Stats") {
		for _, kv := range globalReflectionCache.FieldValues(state.Stats) {
			imgui.Text(fmt.Sprintf("%s: %s", kv[0], kv[1]))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (sp *SessionPanel) renderQuestion(frame *engine.Frame) {
	state := frame.State
	q := state.Question

	imgui.TextColored(UrgencyColor(trivia.UrgencyOf(state.Remaining)), fmt.Sprintf("%ds", state.Remaining))
	imgui.ProgressBarV(float32(state.Remaining)/trivia.CountdownSeconds, imgui.NewVec2(-1, 0), "")
	imgui.Text(q.Prompt)

	answerable := state.Phase == game.TriviaAnswering
	for i, option := range q.Options {
		label := fmt.Sprintf("%s. %s", trivia.OptionLabel(i), option)
		if sp.RevealAnswer && i == q.Correct {
			label += " *"
		}
		if imgui.Button(label) && answerable {
			frame.Commands.Answer(i)
		}
	}

	imgui.Checkbox("Reveal answer", &sp.RevealAnswer)
	if answerable {
		imgui.SameLine()
		if imgui.Button("Tick") {
			frame.Commands.Tick()
		}
	}
}

// GridLines renders cells as one string per row, '#' for filled.
func GridLines(cells grid.Cells) []string {
	return strings.Split(strings.TrimRight(grid.FromCells(cells).String(), "\n"), "\n")
}

// UrgencyColor returns the timer colour for an urgency band.
func UrgencyColor(u trivia.Urgency) imgui.Vec4 {
	switch u {
	case trivia.Critical:
		return imgui.NewVec4(1.0, 0.3, 0.3, 1.0)
	case trivia.Warning:
		return imgui.NewVec4(1.0, 0.8, 0.0, 1.0)
	default:
		return imgui.NewVec4(0.0, 1.0, 0.0, 1.0)
	}
}
