// Package debugui provides Dear ImGui panels for inspecting a running game:
// the live session, recent controller events and scheduler timings.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockquiz/engine"
)

// ImguiItem holds a Dear ImGui render function called once per frame.
type ImguiItem struct {
	Render func(frame *engine.Frame)
}

// ImguiInputState tracks Dear ImGui's input capture state as a shared resource.
// Hosts use it to decide whether the game should ignore mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every item's render function
// until the frame's commands are flushed.
type ImguiSystem struct {
	InputState engine.Singleton[ImguiInputState]
	Items      []ImguiItem
}

// Add registers a render function.
func (i *ImguiSystem) Add(render func(frame *engine.Frame)) {
	i.Items = append(i.Items, ImguiItem{Render: render})
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *engine.Frame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for _, item := range i.Items {
		frame.Commands.Defer(func() { item.Render(frame) })
	}
}
