package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
)

type LoggedEvent struct {
	At    time.Time
	Kind  game.EventKind
	Text  string
	Error bool
}

// EventLog keeps the most recent controller events in a ring buffer.
type EventLog struct {
	entries []LoggedEvent
	next    int
	full    bool
	now     func() time.Time
}

func NewEventLog(capacity int) *EventLog {
	return &EventLog{
		entries: make([]LoggedEvent, max(capacity, 1)),
		now:     time.Now,
	}
}

// Observer returns a controller observer that records into the log.
func (l *EventLog) Observer() game.Observer {
	return l.Add
}

func (l *EventLog) Add(e game.Event) {
	l.entries[l.next] = LoggedEvent{
		At:    l.now(),
		Kind:  e.Kind,
		Text:  Describe(e),
		Error: e.Err != nil,
	}
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Entries returns the logged events, oldest first.
func (l *EventLog) Entries() []LoggedEvent {
	if !l.full {
		return append([]LoggedEvent(nil), l.entries[:l.next]...)
	}
	out := make([]LoggedEvent, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	return append(out, l.entries[:l.next]...)
}

// Describe renders an event as one line of text.
func Describe(e game.Event) string {
	switch e.Kind {
	case game.EventPlaced:
		p := e.Placement
		text := fmt.Sprintf("piece %d at (%d, %d) +%d", p.PieceID, p.Row, p.Col, p.Points)
		if p.LinesCleared > 0 {
			text += fmt.Sprintf(", %d lines +%d", p.LinesCleared, p.Bonus)
		}
		return text
	case game.EventRejected:
		return e.Err.Error()
	case game.EventPhaseChanged:
		return fmt.Sprintf("%s -> %s", e.From, e.To)
	case game.EventCountdownTick:
		return fmt.Sprintf("%ds left", e.Remaining)
	case game.EventAnswered:
		return e.Outcome.String()
	case game.EventSessionStarted:
		return "new session"
	default:
		return e.Kind.String()
	}
}

func (l *EventLog) Render(frame *engine.Frame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(490, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 220), imgui.CondOnce)

	if !imgui.BeginV("Events", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EventTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Time")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Detail")
		imgui.TableHeadersRow()

		entries := l.Entries()
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(entry.At.Format("15:04:05"))
			imgui.TableNextColumn()
			imgui.Text(entry.Kind.String())
			imgui.TableNextColumn()
			if entry.Error {
				imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), entry.Text)
			} else {
				imgui.Text(entry.Text)
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}
