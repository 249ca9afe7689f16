package engine

import "github.com/plus3/blockquiz/game"

// Frame is handed to every system during one scheduler pass.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	Game      *game.Controller
	// State is the snapshot taken when the frame started.
	State game.Snapshot
}

func newFrame(dt float64, c *game.Controller) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Game:      c,
		State:     c.CurrentState(),
	}
}
