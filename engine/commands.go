package engine

import (
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/piece"
)

type commandKind int

const (
	cmdPlace commandKind = iota
	cmdAnswer
	cmdTick
	cmdResume
	cmdRestart
	cmdDefer
)

type command struct {
	kind     commandKind
	id       piece.ID
	row, col int
	option   int
	fn       func()
}

// Commands buffers controller operations queued by systems during a frame.
// They are applied in the order they were queued when the frame is flushed.
type Commands struct {
	queue []command
}

func newCommands() *Commands {
	return &Commands{}
}

// Place queues a placement attempt of piece id anchored at (row, col).
func (c *Commands) Place(id piece.ID, row, col int) {
	c.queue = append(c.queue, command{kind: cmdPlace, id: id, row: row, col: col})
}

// Answer queues a trivia answer.
func (c *Commands) Answer(option int) {
	c.queue = append(c.queue, command{kind: cmdAnswer, option: option})
}

// Tick queues one countdown second.
func (c *Commands) Tick() {
	c.queue = append(c.queue, command{kind: cmdTick})
}

// Resume queues the return to Playing after a correct answer.
func (c *Commands) Resume() {
	c.queue = append(c.queue, command{kind: cmdResume})
}

// Restart queues the start of a brand-new session.
func (c *Commands) Restart() {
	c.queue = append(c.queue, command{kind: cmdRestart})
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.queue = append(c.queue, command{kind: cmdDefer, fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush applies every queued command to the controller, resetting the buffer.
// Commands queued by deferred functions run in the same flush. Rejected
// operations are returned; they never stop later commands.
func (c *Commands) Flush(ctrl *game.Controller) []error {
	var errs []error
	for i := 0; i < len(c.queue); i++ {
		cmd := c.queue[i]
		var err error
		switch cmd.kind {
		case cmdPlace:
			_, err = ctrl.AttemptPlacement(cmd.id, cmd.row, cmd.col)
		case cmdAnswer:
			_, err = ctrl.SubmitTriviaAnswer(cmd.option)
		case cmdTick:
			_, _, err = ctrl.OnCountdownTick()
		case cmdResume:
			err = ctrl.ResumeAfterCorrectAnswer()
		case cmdRestart:
			ctrl.StartNewSession()
		case cmdDefer:
			cmd.fn()
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	c.queue = c.queue[:0]
	return errs
}
