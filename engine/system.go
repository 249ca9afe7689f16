// Package engine runs a fixed list of systems once per frame against a game
// controller. Systems read the session freely and queue every change as a
// command, which is applied in order when the frame ends, so the controller
// only ever sees one writer.
package engine

// System represents a behaviour that runs every frame.
// Implementations may declare Singleton fields for shared resources; the
// Scheduler fills them in at registration. Other fields persist between frames.
type System interface {
	Execute(frame *Frame)
}
