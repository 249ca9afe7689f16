package engine

import "github.com/plus3/blockquiz/game"

// CountdownSystem turns frame time into whole-second countdown ticks while a
// trivia question is open. Leftover time is dropped as soon as the session
// leaves TriviaAnswering, so a new question always gets a full first second.
type CountdownSystem struct {
	Accumulator float64
}

func (s *CountdownSystem) Execute(frame *Frame) {
	if frame.State.Phase != game.TriviaAnswering {
		s.Accumulator = 0
		return
	}

	s.Accumulator += frame.DeltaTime
	for s.Accumulator >= 1 {
		s.Accumulator--
		frame.Commands.Tick()
	}
}
