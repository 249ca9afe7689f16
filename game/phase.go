package game

// Phase is the state of a session's turn lifecycle.
type Phase int

const (
	// Playing accepts placements.
	Playing Phase = iota
	// AwaitingTrivia is entered on deadlock and left immediately once a question is picked.
	AwaitingTrivia
	// TriviaAnswering runs the countdown and accepts one answer.
	TriviaAnswering
	// Resumed follows a correct answer: the board is fresh and the score kept.
	Resumed
	// Ended is terminal until a new session is started.
	Ended
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case AwaitingTrivia:
		return "awaiting-trivia"
	case TriviaAnswering:
		return "trivia-answering"
	case Resumed:
		return "resumed"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}
