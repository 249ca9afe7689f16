package trivia

import "math/rand/v2"

// Outcome is the result of a trivia round.
type Outcome int

const (
	Pending Outcome = iota
	Correct
	Incorrect
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Message is the player-facing text for an outcome.
func (o Outcome) Message() string {
	switch o {
	case Correct:
		return "Correct! You can continue playing!"
	case Incorrect:
		return "Wrong answer! Game Over."
	case TimedOut:
		return "Time's up! Game Over."
	default:
		return ""
	}
}

// Gate picks questions and judges answers.
type Gate struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewGate returns a gate asking questions from catalog, picked with rng.
func NewGate(catalog *Catalog, rng *rand.Rand) *Gate {
	return &Gate{catalog: catalog, rng: rng}
}

// Select draws a question uniformly at random. Draws are independent, so repeats happen.
func (g *Gate) Select() Question {
	return g.catalog.At(g.rng.IntN(g.catalog.Len()))
}

// Catalog returns the catalog the gate draws from.
func (g *Gate) Catalog() *Catalog {
	return g.catalog
}

// Evaluate compares the selected option with the question's answer.
func Evaluate(selected int, q Question) Outcome {
	if selected == q.Correct {
		return Correct
	}
	return Incorrect
}
