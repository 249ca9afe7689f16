package game

import (
	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/piece"
	"github.com/plus3/blockquiz/trivia"
)

// Stats are running counters for one session.
type Stats struct {
	Placements     int
	LinesCleared   int
	ClearEvents    int
	BestClear      int
	QuestionsAsked int
	CorrectAnswers int
}

// session is the state of one game, from the first batch to the end.
// It is owned by a single Controller.
type session struct {
	id    uuid.UUID
	board *grid.Grid
	score int
	phase Phase

	pieces []piece.Piece
	// slots maps the ID of every unused active piece to its index in pieces.
	slots *intmap.Map[piece.ID, int]

	question    *trivia.Question
	lastOutcome trivia.Outcome
	stats       Stats
}

func newSession() *session {
	return &session{
		id:    uuid.New(),
		board: grid.New(),
		phase: Playing,
		slots: intmap.New[piece.ID, int](piece.BatchSize),
	}
}

func (s *session) setPieces(batch []piece.Piece) {
	s.pieces = batch
	s.slots.Clear()
	for i, p := range batch {
		s.slots.Put(p.ID, i)
	}
}

func (s *session) clearPieces() {
	s.pieces = nil
	s.slots.Clear()
}

// activePiece returns the slot of an unused active piece.
func (s *session) activePiece(id piece.ID) (int, bool) {
	return s.slots.Get(id)
}

func (s *session) markUsed(slot int) {
	s.pieces[slot].Used = true
	s.slots.Del(s.pieces[slot].ID)
}

func (s *session) allUsed() bool {
	return s.slots.Len() == 0
}

func (s *session) unusedPieces() []piece.Piece {
	out := make([]piece.Piece, 0, s.slots.Len())
	for _, p := range s.pieces {
		if !p.Used {
			out = append(out, p)
		}
	}
	return out
}
