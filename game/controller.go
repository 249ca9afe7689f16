// Package game runs the turn lifecycle of a session: placements, line clears,
// deadlock detection and the trivia gate that decides between continuing and
// game over.
//
// A Controller is driven from a single goroutine. Hosts call its methods in
// response to player input and once per second while a question is open.
package game

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/lineclear"
	"github.com/plus3/blockquiz/piece"
	"github.com/plus3/blockquiz/placement"
	"github.com/plus3/blockquiz/trivia"
)

// PlacementResult reports what a placement attempt did.
type PlacementResult struct {
	Accepted     bool
	PieceID      piece.ID
	Row, Col     int
	Points       int
	LinesCleared int
	Bonus        int
	Rows, Cols   []int
	Deadlocked   bool
	Phase        Phase
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	SessionID   uuid.UUID
	Grid        grid.Cells
	Pieces      []piece.Piece
	Score       int
	Phase       Phase
	Question    *trivia.Question
	Remaining   int
	LastOutcome trivia.Outcome
	Stats       Stats
}

// Controller owns the active session and applies every state transition.
type Controller struct {
	session   *session
	dealer    *piece.Dealer
	gate      *trivia.Gate
	countdown trivia.Countdown
	logger    *log.Logger
	observer  Observer
}

// Option configures a Controller.
type Option func(*controllerConfig)

type controllerConfig struct {
	rng      *rand.Rand
	catalog  *trivia.Catalog
	logger   *log.Logger
	observer Observer
}

// WithRand sets the random source used for pieces and questions.
func WithRand(rng *rand.Rand) Option {
	return func(c *controllerConfig) { c.rng = rng }
}

// WithCatalog sets the trivia questions. The default is trivia.DefaultCatalog.
func WithCatalog(catalog *trivia.Catalog) Option {
	return func(c *controllerConfig) { c.catalog = catalog }
}

// WithLogger sets where lifecycle messages go. The default discards them.
func WithLogger(logger *log.Logger) Option {
	return func(c *controllerConfig) { c.logger = logger }
}

// WithObserver registers a callback for controller events.
func WithObserver(observer Observer) Option {
	return func(c *controllerConfig) { c.observer = observer }
}

// NewController returns a controller with a fresh session in the Playing phase.
func NewController(opts ...Option) *Controller {
	cfg := controllerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.catalog == nil {
		cfg.catalog = trivia.DefaultCatalog()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard, "", 0)
	}

	c := &Controller{
		dealer:   piece.NewDealer(cfg.rng),
		gate:     trivia.NewGate(cfg.catalog, cfg.rng),
		logger:   cfg.logger,
		observer: cfg.observer,
	}
	c.StartNewSession()
	return c
}

// StartNewSession discards the current session, whatever its phase, and starts
// a new one with an empty grid, a zero score and a fresh batch.
func (c *Controller) StartNewSession() {
	c.countdown.Stop()

	from := Ended
	if c.session != nil {
		from = c.session.phase
	}

	c.session = newSession()
	c.session.setPieces(c.dealer.DrawBatch(piece.BatchSize))
	c.logger.Printf("session %s: started", c.session.id)

	c.emit(Event{Kind: EventSessionStarted, From: from, To: Playing})
}

// LoadPosition replaces the board and the active batch of a Playing session,
// for puzzle setups and replays. The score is kept. Exactly BatchSize shapes
// must be given; they become fresh pieces. A nil grid loads an empty board.
// A position in which none of them fits goes straight to the trivia gate.
func (c *Controller) LoadPosition(g *grid.Grid, shapes ...piece.Shape) ([]piece.Piece, error) {
	s := c.session
	if s.phase != Playing {
		return nil, fmt.Errorf("load position in phase %s: %w", s.phase, ErrInvalidPhase)
	}
	if len(shapes) != piece.BatchSize {
		return nil, fmt.Errorf("load position with %d shapes, want %d: %w", len(shapes), piece.BatchSize, ErrOutOfRange)
	}

	batch := c.dealer.Deal(shapes...)
	if g == nil {
		s.board = grid.New()
	} else {
		s.board = grid.FromCells(g.Snapshot())
	}
	s.setPieces(batch)
	c.logger.Printf("session %s: position loaded (%d filled)", s.id, s.board.FilledCount())

	if c.deadlocked() {
		c.transition(AwaitingTrivia)
		c.presentQuestion()
	}
	return append([]piece.Piece(nil), batch...), nil
}

// AttemptPlacement places the active piece id with its top-left corner at (row, col).
// A rejected attempt returns Accepted false with an error and changes nothing.
func (c *Controller) AttemptPlacement(id piece.ID, row, col int) (PlacementResult, error) {
	s := c.session
	res := PlacementResult{PieceID: id, Row: row, Col: col, Phase: s.phase}

	if s.phase != Playing {
		return c.reject(res, fmt.Errorf("place piece %d in phase %s: %w", id, s.phase, ErrInvalidPhase))
	}

	slot, ok := s.activePiece(id)
	if !ok {
		return c.reject(res, fmt.Errorf("place piece %d: %w", id, ErrUnknownPiece))
	}

	shape := s.pieces[slot].Shape
	if !placement.CanPlace(s.board, shape, row, col) {
		return c.reject(res, fmt.Errorf("place %s at (%d, %d): %w", shape.Name(), row, col, ErrInvalidPlacement))
	}

	res.Accepted = true
	res.Points = placement.Place(s.board, shape, row, col)

	sweep := lineclear.Sweep(s.board)
	res.LinesCleared = sweep.Lines
	res.Rows, res.Cols = sweep.Rows, sweep.Cols
	res.Bonus = lineclear.Bonus(sweep.Lines)

	s.score += res.Points + res.Bonus
	s.markUsed(slot)

	s.stats.Placements++
	if sweep.Lines > 0 {
		s.stats.ClearEvents++
		s.stats.LinesCleared += sweep.Lines
		s.stats.BestClear = max(s.stats.BestClear, sweep.Lines)
	}

	if s.allUsed() {
		s.setPieces(c.dealer.DrawBatch(piece.BatchSize))
	}

	res.Deadlocked = c.deadlocked()
	if res.Deadlocked {
		c.logger.Printf("session %s: deadlock at score %d", s.id, s.score)
		c.transition(AwaitingTrivia)
		c.presentQuestion()
	}

	res.Phase = s.phase
	c.emit(Event{Kind: EventPlaced, Placement: res, To: s.phase})
	return res, nil
}

func (c *Controller) reject(res PlacementResult, err error) (PlacementResult, error) {
	c.emit(Event{Kind: EventRejected, Placement: res, Err: err, To: c.session.phase})
	return res, err
}

// QueryValidity reports whether AttemptPlacement with the same arguments would
// be accepted. It never changes the session.
func (c *Controller) QueryValidity(id piece.ID, row, col int) (bool, error) {
	s := c.session
	if s.phase != Playing {
		return false, fmt.Errorf("query piece %d in phase %s: %w", id, s.phase, ErrInvalidPhase)
	}
	if !grid.InBounds(row, col) {
		return false, fmt.Errorf("query anchor (%d, %d): %w", row, col, ErrOutOfRange)
	}
	slot, ok := s.activePiece(id)
	if !ok {
		return false, fmt.Errorf("query piece %d: %w", id, ErrUnknownPiece)
	}
	return placement.CanPlace(s.board, s.pieces[slot].Shape, row, col), nil
}

// deadlocked reports whether none of the unused active pieces fits anywhere.
func (c *Controller) deadlocked() bool {
	for _, p := range c.session.unusedPieces() {
		if placement.HasAnyValidPlacement(c.session.board, p.Shape) {
			return false
		}
	}
	return true
}

func (c *Controller) presentQuestion() {
	s := c.session
	q := c.gate.Select()
	s.question = &q
	s.lastOutcome = trivia.Pending
	s.stats.QuestionsAsked++
	c.countdown.Start()
	c.transition(TriviaAnswering)
}

// SubmitTriviaAnswer answers the open question with option index i.
// A correct answer clears the board, deals a new batch and moves to Resumed;
// a wrong one ends the session.
func (c *Controller) SubmitTriviaAnswer(i int) (trivia.Outcome, error) {
	s := c.session
	if s.phase != TriviaAnswering {
		return trivia.Pending, fmt.Errorf("answer in phase %s: %w", s.phase, ErrInvalidPhase)
	}
	if i < 0 || i >= trivia.OptionCount {
		return trivia.Pending, fmt.Errorf("answer option %d: %w", i, ErrOutOfRange)
	}

	c.countdown.Stop()
	outcome := trivia.Evaluate(i, *s.question)
	s.lastOutcome = outcome

	if outcome == trivia.Correct {
		s.stats.CorrectAnswers++
		s.board.Reset()
		s.clearPieces()
		s.setPieces(c.dealer.DrawBatch(piece.BatchSize))
		c.transition(Resumed)
	} else {
		c.transition(Ended)
	}

	c.logger.Printf("session %s: answered %s (%s)", s.id, trivia.OptionLabel(i), outcome)
	c.emit(Event{Kind: EventAnswered, Outcome: outcome, To: s.phase})
	return outcome, nil
}

// OnCountdownTick advances the question countdown by one second. When it
// reaches zero the session ends with a TimedOut outcome. Ticks outside
// TriviaAnswering, including late ones after an answer, are rejected.
func (c *Controller) OnCountdownTick() (int, trivia.Outcome, error) {
	s := c.session
	if s.phase != TriviaAnswering {
		return c.countdown.Remaining(), trivia.Pending, fmt.Errorf("countdown tick in phase %s: %w", s.phase, ErrInvalidPhase)
	}

	remaining, expired, ok := c.countdown.Tick()
	if !ok {
		return remaining, trivia.Pending, fmt.Errorf("countdown tick: %w", ErrInvalidPhase)
	}

	if !expired {
		c.emit(Event{Kind: EventCountdownTick, Remaining: remaining, To: s.phase})
		return remaining, trivia.Pending, nil
	}

	s.lastOutcome = trivia.TimedOut
	c.transition(Ended)
	c.logger.Printf("session %s: countdown expired", s.id)
	c.emit(Event{Kind: EventAnswered, Outcome: trivia.TimedOut, To: s.phase})
	return 0, trivia.TimedOut, nil
}

// ResumeAfterCorrectAnswer returns a Resumed session to Playing.
func (c *Controller) ResumeAfterCorrectAnswer() error {
	s := c.session
	if s.phase != Resumed {
		return fmt.Errorf("resume in phase %s: %w", s.phase, ErrInvalidPhase)
	}
	s.question = nil
	c.transition(Playing)

	// An empty board always fits a new batch; the check keeps Playing deadlock-free.
	if c.deadlocked() {
		c.transition(AwaitingTrivia)
		c.presentQuestion()
	}
	return nil
}

// CurrentState returns a snapshot of the session.
func (c *Controller) CurrentState() Snapshot {
	s := c.session
	snap := Snapshot{
		SessionID:   s.id,
		Grid:        s.board.Snapshot(),
		Pieces:      append([]piece.Piece(nil), s.pieces...),
		Score:       s.score,
		Phase:       s.phase,
		LastOutcome: s.lastOutcome,
		Stats:       s.stats,
	}
	if s.question != nil {
		q := *s.question
		snap.Question = &q
		snap.Remaining = c.countdown.Remaining()
	}
	return snap
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.session.phase
}

// Catalog returns the trivia catalog questions are drawn from.
func (c *Controller) Catalog() *trivia.Catalog {
	return c.gate.Catalog()
}

func (c *Controller) transition(to Phase) {
	s := c.session
	from := s.phase
	if from == TriviaAnswering && to != TriviaAnswering {
		c.countdown.Stop()
	}
	s.phase = to
	c.logger.Printf("session %s: %s -> %s (score %d)", s.id, from, to, s.score)
	c.emit(Event{Kind: EventPhaseChanged, From: from, To: to})
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer(e)
	}
}
