package game_test

import (
	"bytes"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/lineclear"
	"github.com/plus3/blockquiz/piece"
	"github.com/plus3/blockquiz/placement"
	"github.com/plus3/blockquiz/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, opts ...game.Option) *game.Controller {
	t.Helper()
	opts = append([]game.Option{game.WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return game.NewController(opts...)
}

// checkerboard leaves no two empty cells side by side and no full line.
func checkerboard() *grid.Grid {
	g := grid.New()
	for row := range grid.Size {
		for col := range grid.Size {
			if (row+col)%2 == 0 {
				g.Occupy(row, col)
			}
		}
	}
	return g
}

// deadlock drives c into TriviaAnswering by placing a single block on a
// checkerboard that nothing else fits on. The score is 10 afterwards.
func deadlock(t *testing.T, c *game.Controller) {
	t.Helper()
	pieces := load(t, c, checkerboard(),
		piece.MustLookup("single"),
		piece.MustLookup("domino-h"),
		piece.MustLookup("square"),
	)
	res, err := c.AttemptPlacement(pieces[0].ID, 0, 1)
	require.NoError(t, err)
	require.True(t, res.Deadlocked)
	require.Equal(t, game.TriviaAnswering, c.Phase())
}

func load(t *testing.T, c *game.Controller, g *grid.Grid, shapes ...piece.Shape) []piece.Piece {
	t.Helper()
	pieces, err := c.LoadPosition(g, shapes...)
	require.NoError(t, err)
	return pieces
}

func wrongAnswer(q *trivia.Question) int {
	return (q.Correct + 1) % trivia.OptionCount
}

func TestNewControllerStartsPlaying(t *testing.T) {
	c := newTestController(t)
	snap := c.CurrentState()

	assert.Equal(t, game.Playing, snap.Phase)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, grid.Cells{}, snap.Grid)
	assert.Len(t, snap.Pieces, piece.BatchSize)
	assert.Nil(t, snap.Question)
	for _, p := range snap.Pieces {
		assert.False(t, p.Used)
	}
}

func TestPlaceSingleBlockAtOrigin(t *testing.T) {
	c := newTestController(t)
	pieces := load(t, c, grid.New(),
		piece.MustLookup("single"),
		piece.MustLookup("square"),
		piece.MustLookup("t"),
	)

	res, err := c.AttemptPlacement(pieces[0].ID, 0, 0)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, 10, res.Points)
	assert.Equal(t, 0, res.LinesCleared)
	assert.Equal(t, 0, res.Bonus)
	assert.Equal(t, game.Playing, res.Phase)

	snap := c.CurrentState()
	assert.Equal(t, grid.Filled, snap.Grid[0][0])
	assert.Equal(t, 10, snap.Score)
	assert.True(t, snap.Pieces[0].Used)
	assert.False(t, snap.Pieces[1].Used)
}

func TestCompletingRowFiveClearsIt(t *testing.T) {
	c := newTestController(t)
	tromino := piece.MustLookup("tromino-h")

	pieces := load(t, c, grid.New(), tromino, tromino, tromino)
	for i, col := range []int{0, 3, 6} {
		res, err := c.AttemptPlacement(pieces[i].ID, 5, col)
		require.NoError(t, err)
		require.Equal(t, 0, res.LinesCleared)
	}
	require.Equal(t, 90, c.CurrentState().Score)

	pieces = load(t, c, grid.FromCells(c.CurrentState().Grid),
		piece.MustLookup("single"),
		piece.MustLookup("square"),
		piece.MustLookup("square"),
	)
	res, err := c.AttemptPlacement(pieces[0].ID, 5, 9)
	require.NoError(t, err)

	assert.Equal(t, 1, res.LinesCleared)
	assert.Equal(t, []int{5}, res.Rows)
	assert.Empty(t, res.Cols)
	assert.Equal(t, 100, res.Bonus)
	assert.Equal(t, 90+10+100, c.CurrentState().Score)
	assert.Equal(t, grid.Cells{}, c.CurrentState().Grid)
}

func TestNewBatchAfterAllPiecesUsed(t *testing.T) {
	c := newTestController(t)
	single := piece.MustLookup("single")
	pieces := load(t, c, grid.New(), single, single, single)

	for i, p := range pieces {
		_, err := c.AttemptPlacement(p.ID, 0, i)
		require.NoError(t, err)
		if i < len(pieces)-1 {
			assert.Len(t, c.CurrentState().Pieces, piece.BatchSize)
			assert.True(t, c.CurrentState().Pieces[i].Used)
		}
	}

	snap := c.CurrentState()
	require.Len(t, snap.Pieces, piece.BatchSize)
	for _, p := range snap.Pieces {
		assert.False(t, p.Used)
		for _, old := range pieces {
			assert.NotEqual(t, old.ID, p.ID)
		}
	}
}

func TestRejectedPlacementsLeaveStateUnchanged(t *testing.T) {
	c := newTestController(t)
	g := grid.New()
	g.Occupy(4, 4)
	pieces := load(t, c, g,
		piece.MustLookup("square"),
		piece.MustLookup("tromino-h"),
		piece.MustLookup("single"),
	)

	tests := []struct {
		name string
		id   piece.ID
		row  int
		col  int
		want error
	}{
		{"overlap", pieces[0].ID, 3, 3, game.ErrInvalidPlacement},
		{"off right edge", pieces[1].ID, 0, 8, game.ErrInvalidPlacement},
		{"negative anchor", pieces[2].ID, -1, 0, game.ErrInvalidPlacement},
		{"below grid", pieces[2].ID, grid.Size, 0, game.ErrInvalidPlacement},
		{"unknown id", piece.ID(424242), 0, 0, game.ErrUnknownPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := c.CurrentState()

			res, err := c.AttemptPlacement(tt.id, tt.row, tt.col)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, res.Accepted)
			assert.Equal(t, game.Playing, res.Phase)

			after := c.CurrentState()
			assert.Equal(t, before, after)
		})
	}
}

func TestUsedPieceCannotBePlacedAgain(t *testing.T) {
	c := newTestController(t)
	pieces := load(t, c, grid.New(),
		piece.MustLookup("single"),
		piece.MustLookup("single"),
		piece.MustLookup("single"),
	)

	_, err := c.AttemptPlacement(pieces[0].ID, 0, 0)
	require.NoError(t, err)

	_, err = c.AttemptPlacement(pieces[0].ID, 1, 1)
	assert.ErrorIs(t, err, game.ErrUnknownPiece)
}

func TestQueryValidity(t *testing.T) {
	c := newTestController(t)
	g := grid.New()
	g.Occupy(0, 1)
	pieces := load(t, c, g,
		piece.MustLookup("domino-h"),
		piece.MustLookup("single"),
		piece.MustLookup("single"),
	)

	ok, err := c.QueryValidity(pieces[0].ID, 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.QueryValidity(pieces[0].ID, 1, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.QueryValidity(pieces[0].ID, 0, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.QueryValidity(pieces[0].ID, -1, 0)
	assert.ErrorIs(t, err, game.ErrOutOfRange)

	_, err = c.QueryValidity(piece.ID(1), 0, 0)
	assert.ErrorIs(t, err, game.ErrUnknownPiece)

	assert.Equal(t, 0, c.CurrentState().Stats.Placements, "queries never place")
	assert.Equal(t, g.Snapshot(), c.CurrentState().Grid)
}

func TestDeadlockOpensTrivia(t *testing.T) {
	var changes [][2]game.Phase
	c := newTestController(t, game.WithObserver(func(e game.Event) {
		if e.Kind == game.EventPhaseChanged {
			changes = append(changes, [2]game.Phase{e.From, e.To})
		}
	}))

	deadlock(t, c)

	assert.Equal(t, [][2]game.Phase{
		{game.Playing, game.AwaitingTrivia},
		{game.AwaitingTrivia, game.TriviaAnswering},
	}, changes)

	snap := c.CurrentState()
	require.NotNil(t, snap.Question)
	assert.Equal(t, trivia.CountdownSeconds, snap.Remaining)
	assert.Equal(t, trivia.Pending, snap.LastOutcome)
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 1, snap.Stats.QuestionsAsked)
}

func TestDeadlockIgnoresUsedPieces(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)

	// The single block that was just placed would still fit in plenty of holes,
	// but a used piece does not count towards escaping the deadlock.
	snap := c.CurrentState()
	require.True(t, snap.Pieces[0].Used)
	assert.NotEmpty(t, placement.ValidAnchors(grid.FromCells(snap.Grid), snap.Pieces[0].Shape))
}

func TestNoPlacementDuringTrivia(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)

	snap := c.CurrentState()
	for _, p := range snap.Pieces {
		if p.Used {
			continue
		}
		_, err := c.AttemptPlacement(p.ID, 0, 0)
		assert.ErrorIs(t, err, game.ErrInvalidPhase)
		_, err = c.QueryValidity(p.ID, 0, 0)
		assert.ErrorIs(t, err, game.ErrInvalidPhase)
	}
	assert.ErrorIs(t, c.ResumeAfterCorrectAnswer(), game.ErrInvalidPhase)
}

func TestCountdownTimeout(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)
	scoreAtGate := c.CurrentState().Score

	for want := trivia.CountdownSeconds - 1; want > 0; want-- {
		remaining, outcome, err := c.OnCountdownTick()
		require.NoError(t, err)
		require.Equal(t, want, remaining)
		require.Equal(t, trivia.Pending, outcome)
	}

	remaining, outcome, err := c.OnCountdownTick()
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, trivia.TimedOut, outcome)

	snap := c.CurrentState()
	assert.Equal(t, game.Ended, snap.Phase)
	assert.Equal(t, trivia.TimedOut, snap.LastOutcome)
	assert.Equal(t, scoreAtGate, snap.Score)

	_, _, err = c.OnCountdownTick()
	assert.ErrorIs(t, err, game.ErrInvalidPhase, "no tick after the end")
	_, err = c.SubmitTriviaAnswer(0)
	assert.ErrorIs(t, err, game.ErrInvalidPhase)
	assert.ErrorIs(t, c.ResumeAfterCorrectAnswer(), game.ErrInvalidPhase)
}

func TestCorrectAnswerAtSecondTwentyNine(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)
	before := c.CurrentState()

	for range trivia.CountdownSeconds - 1 {
		_, _, err := c.OnCountdownTick()
		require.NoError(t, err)
	}
	require.Equal(t, 1, c.CurrentState().Remaining)

	outcome, err := c.SubmitTriviaAnswer(before.Question.Correct)
	require.NoError(t, err)
	assert.Equal(t, trivia.Correct, outcome)

	snap := c.CurrentState()
	assert.Equal(t, game.Resumed, snap.Phase)
	assert.Equal(t, grid.Cells{}, snap.Grid)
	assert.Equal(t, before.Score, snap.Score)
	require.Len(t, snap.Pieces, piece.BatchSize)
	var lastID piece.ID
	for _, p := range before.Pieces {
		lastID = max(lastID, p.ID)
	}
	for _, p := range snap.Pieces {
		assert.False(t, p.Used)
		assert.Greater(t, p.ID, lastID, "pieces come from a new batch")
	}

	// A tick that arrives after the answer must not end the session.
	_, _, err = c.OnCountdownTick()
	assert.ErrorIs(t, err, game.ErrInvalidPhase)
	assert.Equal(t, game.Resumed, c.Phase())

	_, err = c.AttemptPlacement(snap.Pieces[0].ID, 0, 0)
	assert.ErrorIs(t, err, game.ErrInvalidPhase, "placement waits for resume")

	require.NoError(t, c.ResumeAfterCorrectAnswer())
	assert.Equal(t, game.Playing, c.Phase())
	assert.Nil(t, c.CurrentState().Question)

	res, err := c.AttemptPlacement(snap.Pieces[0].ID, 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}

func TestIncorrectAnswerEndsSession(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)
	q := c.CurrentState().Question

	outcome, err := c.SubmitTriviaAnswer(wrongAnswer(q))
	require.NoError(t, err)
	assert.Equal(t, trivia.Incorrect, outcome)

	snap := c.CurrentState()
	assert.Equal(t, game.Ended, snap.Phase)
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, trivia.Incorrect, snap.LastOutcome)

	_, _, err = c.OnCountdownTick()
	assert.ErrorIs(t, err, game.ErrInvalidPhase)
}

func TestAnswerOutOfRangeIsRejected(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)

	for _, i := range []int{-1, trivia.OptionCount} {
		_, err := c.SubmitTriviaAnswer(i)
		assert.ErrorIs(t, err, game.ErrOutOfRange)
	}
	assert.Equal(t, game.TriviaAnswering, c.Phase())
}

func TestAnswerOutsideTriviaIsRejected(t *testing.T) {
	c := newTestController(t)

	_, err := c.SubmitTriviaAnswer(0)
	assert.ErrorIs(t, err, game.ErrInvalidPhase)

	_, _, err = c.OnCountdownTick()
	assert.ErrorIs(t, err, game.ErrInvalidPhase)

	assert.ErrorIs(t, c.ResumeAfterCorrectAnswer(), game.ErrInvalidPhase)
	assert.Equal(t, game.Playing, c.Phase())
}

func TestStartNewSessionFromEnded(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)
	oldID := c.CurrentState().SessionID

	_, err := c.SubmitTriviaAnswer(wrongAnswer(c.CurrentState().Question))
	require.NoError(t, err)
	require.Equal(t, game.Ended, c.Phase())

	c.StartNewSession()

	snap := c.CurrentState()
	assert.Equal(t, game.Playing, snap.Phase)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, grid.Cells{}, snap.Grid)
	assert.NotEqual(t, oldID, snap.SessionID)
	assert.Equal(t, game.Stats{}, snap.Stats)
}

func TestStartNewSessionCancelsCountdown(t *testing.T) {
	c := newTestController(t)
	deadlock(t, c)

	c.StartNewSession()
	_, _, err := c.OnCountdownTick()
	assert.ErrorIs(t, err, game.ErrInvalidPhase)
	assert.Equal(t, game.Playing, c.Phase())
}

func TestDeadlockDetectionIsExact(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	shapes := piece.Catalog()

	for trial := range 300 {
		g := grid.New()
		density := 0.4 + 0.6*rng.Float64()
		for row := range grid.Size {
			for col := range grid.Size {
				if rng.Float64() < density {
					g.Occupy(row, col)
				}
			}
		}
		batch := []piece.Shape{
			shapes[rng.IntN(len(shapes))],
			shapes[rng.IntN(len(shapes))],
			shapes[rng.IntN(len(shapes))],
		}

		fits := false
		for _, s := range batch {
			if len(placement.ValidAnchors(g, s)) > 0 {
				fits = true
			}
		}

		c := newTestController(t)
		load(t, c, g, batch...)
		assert.Equal(t, !fits, c.Phase() == game.TriviaAnswering, "trial %d", trial)
	}
}

func TestLoadPosition(t *testing.T) {
	t.Run("rejects wrong batch size", func(t *testing.T) {
		c := newTestController(t)
		_, err := c.LoadPosition(grid.New(), piece.MustLookup("single"))
		assert.ErrorIs(t, err, game.ErrOutOfRange)
	})

	t.Run("rejects outside playing", func(t *testing.T) {
		c := newTestController(t)
		deadlock(t, c)
		_, err := c.LoadPosition(grid.New(),
			piece.MustLookup("single"), piece.MustLookup("single"), piece.MustLookup("single"))
		assert.ErrorIs(t, err, game.ErrInvalidPhase)
	})

	t.Run("copies the board", func(t *testing.T) {
		c := newTestController(t)
		g := grid.New()
		g.Occupy(4, 4)
		load(t, c, g, piece.MustLookup("single"), piece.MustLookup("t"), piece.MustLookup("z"))
		g.Occupy(5, 5)

		snap := c.CurrentState()
		assert.Equal(t, grid.Filled, snap.Grid[4][4])
		assert.Equal(t, grid.Empty, snap.Grid[5][5])
		assert.Equal(t, "t", snap.Pieces[1].Shape.Name())
	})

	t.Run("nil grid loads an empty board", func(t *testing.T) {
		c := newTestController(t)
		g := grid.New()
		g.Occupy(2, 2)
		load(t, c, g, piece.MustLookup("single"), piece.MustLookup("single"), piece.MustLookup("single"))
		require.Equal(t, 1, grid.FromCells(c.CurrentState().Grid).FilledCount())

		load(t, c, nil, piece.MustLookup("single"), piece.MustLookup("single"), piece.MustLookup("single"))
		assert.Equal(t, grid.Cells{}, c.CurrentState().Grid)
	})

	t.Run("keeps the seeded piece sequence", func(t *testing.T) {
		loaded := newTestController(t)
		plain := newTestController(t)

		pieces := load(t, loaded, grid.New(),
			piece.MustLookup("single"), piece.MustLookup("single"), piece.MustLookup("single"))
		for i, p := range pieces {
			_, err := loaded.AttemptPlacement(p.ID, 0, i)
			require.NoError(t, err)
		}

		anchors := [][2]int{{0, 0}, {0, 4}, {5, 0}}
		for i, p := range plain.CurrentState().Pieces {
			_, err := plain.AttemptPlacement(p.ID, anchors[i][0], anchors[i][1])
			require.NoError(t, err)
		}

		got := loaded.CurrentState().Pieces
		want := plain.CurrentState().Pieces
		require.Len(t, got, piece.BatchSize)
		for i := range want {
			assert.Equal(t, want[i].Shape.Name(), got[i].Shape.Name(), "slot %d", i)
		}
	})
}

func TestScoreMatchesPlacementsAndClears(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 1))
	c := newTestController(t, game.WithRand(rand.New(rand.NewPCG(3, 3))))

	expected := 0
	lastScore := 0
	for move := 0; move < 400; move++ {
		switch c.Phase() {
		case game.TriviaAnswering:
			_, err := c.SubmitTriviaAnswer(c.CurrentState().Question.Correct)
			require.NoError(t, err)
			continue
		case game.Resumed:
			require.NoError(t, c.ResumeAfterCorrectAnswer())
			continue
		}

		snap := c.CurrentState()
		g := grid.FromCells(snap.Grid)

		var (
			chosen  piece.Piece
			anchors []placement.Anchor
		)
		for _, p := range snap.Pieces {
			if p.Used {
				continue
			}
			if a := placement.ValidAnchors(g, p.Shape); len(a) > 0 {
				chosen, anchors = p, a
				break
			}
		}
		require.NotEmpty(t, anchors, "Playing with no placeable piece at move %d", move)

		anchor := anchors[rng.IntN(len(anchors))]
		res, err := c.AttemptPlacement(chosen.ID, anchor.Row, anchor.Col)
		require.NoError(t, err)

		expected += chosen.Shape.FilledCount()*placement.PointsPerCell + lineclear.Bonus(res.LinesCleared)
		score := c.CurrentState().Score
		require.Equal(t, expected, score)
		require.GreaterOrEqual(t, score, lastScore)
		lastScore = score
	}
}

func TestLoggerReceivesTransitions(t *testing.T) {
	var buf bytes.Buffer
	c := newTestController(t, game.WithLogger(log.New(&buf, "", 0)))
	deadlock(t, c)

	assert.Contains(t, buf.String(), "started")
	assert.Contains(t, buf.String(), "playing -> awaiting-trivia")
	assert.Contains(t, buf.String(), "awaiting-trivia -> trivia-answering")
}

func TestObserverSeesPlacementsAndRejections(t *testing.T) {
	var kinds []game.EventKind
	c := newTestController(t, game.WithObserver(func(e game.Event) {
		kinds = append(kinds, e.Kind)
	}))
	pieces := load(t, c, grid.New(),
		piece.MustLookup("single"),
		piece.MustLookup("single"),
		piece.MustLookup("single"),
	)

	_, err := c.AttemptPlacement(pieces[0].ID, 0, 0)
	require.NoError(t, err)
	before := c.CurrentState()
	_, err = c.AttemptPlacement(pieces[1].ID, 0, 0)
	require.Error(t, err)

	assert.Equal(t, []game.EventKind{
		game.EventSessionStarted,
		game.EventPlaced,
		game.EventRejected,
	}, kinds)
	assert.Equal(t, before, c.CurrentState(), "a rejection only reaches the observer")
}
