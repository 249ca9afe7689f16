package engine_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/piece"
	"github.com/plus3/blockquiz/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSystem struct {
	name  string
	log   *[]string
	count int
}

func (s *recordingSystem) Execute(frame *engine.Frame) {
	s.count++
	*s.log = append(*s.log, s.name)
}

type Palette struct {
	Name string
}

type resourceSystem struct {
	Game    engine.Singleton[game.Controller]
	Palette engine.Singleton[Palette]
	Missing engine.Singleton[time.Location]
}

func (s *resourceSystem) Execute(frame *engine.Frame) {}

type placeFirstTwice struct{}

func (placeFirstTwice) Execute(frame *engine.Frame) {
	id := frame.State.Pieces[0].ID
	frame.Commands.Place(id, 0, 0)
	frame.Commands.Place(id, 0, 0)
}

func newController(t *testing.T) *game.Controller {
	t.Helper()
	return game.NewController(game.WithRand(rand.New(rand.NewPCG(5, 8))))
}

// openQuestion loads a full board so the session goes straight to the trivia gate.
func openQuestion(t *testing.T, c *game.Controller) {
	t.Helper()
	g := grid.New()
	for row := range grid.Size {
		for col := range grid.Size {
			g.Occupy(row, col)
		}
	}
	single := piece.MustLookup("single")
	_, err := c.LoadPosition(g, single, single, single)
	require.NoError(t, err)
	require.Equal(t, game.TriviaAnswering, c.Phase())
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		scheduler := engine.NewScheduler(newController(t))

		var order []string
		first := &recordingSystem{name: "first", log: &order}
		second := &recordingSystem{name: "second", log: &order}
		scheduler.Register(first)
		scheduler.Register(second)

		scheduler.Once(1.0 / 60)
		scheduler.Once(1.0 / 60)

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
		assert.Equal(t, 2, first.count)
		assert.Equal(t, 2, second.count)
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := engine.NewScheduler(newController(t))
		var order []string
		scheduler.Register(&recordingSystem{name: "a", log: &order})
		scheduler.Register(&engine.CountdownSystem{})

		for range 3 {
			scheduler.Once(0.016)
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Zero(t, stats.Rejected)
		require.Len(t, stats.Systems, 2)
		assert.Equal(t, "recordingSystem", stats.Systems[0].Name)
		assert.Equal(t, "CountdownSystem", stats.Systems[1].Name)
		for _, s := range stats.Systems {
			assert.Equal(t, int64(3), s.ExecutionCount)
			assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		}
	})

	t.Run("run stops when context is cancelled", func(t *testing.T) {
		scheduler := engine.NewScheduler(newController(t))
		var order []string
		system := &recordingSystem{name: "tick", log: &order}
		scheduler.Register(system)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, 5*time.Millisecond)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop after cancellation")
		}
		assert.Positive(t, system.count)
	})
}

func TestSingletonInjection(t *testing.T) {
	c := newController(t)
	scheduler := engine.NewScheduler(c)
	palette := &Palette{Name: "dusk"}
	engine.Provide(scheduler, palette)

	system := &resourceSystem{}
	scheduler.Register(system)

	assert.Same(t, c, system.Game.Get())
	assert.Same(t, palette, system.Palette.Get())
	assert.False(t, system.Missing.Exists())

	loc := time.UTC
	engine.Provide(scheduler, loc)
	assert.True(t, system.Missing.Exists(), "late resources are found on first use")
	assert.Same(t, palette, engine.Lookup[Palette](scheduler.Resources()))
}

func TestCommandsFlushInOrder(t *testing.T) {
	c := newController(t)
	scheduler := engine.NewScheduler(c)

	var rejected []error
	scheduler.OnReject(func(err error) { rejected = append(rejected, err) })

	var scoreSeen int
	scheduler.Register(placeFirstTwice{})
	scheduler.Register(deferSystem(func(frame *engine.Frame) {
		frame.Commands.Defer(func() { scoreSeen = c.CurrentState().Score })
	}))

	scheduler.Once(0.016)

	snap := c.CurrentState()
	assert.Equal(t, 1, snap.Stats.Placements)
	assert.Equal(t, snap.Score, scoreSeen, "deferred work sees earlier commands applied")
	assert.Positive(t, scoreSeen)

	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], game.ErrUnknownPiece)
	assert.Equal(t, int64(1), scheduler.GetStats().Rejected)
}

type deferSystem func(frame *engine.Frame)

func (f deferSystem) Execute(frame *engine.Frame) { f(frame) }

func TestCommandsLen(t *testing.T) {
	c := newController(t)
	scheduler := engine.NewScheduler(c)

	var queued int
	scheduler.Register(deferSystem(func(frame *engine.Frame) {
		frame.Commands.Tick()
		frame.Commands.Answer(0)
		frame.Commands.Resume()
		queued = frame.Commands.Len()
	}))
	scheduler.Once(0)

	assert.Equal(t, 3, queued)
	assert.Equal(t, int64(3), scheduler.GetStats().Rejected, "none of them apply while playing")
	assert.Equal(t, game.Playing, c.Phase())
}

func TestCountdownSystem(t *testing.T) {
	t.Run("times out after thirty seconds of frames", func(t *testing.T) {
		c := newController(t)
		openQuestion(t, c)

		scheduler := engine.NewScheduler(c)
		scheduler.Register(&engine.CountdownSystem{})

		for range 2*trivia.CountdownSeconds - 2 {
			scheduler.Once(0.5)
		}
		snap := c.CurrentState()
		require.Equal(t, game.TriviaAnswering, snap.Phase)
		assert.Equal(t, 1, snap.Remaining)

		scheduler.Once(0.5)
		assert.Equal(t, game.TriviaAnswering, c.Phase(), "half a second is not a tick")

		scheduler.Once(0.5)
		snap = c.CurrentState()
		assert.Equal(t, game.Ended, snap.Phase)
		assert.Equal(t, trivia.TimedOut, snap.LastOutcome)
		assert.Zero(t, scheduler.GetStats().Rejected)
	})

	t.Run("a long frame rejects ticks past expiry", func(t *testing.T) {
		c := newController(t)
		openQuestion(t, c)

		scheduler := engine.NewScheduler(c)
		scheduler.Register(&engine.CountdownSystem{})
		scheduler.Once(45)

		assert.Equal(t, game.Ended, c.Phase())
		assert.Equal(t, int64(45-trivia.CountdownSeconds), scheduler.GetStats().Rejected)
	})

	t.Run("idle outside trivia", func(t *testing.T) {
		c := newController(t)
		scheduler := engine.NewScheduler(c)
		countdown := &engine.CountdownSystem{}
		scheduler.Register(countdown)

		scheduler.Once(3)

		assert.Zero(t, countdown.Accumulator)
		assert.Zero(t, scheduler.GetStats().Rejected)
		assert.Equal(t, game.Playing, c.Phase())
	})

	t.Run("answering stops the clock", func(t *testing.T) {
		c := newController(t)
		openQuestion(t, c)
		q := c.CurrentState().Question

		scheduler := engine.NewScheduler(c)
		countdown := &engine.CountdownSystem{}
		scheduler.Register(countdown)
		scheduler.Register(deferSystem(func(frame *engine.Frame) {
			if frame.State.Phase == game.TriviaAnswering && frame.State.Remaining == 10 {
				frame.Commands.Answer(q.Correct)
			}
		}))

		for range 40 {
			scheduler.Once(1)
		}

		snap := c.CurrentState()
		assert.Equal(t, game.Resumed, snap.Phase)
		assert.Equal(t, trivia.Correct, snap.LastOutcome)
		assert.Zero(t, countdown.Accumulator)
	})
}

func TestDeferredCommandsRunInSameFlush(t *testing.T) {
	c := newController(t)
	scheduler := engine.NewScheduler(c)

	first := c.CurrentState().SessionID
	scheduler.Register(deferSystem(func(frame *engine.Frame) {
		frame.Commands.Defer(func() { frame.Commands.Restart() })
	}))
	scheduler.Once(0)

	assert.NotEqual(t, first, c.CurrentState().SessionID)
}
