package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
)

// ErrFrameLimit is returned when the games do not finish within the frame budget.
var ErrFrameLimit = errors.New("sim: frame limit reached")

// Simulation drives headless sessions through the scheduler with a bot.
type Simulation struct {
	Scheduler *engine.Scheduler
	Bot       *BotSystem
	Step      time.Duration
	MaxFrames int64
}

// NewSimulation registers the bot ahead of the countdown so an answer queued
// on the question's first frame lands before any tick.
func NewSimulation(c *game.Controller, bot *BotSystem, step time.Duration) *Simulation {
	scheduler := engine.NewScheduler(c)
	scheduler.Register(bot)
	scheduler.Register(&engine.CountdownSystem{})

	return &Simulation{
		Scheduler: scheduler,
		Bot:       bot,
		Step:      step,
		MaxFrames: 10_000_000,
	}
}

// Run steps the scheduler with a fixed simulated delta until the bot is done,
// the context is cancelled or the frame budget runs out. The report covers the
// games finished so far in every case.
func (s *Simulation) Run(ctx context.Context, report *Report) error {
	dt := s.Step.Seconds()
	start := time.Now()

	var err error
	var frames int64
	for !s.Bot.Done() {
		if frames%1024 == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
		}
		if frames >= s.MaxFrames {
			err = ErrFrameLimit
			break
		}

		frameStart := time.Now()
		s.Scheduler.Once(dt)
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		frames++
	}

	report.Elapsed = time.Since(start)
	report.SimTime = time.Duration(frames) * s.Step

	for _, g := range s.Bot.Results {
		report.AddGame(g)
	}

	stats := s.Scheduler.GetStats()
	report.Frames = stats.Frames
	report.Rejected = stats.Rejected
	for _, sys := range stats.Systems {
		report.Systems = append(report.Systems, SystemReport{
			Name:       sys.Name,
			Executions: sys.ExecutionCount,
			Avg:        sys.AvgDuration,
			Max:        sys.MaxDuration,
		})
	}
	report.Finalize()

	return err
}

// NewBot seeds a bot from the simulation parameters.
func NewBot(rng *rand.Rand, strategy Strategy, games int, accuracy, timeoutRate float64) *BotSystem {
	return &BotSystem{
		Rng:         rng,
		Strategy:    strategy,
		Accuracy:    accuracy,
		TimeoutRate: timeoutRate,
		Games:       games,
	}
}
