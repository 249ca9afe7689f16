// Command blockquiz-sim plays headless games with a bot and prints a Markdown
// report of scores, trivia outcomes and frame timings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/plus3/blockquiz/config"
	"github.com/plus3/blockquiz/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.Sound = false

	cfg.BindFlags(flag.CommandLine)
	flag.IntVar(&cfg.SimGames, "games", cfg.SimGames, "number of games to play")
	flag.Float64Var(&cfg.SimAnswerAccuracy, "accuracy", cfg.SimAnswerAccuracy, "chance the bot answers a question correctly")
	timeoutRate := flag.Float64("timeout-rate", 0, "chance the bot lets the countdown run out")
	strategyName := flag.String("strategy", "random", "placement strategy: random or greedy")
	step := flag.Duration("step", 250*time.Millisecond, "simulated time per frame")
	limit := flag.Duration("duration", time.Minute, "wall-clock limit for the whole run")
	flag.Parse()

	strategy, ok := ParseStrategy(*strategyName)
	if !ok {
		log.Fatalf("unknown strategy %q", *strategyName)
	}
	if *timeoutRate < 0 || *timeoutRate > 1 {
		log.Fatalf("timeout rate must be within [0, 1], got %g", *timeoutRate)
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *limit)
	defer cancel()

	a, err := app.Open(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	bot := NewBot(rand.New(rand.NewPCG(cfg.Seed, ^cfg.Seed)), strategy, cfg.SimGames, cfg.SimAnswerAccuracy, *timeoutRate)
	sim := NewSimulation(a.NewController(), bot, *step)

	report := &Report{
		Strategy:    strategy.String(),
		Seed:        cfg.Seed,
		Accuracy:    cfg.SimAnswerAccuracy,
		TimeoutRate: *timeoutRate,
	}

	a.Logger.Printf("playing %d games (seed %d, %s)", cfg.SimGames, cfg.Seed, strategy)
	err = sim.Run(ctx, report)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		a.Logger.Printf("time limit reached after %d of %d games", report.Games, cfg.SimGames)
	case err != nil:
		a.Logger.Printf("simulation stopped: %v", err)
	}

	fmt.Println()
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
}
