package main

import (
	"math/rand/v2"

	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/grid"
	"github.com/plus3/blockquiz/lineclear"
	"github.com/plus3/blockquiz/placement"
	"github.com/plus3/blockquiz/trivia"
)

// Strategy picks the bot's next placement.
type Strategy int

const (
	// StrategyRandom places a uniformly chosen piece at a uniformly chosen valid anchor.
	StrategyRandom Strategy = iota
	// StrategyGreedy takes the placement worth the most points this turn.
	StrategyGreedy
)

func (s Strategy) String() string {
	if s == StrategyGreedy {
		return "greedy"
	}
	return "random"
}

// ParseStrategy accepts "random" or "greedy".
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "random":
		return StrategyRandom, true
	case "greedy":
		return StrategyGreedy, true
	}
	return 0, false
}

type move struct {
	slot   int
	anchor placement.Anchor
	points int
}

// BotSystem plays sessions through the command queue until Games have ended.
type BotSystem struct {
	Rng         *rand.Rand
	Strategy    Strategy
	Accuracy    float64
	TimeoutRate float64
	Games       int

	Results []GameResult

	waiting bool
}

// Done reports whether every game has been played.
func (b *BotSystem) Done() bool {
	return len(b.Results) >= b.Games
}

func (b *BotSystem) Execute(frame *engine.Frame) {
	if b.Done() {
		return
	}

	state := frame.State
	switch state.Phase {
	case game.Playing:
		b.waiting = false
		if m, ok := b.choose(state); ok {
			frame.Commands.Place(state.Pieces[m.slot].ID, m.anchor.Row, m.anchor.Col)
		}
	case game.TriviaAnswering:
		if b.waiting {
			return
		}
		b.waiting = true
		if b.Rng.Float64() < b.TimeoutRate {
			return
		}
		answer := state.Question.Correct
		if b.Rng.Float64() >= b.Accuracy {
			answer = (answer + 1 + b.Rng.IntN(trivia.OptionCount-1)) % trivia.OptionCount
		}
		frame.Commands.Answer(answer)
	case game.Resumed:
		frame.Commands.Resume()
	case game.Ended:
		b.Results = append(b.Results, GameResult{
			Score:   state.Score,
			Outcome: state.LastOutcome,
			Stats:   state.Stats,
		})
		if !b.Done() {
			frame.Commands.Restart()
		}
	}
}

func (b *BotSystem) choose(state game.Snapshot) (move, bool) {
	board := grid.FromCells(state.Grid)

	var moves []move
	for slot, p := range state.Pieces {
		if p.Used {
			continue
		}
		for _, a := range placement.ValidAnchors(board, p.Shape) {
			m := move{slot: slot, anchor: a}
			if b.Strategy == StrategyGreedy {
				trial := grid.FromCells(state.Grid)
				m.points = placement.Place(trial, p.Shape, a.Row, a.Col)
				m.points += lineclear.Bonus(lineclear.Sweep(trial).Lines)
			}
			moves = append(moves, m)
		}
	}
	if len(moves) == 0 {
		return move{}, false
	}

	if b.Strategy == StrategyRandom {
		return moves[b.Rng.IntN(len(moves))], true
	}

	best := moves[0]
	for _, m := range moves[1:] {
		if m.points > best.points {
			best = m
		}
	}
	return best, true
}
