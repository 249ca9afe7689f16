// Package sound turns controller events into short synthesized cues played
// through the system speaker.
package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/trivia"
)

// CueKind identifies a sound effect.
type CueKind int

const (
	CuePlace CueKind = iota
	CueClear
	CueReject
	CueQuestion
	CueTick
	CueCorrect
	CueGameOver
)

func (k CueKind) String() string {
	switch k {
	case CuePlace:
		return "place"
	case CueClear:
		return "clear"
	case CueReject:
		return "reject"
	case CueQuestion:
		return "question"
	case CueTick:
		return "tick"
	case CueCorrect:
		return "correct"
	case CueGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Cue is a sound effect with its parameters.
type Cue struct {
	Kind    CueKind
	Lines   int
	Urgency trivia.Urgency
}

// CueFor maps a controller event to the cue that accompanies it.
func CueFor(e game.Event) (Cue, bool) {
	switch e.Kind {
	case game.EventPlaced:
		if e.Placement.LinesCleared > 0 {
			return Cue{Kind: CueClear, Lines: e.Placement.LinesCleared}, true
		}
		return Cue{Kind: CuePlace}, true
	case game.EventRejected:
		return Cue{Kind: CueReject}, true
	case game.EventPhaseChanged:
		if e.To == game.TriviaAnswering {
			return Cue{Kind: CueQuestion}, true
		}
	case game.EventCountdownTick:
		return Cue{Kind: CueTick, Urgency: trivia.UrgencyOf(e.Remaining)}, true
	case game.EventAnswered:
		if e.Outcome == trivia.Correct {
			return Cue{Kind: CueCorrect}, true
		}
		return Cue{Kind: CueGameOver}, true
	}
	return Cue{}, false
}

// C major pentatonic, climbing one step per cleared line.
var clearScale = []float64{523.25, 587.33, 659.25, 783.99, 880.00, 1046.50}

// Streamer synthesizes cue at the given rate and volume.
func Streamer(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue.Kind {
	case CuePlace:
		s = note(220, 40*time.Millisecond, WaveSine, rate)
	case CueClear:
		lines := min(max(cue.Lines, 1), len(clearScale))
		notes := make([]beep.Streamer, 0, lines)
		for i := range lines {
			notes = append(notes, note(clearScale[i], 90*time.Millisecond, WaveSine, rate))
		}
		s = beep.Seq(notes...)
	case CueReject:
		s = newVolume(note(100, 150*time.Millisecond, WaveSaw, rate), 0.6)
	case CueQuestion:
		s = beep.Seq(
			note(659.25, 120*time.Millisecond, WaveSquare, rate),
			note(987.77, 180*time.Millisecond, WaveSquare, rate),
		)
	case CueTick:
		freq := 1000.0
		switch cue.Urgency {
		case trivia.Warning:
			freq = 1200
		case trivia.Critical:
			freq = 1500
		}
		s = note(freq, 30*time.Millisecond, WaveSquare, rate)
	case CueCorrect:
		s = beep.Seq(
			note(783.99, 100*time.Millisecond, WaveSine, rate),
			note(1046.50, 100*time.Millisecond, WaveSine, rate),
			note(1318.51, 200*time.Millisecond, WaveSine, rate),
		)
	case CueGameOver:
		s = beep.Seq(
			note(392.00, 200*time.Millisecond, WaveSaw, rate),
			note(311.13, 200*time.Millisecond, WaveSaw, rate),
			note(261.63, 400*time.Millisecond, WaveSaw, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
