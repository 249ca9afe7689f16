package main

import (
	"fmt"
	"io"
	"math"
	"text/template"
	"time"

	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/trivia"
)

// GameResult is the final state of one simulated game.
type GameResult struct {
	Score   int
	Outcome trivia.Outcome
	Stats   game.Stats
}

type Report struct {
	Strategy    string
	Seed        uint64
	Accuracy    float64
	TimeoutRate float64
	Games       int
	Frames      int64
	Rejected    int64
	Elapsed     time.Duration
	SimTime     time.Duration

	Score      Stats
	Placements Stats
	Lines      Stats
	Questions  Stats

	Answered  int
	Correct   int
	Incorrect int
	TimedOut  int

	FrameTime DurationStats
	Systems   []SystemReport
}

type Stats struct {
	Min     float64
	Max     float64
	Avg     float64
	Total   float64
	Samples int
}

func (s *Stats) Add(v float64) {
	if s.Samples == 0 || v < s.Min {
		s.Min = v
	}
	if s.Samples == 0 || v > s.Max {
		s.Max = v
	}
	s.Total += v
	s.Samples++
}

func (s *Stats) Finalize() {
	if s.Samples > 0 {
		s.Avg = s.Total / float64(s.Samples)
	}
}

type DurationStats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *DurationStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	s.Min = time.Duration(math.MaxInt64)
	var total time.Duration
	for _, d := range s.Samples {
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
		total += d
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

type SystemReport struct {
	Name       string
	Executions int64
	Avg        time.Duration
	Max        time.Duration
}

// AddGame folds one finished game into the report.
func (r *Report) AddGame(g GameResult) {
	r.Games++
	r.Score.Add(float64(g.Score))
	r.Placements.Add(float64(g.Stats.Placements))
	r.Lines.Add(float64(g.Stats.LinesCleared))
	r.Questions.Add(float64(g.Stats.QuestionsAsked))

	r.Correct += g.Stats.CorrectAnswers
	r.Answered += g.Stats.CorrectAnswers
	switch g.Outcome {
	case trivia.Incorrect:
		r.Incorrect++
		r.Answered++
	case trivia.TimedOut:
		r.TimedOut++
	}
}

func (r *Report) Finalize() {
	r.Score.Finalize()
	r.Placements.Finalize()
	r.Lines.Finalize()
	r.Questions.Finalize()
	r.FrameTime.Finalize()
}

// AnswerRate is the share of answered questions that were answered correctly.
func (r *Report) AnswerRate() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

func (r *Report) Generate(w io.Writer) error {
	funcMap := template.FuncMap{
		"fmtDur": func(d time.Duration) string {
			return d.Round(time.Microsecond).String()
		},
		"fmtNum": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

const reportTemplate = `# Blockquiz Simulation Report

## Configuration

| Parameter | Value |
|-----------|-------|
| Strategy | {{.Strategy}} |
| Seed | {{.Seed}} |
| Answer accuracy | {{pct .Accuracy}} |
| Timeout rate | {{pct .TimeoutRate}} |
| Games | {{.Games}} |
| Frames | {{.Frames}} |
| Simulated time | {{fmtDur .SimTime}} |
| Wall time | {{fmtDur .Elapsed}} |

## Games

| Metric | Min | Avg | Max |
|--------|-----|-----|-----|
| Score | {{fmtNum .Score.Min}} | {{fmtNum .Score.Avg}} | {{fmtNum .Score.Max}} |
| Placements | {{fmtNum .Placements.Min}} | {{fmtNum .Placements.Avg}} | {{fmtNum .Placements.Max}} |
| Lines cleared | {{fmtNum .Lines.Min}} | {{fmtNum .Lines.Avg}} | {{fmtNum .Lines.Max}} |
| Questions | {{fmtNum .Questions.Min}} | {{fmtNum .Questions.Avg}} | {{fmtNum .Questions.Max}} |

## Trivia

- Correct answers: {{.Correct}} ({{pct .AnswerRate}} of answered)
- Ended by wrong answer: {{.Incorrect}}
- Ended by timeout: {{.TimedOut}}
- Rejected commands: {{.Rejected}}

## Frame Time

- Min: {{fmtDur .FrameTime.Min}}
- Avg: {{fmtDur .FrameTime.Avg}}
- Max: {{fmtDur .FrameTime.Max}}

## Systems

| System | Executions | Avg | Max |
|--------|------------|-----|-----|
{{range .Systems}}| {{.Name}} | {{.Executions}} | {{fmtDur .Avg}} | {{fmtDur .Max}} |
{{end}}`
