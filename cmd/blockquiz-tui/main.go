package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockquiz/config"
	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/internal/app"
)

const frameInterval = time.Second / 30

type frameTick struct{}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	// The terminal belongs to tcell, so the log only goes to a file.
	a, err := app.Open(context.Background(), cfg, nil)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer a.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := s.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer s.Fini()
	s.HideCursor()

	ctrl := a.NewController()
	scheduler := engine.NewScheduler(ctrl)
	scheduler.OnReject(func(err error) { a.Logger.Printf("rejected: %v", err) })

	ui := &UIState{}
	keys := &KeyQueue{}
	engine.Provide(scheduler, ui)
	engine.Provide(scheduler, keys)

	scheduler.Register(&InputSystem{})
	scheduler.Register(&engine.CountdownSystem{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go postTicks(ctx, s)

	last := time.Now()
	for !ui.Quit {
		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			keys.Push(ev)
		case *tcell.EventInterrupt:
			now := ev.When()
			scheduler.Once(now.Sub(last).Seconds())
			last = now
			Render(s, ctrl.CurrentState(), ui)
		}
	}

	stats := ctrl.CurrentState().Stats
	a.Logger.Printf("quit: %d placements, %d lines, %d/%d questions", stats.Placements, stats.LinesCleared, stats.CorrectAnswers, stats.QuestionsAsked)
}

// postTicks wakes the event loop once per frame so the controller is only
// ever touched from the loop's goroutine.
func postTicks(ctx context.Context, s tcell.Screen) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.PostEvent(tcell.NewEventInterrupt(frameTick{}))
		}
	}
}
