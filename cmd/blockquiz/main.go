package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockquiz/config"
	"github.com/plus3/blockquiz/debugui"
	debugui_ebiten "github.com/plus3/blockquiz/debugui/ebiten"
	"github.com/plus3/blockquiz/engine"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/internal/app"
)

const debugPanelWidth = 820

// Game implements ebiten.Game on top of the engine scheduler.
type Game struct {
	ctrl      *game.Controller
	scheduler *engine.Scheduler
	renderer  *Renderer
	drag      *DragState
	imgui     *debugui_ebiten.ImguiBackend
	lastTick  time.Time
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}

	g.scheduler.Once(dt)

	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.ctrl.CurrentState(), g.drag)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return ScreenWidth, ScreenHeight
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	a, err := app.Open(context.Background(), cfg, os.Stderr)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer a.Close()

	events := debugui.NewEventLog(200)
	ctrl := a.NewController(events.Observer())

	renderer, err := NewRenderer()
	if err != nil {
		log.Fatalf("fonts: %v", err)
	}

	scheduler := engine.NewScheduler(ctrl)
	scheduler.OnReject(func(err error) { a.Logger.Printf("rejected: %v", err) })

	drag := &DragState{}
	engine.Provide(scheduler, drag)
	engine.Provide(scheduler, &debugui.ImguiInputState{})

	g := &Game{
		ctrl:      ctrl,
		scheduler: scheduler,
		renderer:  renderer,
		drag:      drag,
		lastTick:  time.Now(),
	}

	if cfg.DebugUI {
		g.imgui = debugui_ebiten.NewImguiBackend("blockquiz", ScreenWidth+debugPanelWidth, ScreenHeight)
		engine.Provide(scheduler, g.imgui)
	} else {
		ebiten.SetWindowTitle("blockquiz")
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}

	scheduler.Register(&KeyboardSystem{})
	scheduler.Register(&AnswerClickSystem{})
	scheduler.Register(&DragSystem{})
	scheduler.Register(&engine.CountdownSystem{})

	if g.imgui != nil {
		panels := &debugui.ImguiSystem{}
		panels.Add(debugui.NewSessionPanel().Render)
		panels.Add(events.Render)
		panels.Add(debugui.NewPerformanceStats(scheduler, 120).Render)
		scheduler.Register(panels)
	}

	a.Logger.Printf("window %dx%d, debug ui %t", ScreenWidth, ScreenHeight, cfg.DebugUI)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("run: %v", err)
	}
}
