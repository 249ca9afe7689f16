// Package app wires the pieces every interactive host needs: configuration,
// the log destination, the trivia bank and sound.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/plus3/blockquiz/config"
	"github.com/plus3/blockquiz/game"
	"github.com/plus3/blockquiz/sound"
	"github.com/plus3/blockquiz/trivia"
	"github.com/plus3/blockquiz/trivia/gemini"
)

const generateTimeout = 45 * time.Second

// App holds the resources shared by a host for its whole run.
type App struct {
	Config  config.Config
	Logger  *log.Logger
	Catalog *trivia.Catalog
	Sound   *sound.Manager

	logFile *os.File
}

// Open builds an App from cfg. defaultLog receives the log when cfg.LogFile is
// empty. Sound failures are logged and leave the game silent.
func Open(ctx context.Context, cfg config.Config, defaultLog io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}

	out := defaultLog
	if out == nil {
		out = io.Discard
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		out = f
	}
	a.Logger = log.New(out, "blockquiz ", log.LstdFlags)

	catalog, err := loadCatalog(ctx, cfg, a.Logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Catalog = catalog
	a.Logger.Printf("trivia bank: %d questions", catalog.Len())

	volume := 0.0
	if cfg.Sound {
		volume = 0.4
	}
	a.Sound = sound.NewManager(volume)
	if cfg.Sound {
		if err := a.Sound.Initialize(); err != nil {
			a.Logger.Printf("sound disabled: %v", err)
		}
	}

	return a, nil
}

func loadCatalog(ctx context.Context, cfg config.Config, logger *log.Logger) (*trivia.Catalog, error) {
	if cfg.GeminiTopic == "" {
		return cfg.Catalog()
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	gen, err := gemini.NewGenerator(ctx, cfg.GCPProject, cfg.GCPRegion, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}

	logger.Printf("generating %d questions about %q", cfg.GeminiCount, cfg.GeminiTopic)
	catalog, err := gen.Generate(ctx, cfg.GeminiTopic, cfg.GeminiCount)
	if err != nil {
		logger.Printf("question generation failed, using the local bank: %v", err)
		return cfg.Catalog()
	}
	return catalog, nil
}

// NewController returns a controller using the app's catalog, random source
// and logger, reporting events to sound and to any extra observers.
func (a *App) NewController(observers ...game.Observer) *game.Controller {
	return game.NewController(
		game.WithRand(a.Config.Rand()),
		game.WithCatalog(a.Catalog),
		game.WithLogger(a.Logger),
		game.WithObserver(game.Observers(append([]game.Observer{a.Sound.Observer()}, observers...)...)),
	)
}

// Close stops sound and closes the log file.
func (a *App) Close() {
	if a.Sound != nil {
		a.Sound.Cleanup()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
