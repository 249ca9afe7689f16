// Package config loads host settings from BLOCKQUIZ_* environment variables,
// with command-line flags taking precedence.
package config

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/plus3/blockquiz/trivia"
)

// Config holds the settings shared by every host program.
type Config struct {
	Seed          uint64 `env:"BLOCKQUIZ_SEED"`
	DebugUI       bool   `env:"BLOCKQUIZ_DEBUG_UI"`
	Sound         bool   `env:"BLOCKQUIZ_SOUND"           envDefault:"true"`
	QuestionsFile string `env:"BLOCKQUIZ_QUESTIONS_FILE"`
	LogFile       string `env:"BLOCKQUIZ_LOG_FILE"`

	GCPProject  string `env:"BLOCKQUIZ_GCP_PROJECT"`
	GCPRegion   string `env:"BLOCKQUIZ_GCP_REGION"   envDefault:"europe-west1"`
	GeminiModel string `env:"BLOCKQUIZ_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiTopic string `env:"BLOCKQUIZ_GEMINI_TOPIC"`
	GeminiCount int    `env:"BLOCKQUIZ_GEMINI_COUNT" envDefault:"10"`

	SimGames          int     `env:"BLOCKQUIZ_SIM_GAMES"           envDefault:"100"`
	SimAnswerAccuracy float64 `env:"BLOCKQUIZ_SIM_ANSWER_ACCURACY" envDefault:"0.5"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BindFlags registers flags that override the values already in cfg.
func (cfg *Config) BindFlags(fs *flag.FlagSet) {
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.BoolVar(&cfg.DebugUI, "debug-ui", cfg.DebugUI, "show the debug overlay")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play sound effects")
	fs.StringVar(&cfg.QuestionsFile, "questions", cfg.QuestionsFile, "path to a JSON trivia bank")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write the log to this file")
	fs.StringVar(&cfg.GeminiTopic, "topic", cfg.GeminiTopic, "generate trivia about this topic with Gemini")
}

// Validate reports settings that cannot work together.
func (cfg Config) Validate() error {
	if cfg.GeminiTopic != "" && cfg.GCPProject == "" {
		return fmt.Errorf("BLOCKQUIZ_GEMINI_TOPIC needs BLOCKQUIZ_GCP_PROJECT")
	}
	if cfg.GeminiCount < 1 {
		return fmt.Errorf("BLOCKQUIZ_GEMINI_COUNT must be positive, got %d", cfg.GeminiCount)
	}
	if cfg.SimGames < 1 {
		return fmt.Errorf("BLOCKQUIZ_SIM_GAMES must be positive, got %d", cfg.SimGames)
	}
	if cfg.SimAnswerAccuracy < 0 || cfg.SimAnswerAccuracy > 1 {
		return fmt.Errorf("BLOCKQUIZ_SIM_ANSWER_ACCURACY must be within [0, 1], got %g", cfg.SimAnswerAccuracy)
	}
	return nil
}

// Rand returns a generator seeded from Seed, or from the runtime when Seed is 0.
func (cfg Config) Rand() *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Catalog returns the trivia bank from QuestionsFile, or the built-in one.
func (cfg Config) Catalog() (*trivia.Catalog, error) {
	if cfg.QuestionsFile == "" {
		return trivia.DefaultCatalog(), nil
	}

	f, err := os.Open(cfg.QuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()

	catalog, err := trivia.DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("load questions from %s: %w", cfg.QuestionsFile, err)
	}
	return catalog, nil
}
