package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockquiz/game"
)

const sampleRate = beep.SampleRate(48000)

// Manager mixes cues into the speaker. Every method is safe to call before
// Initialize or after Initialize failed; playback is then silently skipped.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[CueKind]int
}

// NewManager creates a manager playing cues at volume (0..1).
func NewManager(volume float64) *Manager {
	return &Manager{
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[CueKind]int),
	}
}

// Initialize opens the speaker.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops everything that is playing.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Play starts cue on top of whatever is already playing.
func (m *Manager) Play(cue Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.played[cue.Kind]++
	if !m.initialized {
		return
	}

	s := Streamer(cue, sampleRate, m.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times a cue of kind was requested.
func (m *Manager) Played(kind CueKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[kind]
}

// Observer returns a controller observer that plays the cue for each event.
func (m *Manager) Observer() game.Observer {
	return func(e game.Event) {
		if cue, ok := CueFor(e); ok {
			m.Play(cue)
		}
	}
}
