// Package audio turns gameplay events into synthesized sound effects.
// Sounds are generated with gopxl/beep generators; no asset files are needed.
// When the speaker cannot be opened the manager runs headless and only
// tracks what it would have played.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

// SampleRate is the output rate of every generated sound.
const SampleRate = beep.SampleRate(44100)

// SoundType identifies one of the game's sound effects.
type SoundType int

const (
	SoundNone  SoundType = iota
	SoundBuild           // A floor was placed
	SoundGold            // A floor was placed within the golden tolerance
	SoundFall            // A floor toppled off the stack
	SoundOver            // A life was lost or the tower is collapsing
)

// String returns the sound name.
func (s SoundType) String() string {
	switch s {
	case SoundBuild:
		return "build"
	case SoundGold:
		return "gold"
	case SoundFall:
		return "fall"
	case SoundOver:
		return "over"
	default:
		return "none"
	}
}

// SoundFor maps a gameplay event to its sound effect.
func SoundFor(ev core.Event) SoundType {
	switch ev.Kind {
	case core.EventFloorPlaced:
		if ev.Golden {
			return SoundGold
		}
		return SoundBuild
	case core.EventFloorToppled:
		return SoundFall
	case core.EventLifeLost, core.EventTowerCollapsed:
		return SoundOver
	default:
		return SoundNone
	}
}

// Options configures a Manager.
type Options struct {
	SoundVolume int // 0-100
	MusicVolume int // 0-100
	Mute        bool
	Logger      *log.Logger
}

// Manager plays sound effects for gameplay events.
// It is safe for use from the Bubble Tea update loop while the speaker
// goroutine drains the mixer.
type Manager struct {
	mu        sync.Mutex
	mixer     *beep.Mixer
	music     *beep.Ctrl
	musicVol  *effects.Gain // Nil until the music starts
	musicGain float64
	soundVol  float64
	mute      bool
	enabled   bool // speaker initialised
	played    map[SoundType]int
	logger    *log.Logger
}

// NewManager creates a manager. Call Init to open the speaker.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		mixer:     &beep.Mixer{},
		musicGain: volumeGain(opts.MusicVolume),
		soundVol:  volumeGain(opts.SoundVolume),
		mute:      opts.Mute,
		played:    make(map[SoundType]int),
		logger:    logger,
	}
}

// Init opens the speaker. A muted manager never touches the audio device.
// On failure the manager stays usable in headless mode.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mute || m.enabled {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		m.logger.Warn("audio disabled", "error", err)
		return err
	}
	speaker.Play(m.mixer)
	m.enabled = true
	m.logger.Debug("audio initialised", "rate", int(SampleRate))
	return nil
}

// Enabled reports whether sounds reach the speaker.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Handle plays the sound mapped to ev and returns it.
func (m *Manager) Handle(ev core.Event) SoundType {
	st := SoundFor(ev)
	if st != SoundNone {
		m.Play(st)
	}
	return st
}

// Play queues a sound effect.
func (m *Manager) Play(st SoundType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.played[st]++
	if !m.enabled || m.soundVol <= 0 {
		return
	}
	s, err := Synth(st, SampleRate, m.soundVol)
	if err != nil {
		m.logger.Warn("could not synthesize sound", "sound", st, "error", err)
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times st was requested.
func (m *Manager) Played(st SoundType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played[st]
}

// SetVolumes updates the sound and music volumes (0-100).
func (m *Manager) SetVolumes(sound, music int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.soundVol = volumeGain(sound)
	m.musicGain = volumeGain(music)
	if m.musicVol == nil {
		return
	}
	speaker.Lock()
	m.musicVol.Gain = m.musicGain - 1
	speaker.Unlock()
}

// StartMusic begins the background loop if it is not already playing.
func (m *Manager) StartMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()

	if m.music != nil {
		m.music.Paused = false
		return
	}
	loop, err := musicLoop(SampleRate)
	if err != nil {
		m.logger.Warn("could not start music", "error", err)
		return
	}
	// effects.Gain scales by 1+Gain
	m.musicVol = &effects.Gain{Streamer: loop, Gain: m.musicGain - 1}
	m.music = &beep.Ctrl{Streamer: m.musicVol}
	m.mixer.Add(m.music)
}

// StopMusic pauses the background loop.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.music == nil {
		return
	}
	speaker.Lock()
	m.music.Paused = true
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.music = nil
	m.musicVol = nil
	m.enabled = false
}

// volumeGain converts a 0-100 volume into a linear gain.
func volumeGain(v int) float64 {
	return float64(min(100, max(0, v))) / 100
}
