package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator returns an endless wave at freq Hz. Noise ignores freq.
func oscillator(freq float64, wave WaveType, rate beep.SampleRate) (beep.Streamer, error) {
	switch wave {
	case WaveSine:
		return generators.SineTone(rate, freq)
	case WaveSquare:
		return generators.SquareTone(rate, freq)
	case WaveTriangle:
		return generators.TriangleTone(rate, freq)
	case WaveNoise:
		return &noise{rng: rand.New(rand.NewSource(int64(freq*1000) + 1))}, nil
	}
	return nil, fmt.Errorf("audio: unknown wave type %d", wave)
}

// NewTone returns a streamer producing d worth of a single wave at freq Hz.
func NewTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) (beep.Streamer, error) {
	osc, err := oscillator(freq, wave, rate)
	if err != nil {
		return nil, err
	}
	return beep.Take(rate.N(d), osc), nil
}

// noise is endless white noise in [-1, 1].
type noise struct {
	rng *rand.Rand
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// sweepSteps is how many sine segments approximate a glide.
const sweepSteps = 12

// NewSweep returns a sine gliding from one frequency to another over d,
// stepped in equal segments.
func NewSweep(from, to float64, d time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	total := rate.N(d)
	parts := make([]beep.Streamer, 0, sweepSteps)
	for i := 0; i < sweepSteps; i++ {
		freq := from + (to-from)*float64(i)/float64(sweepSteps-1)
		osc, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		n := (i+1)*total/sweepSteps - i*total/sweepSteps
		parts = append(parts, beep.Take(n, osc))
	}
	return beep.Seq(parts...), nil
}

// NewEnvelope shapes s so it fades in over attack and out over release,
// ending after d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	a := min(rate.N(attack), total)
	r := min(rate.N(release), total-a)
	return beep.Seq(
		effects.Transition(beep.Take(a, s), a, 0, 1, effects.TransitionLinear),
		beep.Take(total-a-r, s),
		effects.Transition(beep.Take(r, s), r, 1, 0, effects.TransitionLinear),
	)
}

// note is a tone shaped by an envelope of the same length.
func note(freq float64, d time.Duration, wave WaveType, attack, release time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	t, err := NewTone(freq, d, wave, rate)
	if err != nil {
		return nil, err
	}
	return NewEnvelope(t, d, attack, release, rate), nil
}

// melody plays freqs one after another as enveloped notes.
func melody(freqs []float64, d time.Duration, wave WaveType, release time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		n, err := note(f, d, wave, attackTime, release, rate)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return beep.Seq(notes...), nil
}

// withVolume scales s by a linear gain in [0, 1].
// A zero gain yields a silent streamer because Log2(0) is -Inf.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Sound durations and shapes.
const (
	buildLength   = 90 * time.Millisecond
	goldNote      = 80 * time.Millisecond
	fallLength    = 450 * time.Millisecond
	overNote      = 220 * time.Millisecond
	attackTime    = 5 * time.Millisecond
	shortRelease  = 40 * time.Millisecond
	longRelease   = 200 * time.Millisecond
	musicNote     = 300 * time.Millisecond
	musicRelease  = 120 * time.Millisecond
	musicBaseGain = 0.25
)

// Synth builds the streamer for a sound at the given linear gain.
// It returns nil for SoundNone.
func Synth(st SoundType, rate beep.SampleRate, gain float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch st {
	case SoundBuild:
		// Wooden knock: a low square thump with a touch of noise.
		var body, click beep.Streamer
		if body, err = note(180, buildLength, WaveSquare, attackTime, shortRelease, rate); err != nil {
			return nil, err
		}
		if click, err = note(0, buildLength/3, WaveNoise, 0, buildLength/3, rate); err != nil {
			return nil, err
		}
		s = beep.Mix(withVolume(body, 0.6), withVolume(click, 0.2))
	case SoundGold:
		// Rising three-note chime (E6, G#6, B6).
		if s, err = melody([]float64{1318.51, 1661.22, 1975.53}, goldNote, WaveSine, shortRelease, rate); err != nil {
			return nil, err
		}
		s = withVolume(s, 0.7)
	case SoundFall:
		// Falling whistle over a rumble.
		glide, err := NewSweep(900, 120, fallLength, rate)
		if err != nil {
			return nil, err
		}
		rumble, err := note(0, fallLength, WaveNoise, attackTime, longRelease, rate)
		if err != nil {
			return nil, err
		}
		whistle := NewEnvelope(glide, fallLength, attackTime, longRelease, rate)
		s = beep.Mix(withVolume(whistle, 0.5), withVolume(rumble, 0.15))
	case SoundOver:
		// Descending minor triad.
		if s, err = melody([]float64{392.00, 311.13, 261.63}, overNote, WaveTriangle, longRelease, rate); err != nil {
			return nil, err
		}
		s = withVolume(s, 0.7)
	default:
		return nil, nil
	}
	return withVolume(s, gain), nil
}

// musicLoop is the background melody, a C major arpeggio looped forever.
func musicLoop(rate beep.SampleRate) (beep.Streamer, error) {
	bar := func() (beep.Streamer, error) {
		return melody(musicNotes, musicNote, WaveTriangle, musicRelease, rate)
	}
	// Bars are deterministic, so checking the first one covers the rest.
	if _, err := bar(); err != nil {
		return nil, err
	}
	loop := beep.Iterate(func() beep.Streamer {
		s, _ := bar()
		return s
	})
	return withVolume(loop, musicBaseGain), nil
}

var musicNotes = []float64{261.63, 329.63, 392.00, 523.25, 392.00, 329.63}
