package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer did not end")
	return nil
}

func TestSoundFor(t *testing.T) {
	tests := []struct {
		name string
		ev   core.Event
		want SoundType
	}{
		{"placed", core.Event{Kind: core.EventFloorPlaced, Points: 1}, SoundBuild},
		{"golden", core.Event{Kind: core.EventFloorPlaced, Golden: true, Points: 2}, SoundGold},
		{"toppled", core.Event{Kind: core.EventFloorToppled, Direction: core.DirLeft}, SoundFall},
		{"life lost", core.Event{Kind: core.EventLifeLost}, SoundOver},
		{"collapse", core.Event{Kind: core.EventTowerCollapsed, Direction: core.DirRight}, SoundOver},
		{"game over", core.Event{Kind: core.EventGameOver}, SoundNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SoundFor(tt.ev))
		})
	}
}

func TestSoundTypeString(t *testing.T) {
	assert.Equal(t, "build", SoundBuild.String())
	assert.Equal(t, "gold", SoundGold.String())
	assert.Equal(t, "fall", SoundFall.String())
	assert.Equal(t, "over", SoundOver.String())
	assert.Equal(t, "none", SoundNone.String())
}

// tone builds a fixed-length wave and fails the test on error.
func tone(t *testing.T, freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	t.Helper()
	s, err := NewTone(freq, d, wave, rate)
	require.NoError(t, err)
	return s
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(1000)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle, WaveNoise} {
		samples := drain(t, tone(t, 50, 100*time.Millisecond, wave, rate))
		require.Len(t, samples, 100, "wave %d", wave)
		for i, s := range samples {
			assert.InDelta(t, 0, s[0], 1.0000001, "wave %d sample %d", wave, i)
			assert.Equal(t, s[0], s[1], "channels must match")
		}
	}
}

func TestSquareTone(t *testing.T) {
	samples := drain(t, tone(t, 100, 50*time.Millisecond, WaveSquare, beep.SampleRate(1000)))
	for _, s := range samples {
		assert.Contains(t, []float64{-1, 1}, s[0])
	}
}

func TestToneRejectsBadInput(t *testing.T) {
	rate := beep.SampleRate(1000)
	_, err := NewTone(600, time.Second, WaveSine, rate)
	assert.Error(t, err, "frequency above Nyquist")
	_, err = NewTone(100, time.Second, WaveType(42), rate)
	assert.Error(t, err)
	_, err = NewSweep(100, 900, time.Second, rate)
	assert.Error(t, err)
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	src := tone(t, 0, time.Second, WaveSquare, rate) // phase stays 0, so constant 1
	env := NewEnvelope(src, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	samples := drain(t, env)
	require.Len(t, samples, 100)

	assert.Equal(t, 0.0, samples[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, samples[5][0], 1e-9)
	assert.Equal(t, 1.0, samples[50][0], "sustain at full level")
	assert.InDelta(t, 0.05, samples[99][0], 1e-9, "release fades out")
}

func TestEnvelopeLongerThanNote(t *testing.T) {
	rate := beep.SampleRate(1000)
	src := tone(t, 0, time.Second, WaveSquare, rate)
	env := NewEnvelope(src, 10*time.Millisecond, 8*time.Millisecond, 8*time.Millisecond, rate)

	samples := drain(t, env)
	require.Len(t, samples, 10)
	assert.Equal(t, 0.0, samples[0][0])
}

func TestSweepEnds(t *testing.T) {
	s, err := NewSweep(400, 100, 20*time.Millisecond, beep.SampleRate(1000))
	require.NoError(t, err)
	assert.Len(t, drain(t, s), 20)

	s, err = NewSweep(400, 100, 37*time.Millisecond, beep.SampleRate(1000))
	require.NoError(t, err)
	assert.Len(t, drain(t, s), 37, "uneven lengths are spread over the steps")
}

func TestSynthProducesFiniteSounds(t *testing.T) {
	for _, st := range []SoundType{SoundBuild, SoundGold, SoundFall, SoundOver} {
		t.Run(st.String(), func(t *testing.T) {
			s, err := Synth(st, SampleRate, 1)
			require.NoError(t, err)
			require.NotNil(t, s)

			samples := drain(t, s)
			assert.NotEmpty(t, samples)
			assert.Less(t, len(samples), SampleRate.N(2*time.Second))

			loud := false
			for _, v := range samples {
				if v[0] != 0 {
					loud = true
					break
				}
			}
			assert.True(t, loud, "sound should not be silent")
		})
	}
	s, err := Synth(SoundNone, SampleRate, 1)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestSynthZeroGainIsSilent(t *testing.T) {
	s, err := Synth(SoundBuild, SampleRate, 0)
	require.NoError(t, err)
	for _, v := range drain(t, s) {
		assert.Equal(t, 0.0, v[0])
	}
}

func TestMusicLoopNeverEnds(t *testing.T) {
	s, err := musicLoop(beep.SampleRate(2000))
	require.NoError(t, err)
	buf := make([][2]float64, 1000)
	// Six notes of 300ms each is a 1.8s bar; stream well past it.
	for i := 0; i < 10; i++ {
		n, ok := s.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
}

func TestMutedManagerCountsEvents(t *testing.T) {
	m := NewManager(Options{Mute: true, SoundVolume: 80})
	require.NoError(t, m.Init())
	assert.False(t, m.Enabled())

	assert.Equal(t, SoundGold, m.Handle(core.Event{Kind: core.EventFloorPlaced, Golden: true}))
	assert.Equal(t, SoundBuild, m.Handle(core.Event{Kind: core.EventFloorPlaced}))
	assert.Equal(t, SoundBuild, m.Handle(core.Event{Kind: core.EventFloorPlaced}))
	assert.Equal(t, SoundNone, m.Handle(core.Event{Kind: core.EventGameOver}))

	assert.Equal(t, 1, m.Played(SoundGold))
	assert.Equal(t, 2, m.Played(SoundBuild))
	assert.Equal(t, 0, m.Played(SoundNone))

	// No speaker: these are no-ops.
	m.StartMusic()
	m.StopMusic()
	m.SetVolumes(10, 0)
	m.Close()
}

func TestVolumeGain(t *testing.T) {
	assert.Equal(t, 0.0, volumeGain(-5))
	assert.Equal(t, 0.5, volumeGain(50))
	assert.Equal(t, 1.0, volumeGain(250))
}

func TestMusicGain(t *testing.T) {
	rate := beep.SampleRate(1000)
	g := &effects.Gain{Streamer: tone(t, 0, 10*time.Millisecond, WaveSquare, rate), Gain: volumeGain(25) - 1}
	samples := drain(t, g)
	require.Len(t, samples, 10)
	assert.Equal(t, 0.25, samples[3][0])
}

func TestSetVolumesBeforeMusic(t *testing.T) {
	m := NewManager(Options{Mute: true, MusicVolume: 80})
	assert.Equal(t, 0.8, m.musicGain)

	m.SetVolumes(30, 40)
	assert.Equal(t, 0.3, m.soundVol)
	assert.Equal(t, 0.4, m.musicGain)
	assert.Nil(t, m.musicVol, "music is not built until it starts")
}
