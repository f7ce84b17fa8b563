package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/kinematics/tracker"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond
)

// stateTones maps each tracker state to the cue played on entering it
var stateTones = map[tracker.State]Tone{
	tracker.StateActive: {
		From: 660, To: 1320, Duration: 70 * time.Millisecond,
		Attack: 5 * time.Millisecond, Release: 30 * time.Millisecond,
		Wave: WaveSine, Volume: 0.25,
	},
	tracker.StateWandering: {
		From: 520, To: 260, Duration: 180 * time.Millisecond,
		Attack: 10 * time.Millisecond, Release: 80 * time.Millisecond,
		Wave: WaveSine, Volume: 0.2,
	},
	tracker.StateResting: {
		From: 110, To: 110, Duration: 200 * time.Millisecond,
		Attack: 20 * time.Millisecond, Release: 120 * time.Millisecond,
		Wave: WaveSquare, Volume: 0.08,
	},
	tracker.StatePaused: {
		Duration: 15 * time.Millisecond,
		Attack:   time.Millisecond, Release: 10 * time.Millisecond,
		Wave: WaveNoise, Volume: 0.15,
	},
}

// ToneFor returns the cue for a state
func ToneFor(s tracker.State) (Tone, bool) {
	t, ok := stateTones[s]
	return t, ok
}

// Cues plays a short tone whenever the tracker changes state
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewCues creates an uninitialized cue player, every method is a no-op until Init succeeds
func NewCues() *Cues {
	return &Cues{mixer: &beep.Mixer{}}
}

// Init opens the speaker, calling it again after success is a no-op
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (c *Cues) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// ToggleMute flips the mute flag and returns the new value
func (c *Cues) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
	return c.muted
}

// Play enqueues the tone for s, returns false if nothing was queued
func (c *Cues) Play(s tracker.State) bool {
	tone, ok := stateTones[s]
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.muted {
		return false
	}

	// Mixer is read by the speaker goroutine
	speaker.Lock()
	c.mixer.Add(tone.Streamer(sampleRate))
	speaker.Unlock()
	return true
}

// Close silences pending tones and releases the speaker
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.mixer.Clear()
	c.initialized = false
}
