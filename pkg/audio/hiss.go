package audio

import (
	"math"
	"sync"

	"vcrfx/internal/noise"
	"vcrfx/internal/util"
	"vcrfx/pkg/vcr"
)

const (
	baseHiss       = 0.02
	staticHiss     = 0.35
	tapeDamageHiss = 0.15

	crackleChance = 0.002
	crackleAmp    = 0.25

	// per-sample approach rate towards the target level
	smoothing = 0.001

	clipKnee = 0.8
)

// Levels are the loudness targets derived from the effect state
type Levels struct {
	Enabled    bool
	Static     bool
	TapeDamage bool
	Tracking   bool
}

// LevelsFrom maps a snapshot to hiss levels
func LevelsFrom(s vcr.Snapshot) Levels {
	return Levels{
		Enabled:    s.Initialized && s.Enabled,
		Static:     s.Static > 0,
		TapeDamage: s.TapeDamage > 0,
		Tracking:   s.Tracking,
	}
}

// Hiss generates tape noise. Fill runs on the audio thread, SetLevels on
// the render thread.
type Hiss struct {
	mu      sync.Mutex
	rng     *noise.Xorshift32
	volume  float32
	target  float32
	level   float32
	crackle bool
}

// NewHiss creates a silent generator; volume is clamped to [0, 1]
func NewHiss(volume float32, seed uint32) *Hiss {
	return &Hiss{
		rng:    noise.NewXorshift32(seed),
		volume: util.Clamp01(volume),
	}
}

// SetLevels updates the target loudness
func (h *Hiss) SetLevels(l Levels) {
	target := float32(0)
	if l.Enabled {
		target = baseHiss
		if l.TapeDamage {
			target = max(target, tapeDamageHiss)
		}
		if l.Static {
			target = max(target, staticHiss)
		}
	}

	h.mu.Lock()
	h.target = target * h.volume
	h.crackle = l.Enabled && l.Tracking
	h.mu.Unlock()
}

// Target returns the current target amplitude
func (h *Hiss) Target() float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.target
}

// Fill writes interleaved samples for the given channel count
func (h *Hiss) Fill(out []float32, channels int) {
	if channels < 1 {
		channels = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := 0; i+channels <= len(out); i += channels {
		h.level = util.Lerp(h.level, h.target, smoothing)

		sample := (h.rng.Float01()*2 - 1) * h.level
		if h.crackle && h.rng.Float01() < crackleChance {
			sample += (h.rng.Float01()*2 - 1) * crackleAmp * h.volume
		}
		sample = softClip(sample)

		for c := 0; c < channels; c++ {
			out[i+c] = sample
		}
	}
	// leftover samples of a partial frame stay silent
	for i := len(out) - len(out)%channels; i < len(out); i++ {
		out[i] = 0
	}
}

// softClip leaves the signal alone below the knee and bends it smoothly
// towards +-1 above it
func softClip(x float32) float32 {
	a := float32(math.Abs(float64(x)))
	if a <= clipKnee {
		return x
	}
	bent := clipKnee + (1-clipKnee)*float32(math.Tanh(float64((a-clipKnee)/(1-clipKnee))))
	if x < 0 {
		return -bent
	}
	return bent
}
