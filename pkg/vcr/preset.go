package vcr

import "vcrfx/internal/util"

// Quality levels
const (
	QualityLow = iota
	QualityMedium
	QualityHigh
)

// Overlay modes
const (
	ModeVCR = iota
	ModeCCTV
)

// Preset holds the per-quality multipliers and pass toggles
type Preset struct {
	NoiseMult    float32
	GrainMult    float32
	ScanlineSkip int
	VignetteStep int

	Tracking     bool
	ColorShift   bool
	Flicker      bool
	RecIndicator bool
	Timestamp    bool
	StaticBursts bool
}

var presets = [...]Preset{
	QualityLow: {
		NoiseMult:    0.25,
		GrainMult:    0.0,
		ScanlineSkip: 4,
		VignetteStep: 40,
		RecIndicator: true,
	},
	QualityMedium: {
		NoiseMult:    0.6,
		GrainMult:    0.5,
		ScanlineSkip: 2,
		VignetteStep: 30,
		Tracking:     true,
		ColorShift:   true,
		RecIndicator: true,
		Timestamp:    true,
		StaticBursts: true,
	},
	QualityHigh: {
		NoiseMult:    1.0,
		GrainMult:    1.0,
		ScanlineSkip: 2,
		VignetteStep: 20,
		Tracking:     true,
		ColorShift:   true,
		Flicker:      true,
		RecIndicator: true,
		Timestamp:    true,
		StaticBursts: true,
	},
}

// ClampQuality maps any integer onto a valid quality level
func ClampQuality(level int) int {
	return util.Clamp(level, QualityLow, QualityHigh)
}

// ClampMode maps any integer onto a valid overlay mode
func ClampMode(mode int) int {
	return util.Clamp(mode, ModeVCR, ModeCCTV)
}

// ResolvePreset returns the preset for a quality level, clamping out-of-range
// levels to the nearest valid one
func ResolvePreset(level int) Preset {
	return presets[ClampQuality(level)]
}
