package vcr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePresetClamps(t *testing.T) {
	assert.Equal(t, presets[QualityLow], ResolvePreset(-4))
	assert.Equal(t, presets[QualityHigh], ResolvePreset(3))
	assert.Equal(t, presets[QualityMedium], ResolvePreset(1))
}

func TestPresetTable(t *testing.T) {
	low := ResolvePreset(QualityLow)
	assert.Equal(t, float32(0.25), low.NoiseMult)
	assert.Equal(t, float32(0), low.GrainMult)
	assert.Equal(t, 4, low.ScanlineSkip)
	assert.Equal(t, 40, low.VignetteStep)
	assert.True(t, low.RecIndicator)
	assert.False(t, low.Tracking || low.ColorShift || low.Flicker || low.Timestamp || low.StaticBursts)

	med := ResolvePreset(QualityMedium)
	assert.Equal(t, 30, med.VignetteStep)
	assert.True(t, med.Tracking && med.ColorShift && med.Timestamp && med.StaticBursts)
	assert.False(t, med.Flicker)

	high := ResolvePreset(QualityHigh)
	assert.Equal(t, float32(1), high.NoiseMult)
	assert.Equal(t, 2, high.ScanlineSkip)
	assert.True(t, high.Flicker)
}

func TestClampMode(t *testing.T) {
	assert.Equal(t, ModeVCR, ClampMode(-1))
	assert.Equal(t, ModeCCTV, ClampMode(1))
	assert.Equal(t, ModeCCTV, ClampMode(9))
}
