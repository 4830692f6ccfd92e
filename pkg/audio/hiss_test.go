package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vcrfx/pkg/vcr"
)

func TestSetLevels(t *testing.T) {
	tests := []struct {
		name   string
		levels Levels
		want   float32
	}{
		{"disabled", Levels{Static: true}, 0},
		{"idle", Levels{Enabled: true}, baseHiss},
		{"tape damage", Levels{Enabled: true, TapeDamage: true}, tapeDamageHiss},
		{"static wins", Levels{Enabled: true, TapeDamage: true, Static: true}, staticHiss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHiss(0.5, 1)
			h.SetLevels(tt.levels)
			assert.InDelta(t, tt.want*0.5, h.Target(), 1e-6)
		})
	}
}

func TestLevelsFrom(t *testing.T) {
	l := LevelsFrom(vcr.Snapshot{Initialized: true, Enabled: true, Static: 0.8, Tracking: true})
	assert.Equal(t, Levels{Enabled: true, Static: true, Tracking: true}, l)

	assert.False(t, LevelsFrom(vcr.Snapshot{Enabled: true}).Enabled)
}

func TestFillSilentUntilEnabled(t *testing.T) {
	h := NewHiss(1, 7)
	out := make([]float32, 512)
	for i := range out {
		out[i] = 1
	}

	h.Fill(out, 2)
	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
}

func TestFillStaysBoundedAndStereo(t *testing.T) {
	h := NewHiss(1, 7)
	h.SetLevels(Levels{Enabled: true, Static: true, Tracking: true})

	out := make([]float32, 44100*2)
	h.Fill(out, 2)

	peak := float32(0)
	for i := 0; i < len(out); i += 2 {
		assert.Equal(t, out[i], out[i+1])
		if out[i] > peak {
			peak = out[i]
		}
		assert.LessOrEqual(t, out[i], float32(1))
		assert.GreaterOrEqual(t, out[i], float32(-1))
	}
	assert.Greater(t, peak, float32(0.05), "level ramps up within a second")
}

func TestFillPartialFrame(t *testing.T) {
	h := NewHiss(1, 3)
	h.SetLevels(Levels{Enabled: true})

	out := []float32{9, 9, 9, 9, 9}
	h.Fill(out, 2)
	assert.Equal(t, float32(0), out[4])
}

func TestSoftClip(t *testing.T) {
	assert.Equal(t, float32(0.5), softClip(0.5))
	assert.Equal(t, float32(-0.8), softClip(-0.8))
	assert.Less(t, softClip(3), float32(1))
	assert.Greater(t, softClip(3), float32(0.8))
	assert.Equal(t, -softClip(2), softClip(-2))
}
