package vcr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcrfx/pkg/gfx"
)

func TestDrawDigitSegmentCounts(t *testing.T) {
	want := [10]int{6, 2, 5, 5, 4, 5, 6, 3, 7, 6}

	for digit, n := range want {
		rec := gfx.NewRecorder()
		DrawDigit(rec, digit, 0, 0, 12)
		assert.Equal(t, n, rec.Count(gfx.OpRect), "digit %d", digit)
	}
}

func TestDrawDigitIgnoresOutOfRange(t *testing.T) {
	rec := gfx.NewRecorder()
	DrawDigit(rec, -1, 0, 0, 12)
	DrawDigit(rec, 10, 0, 0, 12)
	assert.Empty(t, rec.Ops)
}

func TestDrawDigitGeometry(t *testing.T) {
	rec := gfx.NewRecorder()
	DrawDigit(rec, 1, 100, 50, 20)

	require.Len(t, rec.Ops, 2)
	// B then C, both on the right edge
	b, c := rec.Ops[0], rec.Ops[1]
	assert.InDelta(t, 100+12-3, b.X, 1e-4)
	assert.InDelta(t, 50, b.Y, 1e-4)
	assert.InDelta(t, 3, b.W, 1e-4)
	assert.InDelta(t, 10, b.H, 1e-4)
	assert.InDelta(t, 60, c.Y, 1e-4)
	assert.Equal(t, osdColor, c.Color)
}
