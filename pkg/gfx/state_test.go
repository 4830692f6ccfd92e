package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopRestoresEverything(t *testing.T) {
	r := NewRecorder()
	r.SetColor(RGBA(0.2, 0.3, 0.4, 0.5))
	r.BindTexture(3)

	r.PushState()
	r.Ortho(640, 480)
	r.Translate(4, -2)
	r.SetBlend(BlendMultiply)
	r.SetColor(Black)
	r.BindTexture(NoTexture)
	require.Equal(t, 1, r.Depth())
	r.PopState()

	assert.Equal(t, 0, r.Depth())
	assert.Equal(t, RGBA(0.2, 0.3, 0.4, 0.5), r.Color())
	assert.Equal(t, Texture(3), r.BoundTexture())
	assert.Equal(t, BlendAlpha, r.Blend())
	assert.Equal(t, DefaultState().ModelView, r.Current().ModelView)
}

func TestUnbalancedPopIsIgnored(t *testing.T) {
	r := NewRecorder()
	r.PopState()
	assert.Equal(t, 0, r.Depth())
	assert.Equal(t, White, r.Color())
}

func TestTranslateAppliesToPrimitives(t *testing.T) {
	r := NewRecorder()
	r.PushState()
	r.Ortho(100, 100)
	r.Translate(5, 0.5)
	r.Rect(10, 20, 3, 4, White)
	r.Translate(1, 1)
	r.Point(0, 0, 2, Black)
	r.PopState()

	require.Len(t, r.Ops, 2)
	assert.InDelta(t, 15, r.Ops[0].X, 1e-5)
	assert.InDelta(t, 20.5, r.Ops[0].Y, 1e-5)
	assert.Equal(t, float32(3), r.Ops[0].W)
	assert.Equal(t, 1, r.Ops[0].Depth)
	assert.InDelta(t, 6, r.Ops[1].X, 1e-5)
	assert.InDelta(t, 1.5, r.Ops[1].Y, 1e-5)
}

func TestOrthoMapsCornersToClipSpace(t *testing.T) {
	s := NewStateStack()
	s.Ortho(200, 100)
	proj := s.Current().Projection

	topLeft := proj.Mul4x1([4]float32{0, 0, 0, 1})
	bottomRight := proj.Mul4x1([4]float32{200, 100, 0, 1})
	assert.InDelta(t, -1, topLeft.X(), 1e-5)
	assert.InDelta(t, 1, topLeft.Y(), 1e-5)
	assert.InDelta(t, 1, bottomRight.X(), 1e-5)
	assert.InDelta(t, -1, bottomRight.Y(), 1e-5)
}

func TestRecorderTextures(t *testing.T) {
	r := NewRecorder()
	a := r.CreateTexture()
	b := r.CreateTexture()
	assert.NotEqual(t, a, b)
	assert.True(t, r.IsTexture(a))

	r.DeleteTexture(a)
	assert.False(t, r.IsTexture(a))
	assert.Equal(t, 1, r.LiveTextures())

	r.LoseTextures()
	assert.False(t, r.IsTexture(b))
	assert.False(t, r.IsTexture(NoTexture))
}

func TestColorHelpers(t *testing.T) {
	c := Grey(0.5, 0.25).WithAlpha(1)
	assert.Equal(t, Color{0.5, 0.5, 0.5, 1}, c)
	assert.Equal(t, float32(0.5), c.Vec4().X())
}
