package engine

import (
	"math"

	"vcrfx/pkg/gfx"
)

const corridorDepth = 7

// Scene is a stand-in first-person view: a dark corridor with a swaying
// flashlight, enough for the overlay to have something to degrade
type Scene struct {
	ceiling gfx.Color
	floor   gfx.Color
	wall    gfx.Color
}

// NewScene creates the corridor
func NewScene() *Scene {
	return &Scene{
		ceiling: gfx.RGBA(0.05, 0.05, 0.07, 1),
		floor:   gfx.RGBA(0.10, 0.08, 0.07, 1),
		wall:    gfx.RGBA(0.35, 0.33, 0.30, 1),
	}
}

// Draw paints the corridor at host time t
func (s *Scene) Draw(c gfx.Canvas, width, height int, t float64) {
	c.PushState()
	defer c.PopState()

	w, h := float32(width), float32(height)
	c.Ortho(w, h)
	c.SetBlend(gfx.BlendAlpha)

	// Walking bob
	c.Translate(float32(math.Sin(t*1.7))*4, float32(math.Abs(math.Sin(t*3.4)))*3)

	c.Rect(-10, -10, w+20, h/2+10, s.ceiling)
	c.Rect(-10, h/2, w+20, h/2+10, s.floor)

	// Door frames shrinking towards the vanishing point
	cx, cy := w/2, h/2
	for i := corridorDepth; i >= 1; i-- {
		scale := 1 / float32(i)
		fw, fh := w*0.9*scale, h*0.9*scale
		x0, y0 := cx-fw/2, cy-fh/2
		shade := s.wall.WithAlpha(0.25 + 0.75*scale)
		thick := max(2*scale*4, 1)

		c.Rect(x0, y0, fw, thick, shade)
		c.Rect(x0, y0+fh-thick, fw, thick, shade)
		c.Rect(x0, y0, thick, fh, shade)
		c.Rect(x0+fw-thick, y0, thick, fh, shade)
	}

	// Flashlight cone
	lx := cx + float32(math.Sin(t*0.6))*w*0.12
	ly := cy + float32(math.Cos(t*0.9))*h*0.06
	for i := 0; i < 4; i++ {
		r := h * (0.12 + 0.08*float32(i))
		c.Disc(lx, ly, r, 32, gfx.RGBA(1, 0.95, 0.8, 0.05))
	}
}
