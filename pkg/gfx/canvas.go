package gfx

import "github.com/go-gl/mathgl/mgl32"

// Color is a straight (non-premultiplied) RGBA color
type Color struct {
	R, G, B, A float32
}

// Common colors
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// RGBA builds a color
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Grey builds a neutral color of brightness v
func Grey(v, a float32) Color {
	return Color{v, v, v, a}
}

// WithAlpha returns the color with a replaced alpha
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Vec4 converts the color for uniform uploads
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// BlendMode selects how primitives combine with the framebuffer
type BlendMode int

const (
	// BlendAlpha is classic src-alpha / one-minus-src-alpha blending
	BlendAlpha BlendMode = iota
	// BlendMultiply multiplies the destination by the source color
	BlendMultiply
)

// Texture is an opaque texture handle, NoTexture means unbound
type Texture uint32

// NoTexture is the unbound handle
const NoTexture Texture = 0

// Canvas is a batched 2D drawing surface shared with the host renderer.
// Coordinates are in pixels once Ortho has been called, origin top-left.
type Canvas interface {
	// PushState saves projection, transform, blend, color and texture
	PushState()
	// PopState restores the state saved by the matching PushState
	PopState()
	// Depth returns the number of saved states
	Depth() int

	// Ortho sets a top-left origin pixel projection and resets the transform
	Ortho(width, height float32)
	// Translate offsets subsequent primitives
	Translate(x, y float32)

	SetBlend(mode BlendMode)
	Blend() BlendMode
	SetColor(c Color)
	Color() Color
	BindTexture(t Texture)
	BoundTexture() Texture

	// Rect fills an axis-aligned rectangle
	Rect(x, y, w, h float32, c Color)
	// Point draws a square point of the given size centered on (x, y)
	Point(x, y, size float32, c Color)
	// Line draws a one pixel line
	Line(x0, y0, x1, y1 float32, c Color)
	// Disc fills a circle approximated by segments triangles
	Disc(cx, cy, radius float32, segments int, c Color)

	CreateTexture() Texture
	IsTexture(t Texture) bool
	DeleteTexture(t Texture)

	// Flush submits pending primitives
	Flush()
}
