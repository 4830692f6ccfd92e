package gfx

import "github.com/go-gl/mathgl/mgl32"

// State is the part of the drawing state saved by PushState
type State struct {
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
	Blend      BlendMode
	Color      Color
	Texture    Texture
}

// DefaultState is the state of a fresh canvas
func DefaultState() State {
	return State{
		Projection: mgl32.Ident4(),
		ModelView:  mgl32.Ident4(),
		Blend:      BlendAlpha,
		Color:      White,
		Texture:    NoTexture,
	}
}

// StateStack implements the state half of Canvas; backends embed it
type StateStack struct {
	cur   State
	saved []State
}

// NewStateStack creates a stack holding the default state
func NewStateStack() StateStack {
	return StateStack{cur: DefaultState()}
}

// Current returns the active state
func (s *StateStack) Current() State {
	return s.cur
}

// PushState saves the active state
func (s *StateStack) PushState() {
	s.saved = append(s.saved, s.cur)
}

// PopState restores the last saved state, unbalanced pops are ignored
func (s *StateStack) PopState() {
	n := len(s.saved)
	if n == 0 {
		return
	}
	s.cur = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

// Depth returns the number of saved states
func (s *StateStack) Depth() int {
	return len(s.saved)
}

// Ortho sets a pixel projection with the origin at the top-left corner
func (s *StateStack) Ortho(width, height float32) {
	s.cur.Projection = mgl32.Ortho2D(0, width, height, 0)
	s.cur.ModelView = mgl32.Ident4()
}

// Translate appends a translation to the modelview matrix
func (s *StateStack) Translate(x, y float32) {
	s.cur.ModelView = s.cur.ModelView.Mul4(mgl32.Translate3D(x, y, 0))
}

// Transform maps a point through the modelview matrix
func (s *StateStack) Transform(x, y float32) (float32, float32) {
	v := s.cur.ModelView.Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return v.X(), v.Y()
}

// SetBlend selects the blend mode
func (s *StateStack) SetBlend(mode BlendMode) {
	s.cur.Blend = mode
}

// Blend returns the active blend mode
func (s *StateStack) Blend() BlendMode {
	return s.cur.Blend
}

// SetColor sets the current draw color
func (s *StateStack) SetColor(c Color) {
	s.cur.Color = c
}

// Color returns the current draw color
func (s *StateStack) Color() Color {
	return s.cur.Color
}

// BindTexture records the bound texture
func (s *StateStack) BindTexture(t Texture) {
	s.cur.Texture = t
}

// BoundTexture returns the bound texture
func (s *StateStack) BoundTexture() Texture {
	return s.cur.Texture
}
