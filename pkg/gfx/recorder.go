package gfx

// OpKind identifies a recorded primitive
type OpKind int

const (
	OpRect OpKind = iota
	OpPoint
	OpLine
	OpDisc
)

// Op is one recorded primitive. Coordinates are after the modelview
// transform; for points W and H hold the size, for discs the radius.
type Op struct {
	Kind    OpKind
	X, Y    float32
	W, H    float32
	Color   Color
	Blend   BlendMode
	Texture Texture
	Depth   int
}

// Recorder is a Canvas that draws nothing and remembers every call
type Recorder struct {
	StateStack

	Ops     []Op
	Pushes  int
	Pops    int
	Flushes int

	live map[Texture]bool
	next Texture
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		StateStack: NewStateStack(),
		live:       make(map[Texture]bool),
	}
}

// PushState counts and saves the state
func (r *Recorder) PushState() {
	r.Pushes++
	r.StateStack.PushState()
}

// PopState counts and restores the state
func (r *Recorder) PopState() {
	r.Pops++
	r.StateStack.PopState()
}

// Rect records a rectangle
func (r *Recorder) Rect(x, y, w, h float32, c Color) {
	r.record(OpRect, x, y, w, h, c)
}

// Point records a point
func (r *Recorder) Point(x, y, size float32, c Color) {
	r.record(OpPoint, x, y, size, size, c)
}

// Line records a line; W and H hold the transformed end point
func (r *Recorder) Line(x0, y0, x1, y1 float32, c Color) {
	ex, ey := r.Transform(x1, y1)
	r.record(OpLine, x0, y0, 0, 0, c)
	r.Ops[len(r.Ops)-1].W = ex
	r.Ops[len(r.Ops)-1].H = ey
}

// Disc records a disc
func (r *Recorder) Disc(cx, cy, radius float32, segments int, c Color) {
	r.record(OpDisc, cx, cy, radius, radius, c)
}

func (r *Recorder) record(kind OpKind, x, y, w, h float32, c Color) {
	tx, ty := r.Transform(x, y)
	r.Ops = append(r.Ops, Op{
		Kind:    kind,
		X:       tx,
		Y:       ty,
		W:       w,
		H:       h,
		Color:   c,
		Blend:   r.Blend(),
		Texture: r.BoundTexture(),
		Depth:   r.Depth(),
	})
}

// Flush counts flushes
func (r *Recorder) Flush() {
	r.Flushes++
}

// CreateTexture hands out a new live handle
func (r *Recorder) CreateTexture() Texture {
	r.next++
	r.live[r.next] = true
	return r.next
}

// IsTexture reports whether the handle is live
func (r *Recorder) IsTexture(t Texture) bool {
	return r.live[t]
}

// DeleteTexture forgets a handle
func (r *Recorder) DeleteTexture(t Texture) {
	delete(r.live, t)
}

// LoseTextures simulates a context reset invalidating every handle
func (r *Recorder) LoseTextures() {
	r.live = make(map[Texture]bool)
}

// LiveTextures returns the number of live handles
func (r *Recorder) LiveTextures() int {
	return len(r.live)
}

// Count returns the number of recorded ops of a kind
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the ops matching fn
func (r *Recorder) Filter(fn func(Op) bool) []Op {
	var out []Op
	for _, op := range r.Ops {
		if fn(op) {
			out = append(out, op)
		}
	}
	return out
}

// Clear drops recorded ops and counters but keeps state and textures
func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Pushes, r.Pops, r.Flushes = 0, 0, 0
}
