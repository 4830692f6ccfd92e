package glcanvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"vcrfx/pkg/gfx"
)

// position (2) + color (4)
const floatsPerVertex = 6

var _ gfx.Canvas = (*GLCanvas)(nil)

// GLCanvas batches colored triangles into one streaming VBO and draws them
// with a single program. It must be created and used on the thread owning
// the GL context.
type GLCanvas struct {
	gfx.StateStack

	program       uint32
	vao           uint32
	vbo           uint32
	projectionLoc int32

	vertices []float32
	batches  int
	host     hostState
}

// hostState is the GL state owned by the surrounding renderer, captured on
// the outermost PushState and put back on the matching PopState
type hostState struct {
	program     int32
	vao         int32
	arrayBuffer int32
	texture     int32
	srcRGB      int32
	dstRGB      int32
	srcAlpha    int32
	dstAlpha    int32
	blend       bool
	depthTest   bool
	cullFace    bool
}

// NewGLCanvas compiles the batch program and allocates its buffers
func NewGLCanvas() (*GLCanvas, error) {
	c := &GLCanvas{
		StateStack: gfx.NewStateStack(),
		vertices:   make([]float32, 0, 6*floatsPerVertex*4096),
	}

	program, err := createShaderProgram(batchVertexShaderSource, batchFragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to build canvas program: %v", err)
	}
	c.program = program
	c.projectionLoc = gl.GetUniformLocation(program, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)

	stride := int32(floatsPerVertex * 4)
	// Position attribute
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Color attribute
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return c, nil
}

// PushState saves the canvas state; the outermost push also captures the
// host GL state and switches to 2D compositing
func (c *GLCanvas) PushState() {
	if c.Depth() == 0 {
		c.host.capture()
		gl.Disable(gl.DEPTH_TEST)
		gl.Disable(gl.CULL_FACE)
		gl.Enable(gl.BLEND)
		applyBlend(c.Blend())
	}
	c.StateStack.PushState()
}

// PopState flushes pending primitives and restores the saved state
func (c *GLCanvas) PopState() {
	if c.Depth() == 0 {
		return
	}
	c.Flush()
	c.StateStack.PopState()

	if c.Depth() == 0 {
		c.host.restore()
		return
	}
	applyBlend(c.Blend())
	gl.BindTexture(gl.TEXTURE_2D, uint32(c.BoundTexture()))
}

// Ortho flushes and installs a new projection
func (c *GLCanvas) Ortho(width, height float32) {
	c.Flush()
	c.StateStack.Ortho(width, height)
}

// SetBlend flushes when the mode changes
func (c *GLCanvas) SetBlend(mode gfx.BlendMode) {
	if mode == c.Blend() {
		return
	}
	c.Flush()
	c.StateStack.SetBlend(mode)
	if c.Depth() > 0 {
		applyBlend(mode)
	}
}

// BindTexture binds a 2D texture; batched primitives are untextured
func (c *GLCanvas) BindTexture(t gfx.Texture) {
	c.StateStack.BindTexture(t)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

// Rect fills an axis-aligned rectangle
func (c *GLCanvas) Rect(x, y, w, h float32, col gfx.Color) {
	c.quad(x, y, x+w, y, x+w, y+h, x, y+h, col)
}

// Point draws a square point centered on (x, y)
func (c *GLCanvas) Point(x, y, size float32, col gfx.Color) {
	half := size / 2
	c.Rect(x-half, y-half, size, size, col)
}

// Line draws a one pixel wide line as a thin quad
func (c *GLCanvas) Line(x0, y0, x1, y1 float32, col gfx.Color) {
	d := mgl32.Vec2{x1 - x0, y1 - y0}
	if d.Len() == 0 {
		return
	}
	n := mgl32.Vec2{-d.Y(), d.X()}.Normalize().Mul(0.5)
	c.quad(x0+n.X(), y0+n.Y(), x1+n.X(), y1+n.Y(), x1-n.X(), y1-n.Y(), x0-n.X(), y0-n.Y(), col)
}

// Disc fills a circle as a fan of triangles
func (c *GLCanvas) Disc(cx, cy, radius float32, segments int, col gfx.Color) {
	if segments < 3 || radius <= 0 {
		return
	}
	step := 2 * math.Pi / float64(segments)
	px, py := cx+radius, cy
	for i := 1; i <= segments; i++ {
		a := step * float64(i)
		nx := cx + radius*float32(math.Cos(a))
		ny := cy + radius*float32(math.Sin(a))
		c.vertex(cx, cy, col)
		c.vertex(px, py, col)
		c.vertex(nx, ny, col)
		px, py = nx, ny
	}
}

func (c *GLCanvas) quad(x0, y0, x1, y1, x2, y2, x3, y3 float32, col gfx.Color) {
	c.vertex(x0, y0, col)
	c.vertex(x1, y1, col)
	c.vertex(x2, y2, col)
	c.vertex(x2, y2, col)
	c.vertex(x3, y3, col)
	c.vertex(x0, y0, col)
}

func (c *GLCanvas) vertex(x, y float32, col gfx.Color) {
	tx, ty := c.Transform(x, y)
	c.vertices = append(c.vertices, tx, ty, col.R, col.G, col.B, col.A)
}

// Flush uploads and draws the pending triangles
func (c *GLCanvas) Flush() {
	if len(c.vertices) == 0 {
		return
	}

	proj := c.Current().Projection
	gl.UseProgram(c.program)
	gl.UniformMatrix4fv(c.projectionLoc, 1, false, &proj[0])

	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(c.vertices)*4, gl.Ptr(c.vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(c.vertices)/floatsPerVertex))

	c.vertices = c.vertices[:0]
	c.batches++
}

// Batches returns the number of draw calls issued since the last call
func (c *GLCanvas) Batches() int {
	n := c.batches
	c.batches = 0
	return n
}

// CreateTexture allocates a linear-filtered 2D texture
func (c *GLCanvas) CreateTexture() gfx.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, uint32(c.BoundTexture()))
	return gfx.Texture(id)
}

// IsTexture reports whether the handle still names a live texture
func (c *GLCanvas) IsTexture(t gfx.Texture) bool {
	return t != gfx.NoTexture && gl.IsTexture(uint32(t))
}

// DeleteTexture releases a texture
func (c *GLCanvas) DeleteTexture(t gfx.Texture) {
	if t == gfx.NoTexture {
		return
	}
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

// Close releases the program and buffers
func (c *GLCanvas) Close() {
	gl.DeleteBuffers(1, &c.vbo)
	gl.DeleteVertexArrays(1, &c.vao)
	gl.DeleteProgram(c.program)
}

func applyBlend(mode gfx.BlendMode) {
	switch mode {
	case gfx.BlendMultiply:
		gl.BlendFunc(gl.DST_COLOR, gl.ZERO)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (h *hostState) capture() {
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &h.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &h.vao)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &h.arrayBuffer)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &h.texture)
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &h.srcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &h.dstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &h.srcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &h.dstAlpha)
	h.blend = gl.IsEnabled(gl.BLEND)
	h.depthTest = gl.IsEnabled(gl.DEPTH_TEST)
	h.cullFace = gl.IsEnabled(gl.CULL_FACE)
}

func (h *hostState) restore() {
	gl.UseProgram(uint32(h.program))
	gl.BindVertexArray(uint32(h.vao))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h.arrayBuffer))
	gl.BindTexture(gl.TEXTURE_2D, uint32(h.texture))
	gl.BlendFuncSeparate(uint32(h.srcRGB), uint32(h.dstRGB), uint32(h.srcAlpha), uint32(h.dstAlpha))
	setCapability(gl.BLEND, h.blend)
	setCapability(gl.DEPTH_TEST, h.depthTest)
	setCapability(gl.CULL_FACE, h.cullFace)
}

func setCapability(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// createShaderProgram creates a shader program from vertex and fragment sources
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Check for linking errors
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Linked programs keep their own copy
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}
