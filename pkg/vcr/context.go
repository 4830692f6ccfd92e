package vcr

import (
	"vcrfx/internal/noise"
	"vcrfx/pkg/gfx"
)

const (
	// unset marks a timer that has not been armed yet
	unset = -1.0

	damageLineSlots = 10
	defaultBattery  = 0.75
)

// Context is the long-lived state of one effect instance. It is owned by
// its Effect and only touched from the render thread.
type Context struct {
	Initialized bool

	EffectStartTime float64
	LastDistortTime float64
	CCTVStartTime   float64
	StaticStartTime float64
	TapeDamageStart float64
	FrameDropStart  float64
	LastFrameTime   float64

	Battery float32

	ForceDistortion bool
	ForceCCTV       bool
	ForceStatic     bool
	ForceTapeDamage bool

	FrameCount uint32
	RNG        noise.Xorshift32

	TrackingLineY float32
	DamageLineY   [damageLineSlots]float32

	Width  int
	Height int

	TexGeneration int
	Texture       gfx.Texture
}

// defaults puts the context into its freshly initialized state. The texture
// generation survives so re-initialization can be told apart.
func (c *Context) defaults(seed uint32) {
	generation := c.TexGeneration
	*c = Context{}

	c.Initialized = true
	c.Battery = defaultBattery
	c.TrackingLineY = initialTrackingY
	for i := range c.DamageLineY {
		c.DamageLineY[i] = -50 - float32(i)*30
	}
	c.RNG.Seed(seed)
	c.TexGeneration = generation + 1
	c.disarm()
}

// reset restarts the timeline without touching battery, RNG or texture
func (c *Context) reset() {
	c.disarm()
	c.FrameCount = 0
	c.TrackingLineY = initialTrackingY

	c.ForceDistortion = false
	c.ForceCCTV = false
	c.ForceStatic = false
	c.ForceTapeDamage = false
}

func (c *Context) disarm() {
	c.EffectStartTime = unset
	c.LastDistortTime = unset
	c.CCTVStartTime = unset
	c.StaticStartTime = unset
	c.TapeDamageStart = unset
	c.FrameDropStart = unset
	c.LastFrameTime = unset
}
