package vcr

import (
	"reflect"
	"time"

	"vcrfx/internal/logger"
	"vcrfx/internal/util"
	"vcrfx/pkg/gfx"
	"vcrfx/pkg/metrics"
)

const seedSalt uint32 = 0x12345678

// Option configures an Effect
type Option func(*Effect)

// WithClock replaces the wall clock used by the timestamp
func WithClock(now func() time.Time) Option {
	return func(e *Effect) {
		e.now = now
	}
}

// WithName sets the metrics label of the instance
func WithName(name string) Option {
	return func(e *Effect) {
		e.name = name
	}
}

// WithSeed fixes the RNG seed used by Init
func WithSeed(seed uint32) Option {
	return func(e *Effect) {
		e.seed = &seed
	}
}

// Effect is the VCR/CCTV overlay. All methods must be called from the
// render thread.
type Effect struct {
	canvas gfx.Canvas
	vars   Vars
	log    *logger.Logger
	now    func() time.Time
	name   string
	seed   *uint32

	metrics  metrics.EffectMetrics
	ctx      Context
	declared bool
	last     LayerParameters
}

// New creates an uninitialized effect drawing on canvas
func New(canvas gfx.Canvas, vars Vars, log *logger.Logger, opts ...Option) *Effect {
	e := &Effect{
		canvas: canvas,
		vars:   vars,
		log:    log.WithPrefix("vcr"),
		now:    time.Now,
		name:   "vcr",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.metrics = metrics.NewEffectMetrics(e.name)
	return e
}

// Init resets the state, declares the variables and creates the texture
func (e *Effect) Init() {
	e.ctx.defaults(e.initialSeed())
	declareVars(e.vars)
	e.declared = true

	e.ctx.Texture = e.canvas.CreateTexture()
	e.metrics.Battery.Set(float64(e.ctx.Battery))
	e.log.Infof("VCR effect initialized (generation %d), vcr_mode 1 switches to CCTV", e.ctx.TexGeneration)
}

func (e *Effect) initialSeed() uint32 {
	if e.seed != nil {
		return *e.seed
	}
	return uint32(reflect.ValueOf(e).Pointer()) ^ seedSalt
}

// Shutdown releases the texture. Variables stay declared.
func (e *Effect) Shutdown() {
	if e.ctx.Texture != gfx.NoTexture {
		e.canvas.DeleteTexture(e.ctx.Texture)
		e.ctx.Texture = gfx.NoTexture
	}
	e.ctx.Initialized = false
	e.log.Debug("VCR effect shut down")
}

// DrawEffect paints the overlay for a frame of the given size at host time
// t (seconds). The canvas state is restored on every path.
func (e *Effect) DrawEffect(width, height int, t float64) {
	e.canvas.PushState()
	defer e.restore()

	if !e.ctx.Initialized {
		e.metrics.SkippedUninitialized.Inc()
		return
	}

	set := readSettings(e.vars)
	if !set.enabled {
		e.metrics.SkippedDisabled.Inc()
		return
	}
	if width <= 0 || height <= 0 {
		return
	}

	if e.ctx.Texture != gfx.NoTexture && !e.canvas.IsTexture(e.ctx.Texture) {
		e.ctx.Texture = e.canvas.CreateTexture()
		e.metrics.TexturesRecreated.Inc()
		e.log.Warn("VCR texture lost, recreated")
	}

	e.ctx.Width = width
	e.ctx.Height = height

	params := Advance(&e.ctx, t, set.tuning())
	e.noteTriggers(params.Armed, t, set.debug)

	e.ctx.FrameCount++
	e.ctx.RNG.Seed(e.ctx.RNG.State() ^ e.ctx.FrameCount ^ uint32(int64(t*1000)))

	f := frame{
		c:      e.canvas,
		ctx:    &e.ctx,
		preset: ResolvePreset(set.quality),
		set:    set,
		p:      params,
		t:      t,
		now:    e.now(),
		w:      float32(width),
		h:      float32(height),
	}
	f.render()

	e.last = params
	e.metrics.FramesDrawn.Inc()
	e.metrics.Phase.Set(params.Phase)
}

func (e *Effect) restore() {
	e.canvas.PopState()
	e.canvas.SetColor(gfx.White)
	e.canvas.BindTexture(gfx.NoTexture)
}

func (e *Effect) noteTriggers(armed Trigger, t float64, debug bool) {
	if armed == 0 {
		return
	}
	for _, kind := range armed.Names() {
		e.metrics.Trigger(kind)
	}
	if debug {
		e.log.Debugf("triggered %s at %.2fs", armed, t)
	}
}

// Enable turns the overlay on
func (e *Effect) Enable() {
	if e.declared {
		e.vars.SetInt(VarEnabled, 1)
	}
}

// Disable turns the overlay off
func (e *Effect) Disable() {
	if e.declared {
		e.vars.SetInt(VarEnabled, 0)
	}
}

// Toggle flips the enabled state
func (e *Effect) Toggle() {
	if e.IsEnabled() {
		e.Disable()
	} else {
		e.Enable()
	}
}

// IsEnabled reports the vcr_enabled variable
func (e *Effect) IsEnabled() bool {
	return e.declared && e.vars.Bool(VarEnabled)
}

// Reset restarts the timeline and clears pending triggers
func (e *Effect) Reset() {
	e.ctx.reset()
	e.last = LayerParameters{}
}

// SetMode selects VCR (0) or CCTV (1); other values are clamped
func (e *Effect) SetMode(mode int) {
	if e.declared {
		e.vars.SetInt(VarMode, ClampMode(mode))
	}
}

// Mode returns the active overlay mode
func (e *Effect) Mode() int {
	return ClampMode(e.vars.Int(VarMode))
}

// SetQuality selects a preset; other values are clamped
func (e *Effect) SetQuality(level int) {
	if e.declared {
		e.vars.SetInt(VarQuality, ClampQuality(level))
	}
}

// Quality returns the active quality level
func (e *Effect) Quality() int {
	return ClampQuality(e.vars.Int(VarQuality))
}

// SetBattery sets the gauge level, clamped to [0, 1]
func (e *Effect) SetBattery(level float32) {
	e.ctx.Battery = util.Clamp01(level)
	e.metrics.Battery.Set(float64(e.ctx.Battery))
}

// Battery returns the gauge level
func (e *Effect) Battery() float32 {
	return e.ctx.Battery
}

// ForceDistortion starts a distortion spike on the next frame
func (e *Effect) ForceDistortion() {
	e.ctx.ForceDistortion = true
}

// ForceCCTV starts a CCTV moment on the next frame
func (e *Effect) ForceCCTV() {
	e.ctx.ForceCCTV = true
}

// ForceStatic starts a static burst on the next frame
func (e *Effect) ForceStatic() {
	e.ctx.ForceStatic = true
}

// ForceTapeDamage starts tape damage on the next frame
func (e *Effect) ForceTapeDamage() {
	e.ctx.ForceTapeDamage = true
}

// Context exposes the effect state for inspection
func (e *Effect) Context() *Context {
	return &e.ctx
}

// Snapshot is an immutable view of the effect published to other goroutines
type Snapshot struct {
	Initialized  bool    `json:"initialized"`
	Enabled      bool    `json:"enabled"`
	Mode         int     `json:"mode"`
	Quality      int     `json:"quality"`
	Battery      float32 `json:"battery"`
	FrameCount   uint32  `json:"frame_count"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Phase        float64 `json:"phase"`
	Tracking     bool    `json:"tracking"`
	Jitter       float32 `json:"jitter"`
	Desaturation float32 `json:"desaturation"`
	DotCount     int     `json:"dot_count"`
	Distortion   bool    `json:"distortion"`
	CCTV         float32 `json:"cctv"`
	Static       float32 `json:"static"`
	TapeDamage   float32 `json:"tape_damage"`
	FrameDrop    bool    `json:"frame_drop"`
}

// Snapshot captures the state as of the last drawn frame
func (e *Effect) Snapshot() Snapshot {
	p := e.last
	return Snapshot{
		Initialized:  e.ctx.Initialized,
		Enabled:      e.IsEnabled(),
		Mode:         e.Mode(),
		Quality:      e.Quality(),
		Battery:      e.ctx.Battery,
		FrameCount:   e.ctx.FrameCount,
		Width:        e.ctx.Width,
		Height:       e.ctx.Height,
		Phase:        p.Phase,
		Tracking:     p.ShowTracking,
		Jitter:       p.Jitter,
		Desaturation: p.Desaturation,
		DotCount:     p.DotCount,
		Distortion:   p.Distortion,
		CCTV:         p.CCTV,
		Static:       p.Static,
		TapeDamage:   p.TapeDamage,
		FrameDrop:    p.FrameDrop,
	}
}
