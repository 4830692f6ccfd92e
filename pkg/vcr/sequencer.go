package vcr

import (
	"math"
	"strings"

	"vcrfx/internal/util"
)

// Timeline of the 50 second loop, in seconds of loop phase
const (
	cycleLength = 50.0

	trackingStart      = 10.0
	trackingEnd        = 30.0
	trackingEntryGuard = 10.1
	jitterStart        = 20.0
	jitterEnd          = 22.0
	dotsStart          = 30.0
	dotsEnd            = 32.0
	desatStart         = 40.0
	desatEnd           = 42.0
)

const (
	baselineDesaturation = 0.08
	baselineDots         = 20
	extraDots            = 100
	normalGrain          = 0.04
	spikeGrain           = 0.2

	trackingBandHeight = 8
	trackingPark       = 500
	initialTrackingY   = -50

	// maxFrameDelta bounds the integration step after a stall
	maxFrameDelta = 0.25
)

// One-shot durations and intensities
const (
	cctvDuration       = 2.5
	staticDuration     = 0.15
	staticIntensity    = 0.8
	tapeDamageDuration = 0.3
	frameDropChance    = 0.005
	frameDropDuration  = 0.1
)

// Tuning carries the variable-driven knobs of the sequencer
type Tuning struct {
	PeakDesaturation   float32
	DistortionDuration float64
	CCTVChance         float32
}

// DefaultTuning matches the declared variable defaults
func DefaultTuning() Tuning {
	return Tuning{
		PeakDesaturation:   0.5,
		DistortionDuration: 1.5,
		CCTVChance:         0.3,
	}
}

// Trigger is a set of one-shot effects
type Trigger uint8

const (
	TriggerDistortion Trigger = 1 << iota
	TriggerCCTV
	TriggerStatic
	TriggerTapeDamage
	TriggerFrameDrop
)

var triggerNames = []struct {
	t    Trigger
	name string
}{
	{TriggerDistortion, "distortion"},
	{TriggerCCTV, "cctv"},
	{TriggerStatic, "static"},
	{TriggerTapeDamage, "tape_damage"},
	{TriggerFrameDrop, "frame_drop"},
}

// Names lists the triggers in the set
func (t Trigger) Names() []string {
	var names []string
	for _, n := range triggerNames {
		if t&n.t != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

func (t Trigger) String() string {
	if t == 0 {
		return "none"
	}
	return strings.Join(t.Names(), "|")
}

// LayerParameters is what the sequencer hands to the renderer for one frame
type LayerParameters struct {
	Desaturation float32
	DotCount     int
	Jitter       float32
	GrainAlpha   float32
	ShowTracking bool

	Delta float32
	Phase float64

	Distortion bool
	CCTV       float32
	Static     float32
	TapeDamage float32
	FrameDrop  bool

	// Armed holds the triggers that started on this frame
	Armed Trigger
}

// Advance moves the timeline to t and computes this frame's parameters.
// Pending force flags are consumed and arm their timers at t.
func Advance(ctx *Context, t float64, tune Tuning) LayerParameters {
	p := LayerParameters{
		Desaturation: baselineDesaturation,
		DotCount:     baselineDots,
		GrainAlpha:   normalGrain,
	}

	if ctx.EffectStartTime < 0 {
		ctx.EffectStartTime = t
		ctx.TrackingLineY = initialTrackingY
	}
	p.Delta = frameDelta(ctx, t)
	p.Phase = loopPhase(t - ctx.EffectStartTime)

	p.ShowTracking = advanceTracking(ctx, p.Phase, p.Delta)
	if util.Within(p.Phase, jitterStart, jitterEnd) {
		p.Jitter = 1
	}
	if util.Within(p.Phase, dotsStart, dotsEnd) {
		p.DotCount += extraDots
	}
	if util.Within(p.Phase, desatStart, desatEnd) {
		p.Desaturation = tune.PeakDesaturation
	}

	p.Armed = armTriggers(ctx, t, tune)
	applyOneShots(ctx, t, tune, &p)
	return p
}

// loopPhase folds elapsed time into [0, cycleLength)
func loopPhase(elapsed float64) float64 {
	phase := math.Mod(elapsed, cycleLength)
	if phase < 0 {
		phase += cycleLength
	}
	return phase
}

func frameDelta(ctx *Context, t float64) float32 {
	dt := 0.0
	if ctx.LastFrameTime >= 0 {
		dt = util.Clamp(t-ctx.LastFrameTime, 0, maxFrameDelta)
	}
	ctx.LastFrameTime = t
	return float32(dt)
}

func advanceTracking(ctx *Context, phase float64, dt float32) bool {
	h := float32(ctx.Height)
	if !util.Within(phase, trackingStart, trackingEnd) {
		ctx.TrackingLineY = h + trackingPark
		return false
	}

	if phase < trackingEntryGuard && ctx.TrackingLineY > h {
		ctx.TrackingLineY = -trackingBandHeight
	}
	ctx.TrackingLineY += h / 5 * dt
	if ctx.TrackingLineY > h+trackingBandHeight {
		ctx.TrackingLineY = -trackingBandHeight
	}
	return true
}

func armTriggers(ctx *Context, t float64, tune Tuning) Trigger {
	var armed Trigger

	if ctx.ForceDistortion {
		ctx.ForceDistortion = false
		ctx.LastDistortTime = t
		armed |= TriggerDistortion

		if tune.CCTVChance >= 1 || (tune.CCTVChance > 0 && ctx.RNG.Float01() < tune.CCTVChance) {
			ctx.CCTVStartTime = t
			armed |= TriggerCCTV
		}
	}
	if ctx.ForceCCTV {
		ctx.ForceCCTV = false
		ctx.CCTVStartTime = t
		armed |= TriggerCCTV
	}
	if ctx.ForceStatic {
		ctx.ForceStatic = false
		ctx.StaticStartTime = t
		armed |= TriggerStatic
	}
	if ctx.ForceTapeDamage {
		ctx.ForceTapeDamage = false
		ctx.TapeDamageStart = t
		armed |= TriggerTapeDamage
	}
	return armed
}

func active(t, start, duration float64) bool {
	d := util.Since(t, start)
	return d >= 0 && d < duration
}

func applyOneShots(ctx *Context, t float64, tune Tuning, p *LayerParameters) {
	if active(t, ctx.LastDistortTime, tune.DistortionDuration) {
		p.Distortion = true
		p.Jitter = 1
		p.GrainAlpha = spikeGrain
	}
	if active(t, ctx.CCTVStartTime, cctvDuration) {
		p.CCTV = 1
	}
	if active(t, ctx.StaticStartTime, staticDuration) {
		p.Static = staticIntensity
	}
	if active(t, ctx.TapeDamageStart, tapeDamageDuration) {
		p.TapeDamage = 1
		if !active(t, ctx.FrameDropStart, frameDropDuration) && ctx.RNG.Float01() < frameDropChance {
			ctx.FrameDropStart = t
			p.Armed |= TriggerFrameDrop
		}
	}
	p.FrameDrop = active(t, ctx.FrameDropStart, frameDropDuration)
}
