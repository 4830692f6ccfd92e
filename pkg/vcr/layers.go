package vcr

import (
	"time"

	"vcrfx/internal/util"
	"vcrfx/pkg/gfx"
)

const (
	spikeJitterMax  = 5.0
	spikeColorShift = 0.02
	sepiaTint       = 0.05
	chromaticAmount = 3.0
	noiseDotAlpha   = 0.5
)

// frame bundles what one DrawEffect pass needs
type frame struct {
	c      gfx.Canvas
	ctx    *Context
	preset Preset
	set    settings
	p      LayerParameters
	t      float64
	now    time.Time
	w, h   float32
}

// render runs the passes in their fixed order. The caller owns the outer
// save/restore of the canvas state.
func (f *frame) render() {
	f.c.Ortho(f.w, f.h)
	f.c.SetBlend(gfx.BlendAlpha)

	if f.p.Jitter > 0 {
		f.applyJitter(spikeJitterMax * f.p.Jitter)
	}

	f.drawDesaturation(f.p.Desaturation, sepiaTint)
	f.drawGrain(f.p.GrainAlpha*f.set.grainIntensity, f.preset.GrainMult*0.5)

	dots := float32(f.p.DotCount) * f.preset.NoiseMult * f.set.noiseDots
	f.drawNoiseDots(int(dots), noiseDotAlpha)

	if f.p.ShowTracking && f.preset.Tracking && f.set.trackingLines {
		f.drawTrackingBand()
	}

	f.drawTapeEvents()
	f.drawModeOverlay()

	if f.preset.Timestamp && f.set.timestamp {
		f.drawTimestamp()
	}

	if f.p.Jitter > 0 && f.preset.ColorShift {
		f.drawChromaticAberration(f.p.Jitter)
		if f.p.Distortion {
			f.drawColorSeparation(f.p.Jitter)
		}
	}
}

func (f *frame) rand() float32 {
	return f.ctx.RNG.Float01()
}

func (f *frame) fullscreen(c gfx.Color) {
	f.c.Rect(0, 0, f.w, f.h, c)
}

func (f *frame) applyJitter(amount float32) {
	jx := (f.rand() - 0.5) * 2 * amount
	jy := (f.rand() - 0.5) * 0.5 * amount
	f.c.Translate(jx, jy)
}

func (f *frame) drawDesaturation(intensity, sepia float32) {
	if intensity <= 0.01 {
		return
	}

	darken := util.Clamp(1-intensity*0.5, 0.5, 1)
	f.c.SetBlend(gfx.BlendMultiply)
	f.fullscreen(gfx.Grey(darken, 1))
	f.c.SetBlend(gfx.BlendAlpha)

	f.fullscreen(gfx.Grey(0.5, intensity*0.3))
	if sepia > 0 {
		f.fullscreen(gfx.RGBA(0.3, 0.2, 0.1, sepia*intensity*0.2))
	}
}

func (f *frame) drawGrain(intensity, mult float32) {
	if intensity <= 0 || mult <= 0 {
		return
	}

	count := int(float32(f.ctx.Width*f.ctx.Height/2000) * mult)
	for i := 0; i < count; i++ {
		x := f.rand() * f.w
		y := f.rand() * f.h
		b := f.rand()

		v := float32(0)
		if b > 0.5 {
			v = 1
		}
		f.c.Point(x, y, 1, gfx.Grey(v, intensity*(0.3+b*0.7)))
	}
}

func (f *frame) drawNoiseDots(count int, alpha float32) {
	for i := 0; i < count; i++ {
		x := f.rand() * f.w
		y := f.rand() * f.h
		b := 0.7 + f.rand()*0.3
		a := alpha * (0.5 + f.rand()*0.5)
		f.c.Point(x, y, 2, gfx.Grey(b, a))
	}
}

func (f *frame) drawTrackingBand() {
	y := f.ctx.TrackingLineY
	f.c.Rect(0, y, f.w, trackingBandHeight, gfx.RGBA(0.1, 0.1, 0.1, 0.3))
	f.c.Rect(0, y-1, f.w, 1, gfx.RGBA(1, 0, 0, 0.1))
	f.c.Rect(0, y+trackingBandHeight, f.w, 1, gfx.RGBA(0, 1, 1, 0.1))
}

func (f *frame) drawChromaticAberration(intensity float32) {
	offset := chromaticAmount * intensity
	alpha := 0.05 * intensity
	f.c.Rect(-offset, 0, f.w, f.h, gfx.RGBA(1, 0, 0, alpha))
	f.c.Rect(offset, 0, f.w, f.h, gfx.RGBA(0, 0, 1, alpha))
}

func (f *frame) drawColorSeparation(intensity float32) {
	offset := intensity * f.w * spikeColorShift
	alpha := 0.03 * intensity
	f.c.Rect(-offset, 0, f.w, f.h, gfx.RGBA(1, 0, 0, alpha))
	f.c.Rect(offset, 0, f.w, f.h, gfx.RGBA(0, 1, 1, alpha))
}
