package vcr

import (
	"math"

	"vcrfx/pkg/gfx"
)

const (
	recBlinkPeriod = 1.0

	batteryLow         = 0.2
	batteryMid         = 0.5
	batteryBlinkPeriod = 0.5

	cctvModeIntensity  = 0.6
	cctvVignette       = 0.3
	cctvFlicker        = 0.15
	cctvFlickerSpeed   = 8.0
	cctvNoiseDots      = 80
	cctvNoiseDotAlpha  = 0.8
	cctvScanlineAlpha  = 0.03
	defaultScanlineGap = 2

	staticPointDensity = 50
	staticTearLines    = 5

	tapeDamageLines  = 5
	damageLineSpeed  = 30.0
	damageWrapMargin = 10.0
	damageWrapSpread = 50.0

	frameDropAlpha = 0.85

	osdDigitSize = 12
	osdAdvance   = 10
	retroYear    = 2007
)

// REC glyph strokes relative to the indicator origin
var recGlyphs = [...][4]float32{
	// R
	{19, 3, 2, 6}, {19, 3, 5, 1}, {23, 3, 1, 3}, {19, 5, 5, 1}, {22, 6, 2, 3},
	// E
	{26, 3, 2, 6}, {26, 3, 5, 1}, {26, 5, 4, 1}, {26, 8, 5, 1},
	// C
	{33, 3, 2, 6}, {33, 3, 5, 1}, {33, 8, 5, 1},
}

func (f *frame) drawTapeEvents() {
	if f.p.Static > 0 && f.preset.StaticBursts && f.set.staticBursts {
		f.drawStaticBurst(f.p.Static)
	}
	if f.p.TapeDamage > 0 {
		f.drawTapeDamage(f.p.TapeDamage)
	}
	if f.p.FrameDrop {
		f.fullscreen(gfx.RGBA(0, 0, 0, frameDropAlpha))
	}
}

// drawModeOverlay draws the camcorder UI in VCR mode and the surveillance
// look in CCTV mode. A forced CCTV moment shows in either mode.
func (f *frame) drawModeOverlay() {
	cctv := f.p.CCTV
	if f.set.mode == ModeCCTV {
		cctv = max(cctv, cctvModeIntensity)
	}
	if cctv > 0 {
		f.drawCCTVOverlay(cctv)
	}

	if f.set.mode == ModeVCR {
		if f.preset.RecIndicator && f.set.recIndicator {
			f.drawRecIndicator()
		}
		f.drawBattery()
	}
}

func (f *frame) drawRecIndicator() {
	alpha := float32(0.3)
	if math.Mod(f.t, recBlinkPeriod*2) < recBlinkPeriod {
		alpha = 1
	}

	const x, y, dot = 20, 20, 8
	f.c.Disc(x+dot/2, y+dot/2, dot/2, 16, gfx.RGBA(1, 0, 0, alpha))
	f.c.Rect(x+15, y, 30, 12, gfx.RGBA(1, 0, 0, alpha*0.8))
	f.c.Rect(x+17, y+2, 26, 8, gfx.Black)

	white := gfx.White.WithAlpha(alpha)
	for _, r := range recGlyphs {
		f.c.Rect(x+r[0], y+r[1], r[2], r[3], white)
	}
}

func (f *frame) drawBattery() {
	const bw, bh = 40, 16
	x := f.w - 60
	y := float32(20)
	level := f.ctx.Battery

	blink := float32(1)
	if level < batteryLow && math.Mod(f.t, batteryBlinkPeriod) >= batteryBlinkPeriod/2 {
		blink = 0.3
	}

	outline := gfx.White.WithAlpha(0.8 * blink)
	f.c.Rect(x, y, bw, bh, outline)
	f.c.Rect(x+2, y+2, bw-4, bh-4, gfx.Black)
	f.c.Rect(x+bw, y+4, 4, 8, outline)

	fill := level * (bw - 6)
	if fill <= 0 {
		return
	}

	var col gfx.Color
	switch {
	case level < batteryLow:
		col = gfx.RGBA(1, 0, 0, 0)
	case level < batteryMid:
		col = gfx.RGBA(1, 1, 0, 0)
	default:
		col = gfx.RGBA(0, 1, 0, 0)
	}
	f.c.Rect(x+3, y+3, fill, bh-6, col.WithAlpha(0.9*blink))
}

// drawTimestamp prints MM-DD-2007 HH:MM:SS in the bottom-right corner
func (f *frame) drawTimestamp() {
	x := f.w - 240
	y := f.h - 30
	f.c.Rect(x-5, y-5, 235, 24, gfx.RGBA(0, 0, 0, 0.5))

	dx := x
	digit := func(d int) {
		DrawDigit(f.c, d, dx, y, osdDigitSize)
		dx += osdAdvance
	}
	pair := func(v int) {
		digit(v / 10 % 10)
		digit(v % 10)
	}
	dash := func() {
		f.c.Rect(dx+2, y+5, 4, 2, osdColor)
		dx += osdAdvance
	}
	colon := func() {
		f.c.Rect(dx+2, y+3, 2, 2, osdColor)
		f.c.Rect(dx+2, y+8, 2, 2, osdColor)
		dx += 8
	}

	now := f.now
	pair(int(now.Month()))
	dash()
	pair(now.Day())
	dash()
	for _, d := range [...]int{retroYear / 1000, retroYear / 100 % 10, retroYear / 10 % 10, retroYear % 10} {
		digit(d)
	}
	dx += osdAdvance

	pair(now.Hour())
	colon()
	pair(now.Minute())
	colon()
	pair(now.Second())
}

func (f *frame) drawStaticBurst(intensity float32) {
	count := f.ctx.Width * f.ctx.Height / staticPointDensity
	for i := 0; i < count; i++ {
		x := f.rand() * f.w
		y := f.rand() * f.h
		b := f.rand()
		f.c.Point(x, y, 2, gfx.Grey(b, intensity))
	}

	for i := 0; i < staticTearLines; i++ {
		y := f.rand() * f.h
		offset := (f.rand() - 0.5) * 20
		f.c.Rect(offset, y, f.w, 2, gfx.Grey(0.5, intensity*0.5))
	}
}

func (f *frame) drawTapeDamage(intensity float32) {
	for i := 0; i < tapeDamageLines; i++ {
		y := f.ctx.DamageLineY[i]
		band := 3 + f.rand()*5
		f.c.Rect(0, y, f.w, band, gfx.Grey(0.2, intensity*0.7))

		dots := 20 + f.ctx.RNG.IntRange(30)
		for j := 0; j < dots; j++ {
			dx := f.rand() * f.w
			dy := y + f.rand()*band
			f.c.Point(dx, dy, 1, gfx.Grey(f.rand(), intensity))
		}

		f.c.Rect(f.rand()*5, y-1, f.w, 1, gfx.RGBA(1, 0, 0, intensity*0.3))
		f.c.Rect(-f.rand()*5, y+band, f.w, 1, gfx.RGBA(0, 1, 1, intensity*0.3))
	}
	advanceDamageLines(f.ctx, f.p.Delta)
}

// advanceDamageLines scrolls the damage lines down and recycles the ones
// that left the screen somewhere in [-60, -10) above it
func advanceDamageLines(ctx *Context, dt float32) {
	h := float32(ctx.Height)
	for i := 0; i < tapeDamageLines; i++ {
		ctx.DamageLineY[i] += damageLineSpeed * dt
		if ctx.DamageLineY[i] > h+damageWrapMargin {
			spread := float32(ctx.RNG.IntRange(damageWrapSpread*100)+1) / 100
			ctx.DamageLineY[i] = -damageWrapMargin - spread
		}
	}
}

func (f *frame) drawCCTVOverlay(intensity float32) {
	f.fullscreen(gfx.Grey(0.1, intensity*0.3))
	f.fullscreen(gfx.RGBA(0, 0, 0, intensity*0.15))

	if f.preset.Flicker {
		f.drawFlicker(intensity)
	}
	f.drawVignette(intensity)
	f.drawNoiseDots(int(cctvNoiseDots*f.preset.NoiseMult), cctvNoiseDotAlpha)
	f.drawScanlines(cctvScanlineAlpha*f.set.scanlineAlpha, f.preset.ScanlineSkip)
}

func (f *frame) drawFlicker(intensity float32) {
	wave := math.Sin(f.t*cctvFlickerSpeed)*0.5 + 0.5 + math.Sin(f.t*cctvFlickerSpeed*2.3)*0.3
	alpha := float32(wave) * cctvFlicker * intensity
	if alpha <= 0 {
		return
	}
	f.fullscreen(gfx.White.WithAlpha(alpha))
}

func (f *frame) drawVignette(intensity float32) {
	step := max(f.preset.VignetteStep, 1)
	cx, cy := f.w/2, f.h/2
	maxDist := float32(math.Hypot(float64(cx), float64(cy)))
	if maxDist <= 0 {
		return
	}

	for y := 0; y < f.ctx.Height; y += step {
		for x := 0; x < f.ctx.Width; x += step {
			dist := float32(math.Hypot(float64(float32(x)-cx), float64(float32(y)-cy))) / maxDist
			alpha := dist * dist * cctvVignette * intensity
			f.c.Rect(float32(x), float32(y), float32(step), float32(step), gfx.RGBA(0, 0, 0, alpha))
		}
	}
}

func (f *frame) drawScanlines(alpha float32, skip int) {
	if alpha <= 0 {
		return
	}
	if skip < 1 {
		skip = defaultScanlineGap
	}

	col := gfx.RGBA(0, 0, 0, alpha)
	for y := 0; y < f.ctx.Height; y += skip {
		fy := float32(y)
		f.c.Line(0, fy, f.w, fy, col)
	}
}
