package vcr

import "vcrfx/pkg/gfx"

// Seven-segment layout:
//
//	 AAA
//	F   B
//	 GGG
//	E   C
//	 DDD
const (
	segA uint8 = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
)

var digitSegments = [10]uint8{
	0: segA | segB | segC | segD | segE | segF,
	1: segB | segC,
	2: segA | segB | segG | segE | segD,
	3: segA | segB | segG | segC | segD,
	4: segF | segG | segB | segC,
	5: segA | segF | segG | segC | segD,
	6: segA | segF | segG | segE | segC | segD,
	7: segA | segB | segC,
	8: segA | segB | segC | segD | segE | segF | segG,
	9: segA | segB | segC | segD | segF | segG,
}

var osdColor = gfx.RGBA(1, 1, 1, 0.9)

// DrawDigit draws a seven-segment digit with its top-left corner at (x, y).
// The glyph is size tall and 0.6*size wide; digits outside 0..9 draw nothing.
func DrawDigit(c gfx.Canvas, digit int, x, y, size float32) {
	if digit < 0 || digit > 9 {
		return
	}

	w := size * 0.6
	h := size
	t := size * 0.15
	segs := digitSegments[digit]

	if segs&segA != 0 {
		c.Rect(x, y, w, t, osdColor)
	}
	if segs&segB != 0 {
		c.Rect(x+w-t, y, t, h/2, osdColor)
	}
	if segs&segC != 0 {
		c.Rect(x+w-t, y+h/2, t, h/2, osdColor)
	}
	if segs&segD != 0 {
		c.Rect(x, y+h-t, w, t, osdColor)
	}
	if segs&segE != 0 {
		c.Rect(x, y+h/2, t, h/2, osdColor)
	}
	if segs&segF != 0 {
		c.Rect(x, y, t, h/2, osdColor)
	}
	if segs&segG != 0 {
		c.Rect(x, y+h/2-t/2, w, t, osdColor)
	}
}
