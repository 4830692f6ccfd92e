package vcr

import (
	"encoding/json"
	"io"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcrfx/internal/logger"
	"vcrfx/pkg/config"
	"vcrfx/pkg/gfx"
	"vcrfx/pkg/metrics"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func newTestEffect(t *testing.T, stored map[string]string, opts ...Option) (*Effect, *gfx.Recorder, *config.Registry) {
	t.Helper()

	log := logger.NewLogger("error")
	log.SetOutput(io.Discard)

	rec := gfx.NewRecorder()
	reg := config.NewRegistry(stored)
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithSeed(1234),
		WithName(t.Name()),
	}, opts...)
	return New(rec, reg, log, opts...), rec, reg
}

func TestInitDefaultsContext(t *testing.T) {
	e, rec, reg := newTestEffect(t, nil)
	e.Init()

	ctx := e.Context()
	assert.True(t, ctx.Initialized)
	assert.Equal(t, float32(0.75), e.Battery())
	assert.Equal(t, -1.0, ctx.EffectStartTime)
	assert.Equal(t, -1.0, ctx.CCTVStartTime)
	assert.Equal(t, float32(-110), ctx.DamageLineY[2])
	assert.Equal(t, 1, ctx.TexGeneration)
	assert.NotZero(t, ctx.RNG.State())
	assert.Equal(t, 1, rec.LiveTextures())

	enabled, ok := reg.Get(VarEnabled)
	require.True(t, ok)
	assert.Equal(t, "1", enabled.Value)
	assert.True(t, enabled.Archive)

	debug, ok := reg.Get(VarDebug)
	require.True(t, ok)
	assert.False(t, debug.Archive)
	assert.Len(t, reg.All(), len(declarations))

	e.Shutdown()
	assert.False(t, ctx.Initialized)
	assert.Equal(t, 0, rec.LiveTextures())

	e.Init()
	assert.Equal(t, 2, ctx.TexGeneration)
}

func TestInitKeepsStoredValues(t *testing.T) {
	e, _, _ := newTestEffect(t, map[string]string{VarQuality: "0", VarMode: "1"})
	e.Init()

	assert.Equal(t, QualityLow, e.Quality())
	assert.Equal(t, ModeCCTV, e.Mode())
	assert.True(t, e.IsEnabled())
}

func TestDrawEffectRestoresState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Effect)
	}{
		{"uninitialized", func(e *Effect) {}},
		{"disabled", func(e *Effect) {
			e.Init()
			e.Disable()
		}},
		{"enabled", func(e *Effect) { e.Init() }},
		{"jittering", func(e *Effect) {
			e.Init()
			e.ForceDistortion()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec, _ := newTestEffect(t, nil)
			tt.setup(e)
			rec.SetColor(gfx.RGBA(0.2, 0.3, 0.4, 0.5))
			rec.BindTexture(7)

			e.DrawEffect(320, 240, 1.0)

			assert.Equal(t, 0, rec.Depth())
			assert.Equal(t, 1, rec.Pushes)
			assert.Equal(t, 1, rec.Pops)
			assert.Equal(t, gfx.White, rec.Color())
			assert.Equal(t, gfx.NoTexture, rec.BoundTexture())
			assert.Equal(t, gfx.BlendAlpha, rec.Blend())
		})
	}
}

func TestDisabledEffectDrawsNothing(t *testing.T) {
	e, rec, _ := newTestEffect(t, nil)
	e.DrawEffect(320, 240, 1.0)
	assert.Empty(t, rec.Ops)

	e.Init()
	e.Disable()
	e.DrawEffect(320, 240, 1.0)
	assert.Empty(t, rec.Ops)
	assert.Equal(t, uint32(0), e.Context().FrameCount)

	skipped := metrics.FramesSkipped.WithLabelValues(t.Name(), "disabled")
	assert.Equal(t, 1.0, testutil.ToFloat64(skipped))
}

func TestDrawEffectDrawsLayers(t *testing.T) {
	e, rec, _ := newTestEffect(t, nil)
	e.Init()

	e.DrawEffect(640, 480, 1.0)

	assert.NotEmpty(t, rec.Ops)
	assert.Equal(t, uint32(1), e.Context().FrameCount)

	multiply := rec.Filter(func(op gfx.Op) bool { return op.Blend == gfx.BlendMultiply })
	assert.Len(t, multiply, 1, "desaturation darkens once")

	assert.Equal(t, 1, rec.Count(gfx.OpDisc), "REC dot")
	assert.Equal(t, 0, rec.Count(gfx.OpLine), "no scanlines outside CCTV")
	for _, op := range rec.Ops {
		assert.Equal(t, 1, op.Depth, "drawn inside the saved state")
	}

	e.DrawEffect(640, 480, 1.1)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.FramesDrawn.WithLabelValues(t.Name())))
}

func TestTimestampDigits(t *testing.T) {
	e, rec, _ := newTestEffect(t, nil)
	e.Init()

	e.DrawEffect(640, 480, 1.0)

	osd := rec.Filter(func(op gfx.Op) bool { return op.Kind == gfx.OpRect && op.Color == osdColor })
	// 03-05-2007 14:07:09 in segments plus two dashes and two colons
	assert.Len(t, osd, 75)

	rec.Clear()
	e.SetQuality(QualityLow)
	e.DrawEffect(640, 480, 1.1)
	osd = rec.Filter(func(op gfx.Op) bool { return op.Kind == gfx.OpRect && op.Color == osdColor })
	assert.Empty(t, osd)
}

func TestCCTVMode(t *testing.T) {
	e, rec, _ := newTestEffect(t, nil)
	e.Init()
	e.SetMode(ModeCCTV)

	e.DrawEffect(320, 240, 1.0)

	assert.Equal(t, 0, rec.Count(gfx.OpDisc), "no REC dot in CCTV mode")
	assert.Equal(t, 120, rec.Count(gfx.OpLine), "scanline every second row")
}

func TestForcedCCTVInVCRMode(t *testing.T) {
	e, rec, _ := newTestEffect(t, nil)
	e.Init()
	e.ForceCCTV()

	e.DrawEffect(320, 240, 1.0)

	assert.Equal(t, 1, rec.Count(gfx.OpDisc))
	assert.Equal(t, 120, rec.Count(gfx.OpLine))
	assert.False(t, e.Context().ForceCCTV)
	assert.Equal(t, 1.0, e.Context().CCTVStartTime)
	assert.Equal(t, float32(1), e.Snapshot().CCTV)
}

func TestStaticBurstFollowsPreset(t *testing.T) {
	tears := func(rec *gfx.Recorder) int {
		return len(rec.Filter(func(op gfx.Op) bool {
			return op.Kind == gfx.OpRect && op.W == 100 && op.H == 2 && op.Color.R == 0.5
		}))
	}

	e, rec, _ := newTestEffect(t, nil)
	e.Init()
	e.ForceStatic()
	e.DrawEffect(100, 100, 1.0)
	assert.Equal(t, staticTearLines, tears(rec))

	rec.Clear()
	e.SetQuality(QualityLow)
	e.ForceStatic()
	e.DrawEffect(100, 100, 1.05)
	assert.Zero(t, tears(rec))
}

func TestLostTextureIsRecreated(t *testing.T) {
	e, rec, _ := newTestEffect(t, nil)
	e.Init()
	before := e.Context().Texture

	rec.LoseTextures()
	e.DrawEffect(320, 240, 1.0)

	after := e.Context().Texture
	assert.NotEqual(t, before, after)
	assert.True(t, rec.IsTexture(after))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TexturesRecreated.WithLabelValues(t.Name())))
}

func TestSettersClamp(t *testing.T) {
	e, _, reg := newTestEffect(t, nil)
	e.Init()

	e.SetQuality(7)
	assert.Equal(t, QualityHigh, e.Quality())
	e.SetQuality(-3)
	assert.Equal(t, QualityLow, e.Quality())

	e.SetMode(5)
	assert.Equal(t, ModeCCTV, e.Mode())

	// Out-of-range stored values are clamped on read
	reg.SetInt(VarMode, -2)
	assert.Equal(t, ModeVCR, e.Mode())

	e.SetBattery(1.5)
	assert.Equal(t, float32(1), e.Battery())
	e.SetBattery(-0.2)
	assert.Equal(t, float32(0), e.Battery())

	e.SetBattery(float32(math.NaN()))
	assert.Equal(t, float32(0), e.Battery())
	_, err := json.Marshal(e.Snapshot())
	assert.NoError(t, err)
}

func TestEnableToggle(t *testing.T) {
	e, _, _ := newTestEffect(t, nil)

	e.Enable()
	assert.False(t, e.IsEnabled(), "no-op before Init")

	e.Init()
	assert.True(t, e.IsEnabled())
	e.Toggle()
	assert.False(t, e.IsEnabled())
	e.Toggle()
	assert.True(t, e.IsEnabled())
}

func TestReset(t *testing.T) {
	e, _, _ := newTestEffect(t, nil)
	e.Init()

	e.DrawEffect(320, 240, 1.0)
	e.DrawEffect(320, 240, 15.0)
	e.ForceTapeDamage()
	e.ForceStatic()

	e.Reset()

	ctx := e.Context()
	assert.Equal(t, uint32(0), ctx.FrameCount)
	assert.Equal(t, float32(-50), ctx.TrackingLineY)
	assert.Equal(t, -1.0, ctx.EffectStartTime)
	assert.Equal(t, -1.0, ctx.LastFrameTime)
	assert.False(t, ctx.ForceTapeDamage)
	assert.False(t, ctx.ForceStatic)
	assert.True(t, ctx.Initialized)
}

func TestSnapshot(t *testing.T) {
	e, _, _ := newTestEffect(t, nil)
	e.Init()
	e.SetBattery(0.1)

	e.DrawEffect(640, 480, 3.0)
	e.DrawEffect(640, 480, 34.0)

	s := e.Snapshot()
	assert.True(t, s.Initialized)
	assert.True(t, s.Enabled)
	assert.Equal(t, uint32(2), s.FrameCount)
	assert.Equal(t, 640, s.Width)
	assert.Equal(t, 31.0, s.Phase)
	assert.Equal(t, 120, s.DotCount)
	assert.Equal(t, float32(0.1), s.Battery)
	assert.Equal(t, QualityHigh, s.Quality)
}

func TestDebugVarLogsTriggers(t *testing.T) {
	e, _, reg := newTestEffect(t, nil)
	e.Init()
	reg.SetInt(VarDebug, 1)

	e.ForceStatic()
	e.DrawEffect(320, 240, 2.0)

	static := metrics.Triggers.WithLabelValues(t.Name(), "static")
	assert.Equal(t, 1.0, testutil.ToFloat64(static))
}
