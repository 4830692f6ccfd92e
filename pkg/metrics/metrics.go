package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcrfx_frames_drawn_total",
		Help: "Total number of frames the overlay was drawn on",
	}, []string{"name"})
	FramesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcrfx_frames_skipped_total",
		Help: "Total number of DrawEffect calls that drew nothing",
	}, []string{"name", "reason"})
	TexturesRecreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcrfx_textures_recreated_total",
		Help: "Total number of times a lost texture handle was recreated",
	}, []string{"name"})
	Triggers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcrfx_triggers_total",
		Help: "Total number of one-shot effects armed",
	}, []string{"name", "kind"})
	BatteryLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vcrfx_battery_level",
		Help: "Battery gauge level shown on the overlay",
	}, []string{"name"})
	LoopPhase = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vcrfx_loop_phase_seconds",
		Help: "Position inside the effect cycle",
	}, []string{"name"})
	CanvasBatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vcrfx_canvas_batches",
		Help: "Draw calls issued by the 2D canvas in the last frame",
	})
	ConsoleCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcrfx_console_commands_total",
		Help: "Debug console commands by outcome",
	}, []string{"command", "result"})
)

type EffectMetrics struct {
	name                 string
	FramesDrawn          prometheus.Counter
	SkippedDisabled      prometheus.Counter
	SkippedUninitialized prometheus.Counter
	TexturesRecreated    prometheus.Counter
	Battery              prometheus.Gauge
	Phase                prometheus.Gauge
}

func NewEffectMetrics(name string) EffectMetrics {
	m := EffectMetrics{
		name:                 name,
		FramesDrawn:          FramesDrawn.WithLabelValues(name),
		SkippedDisabled:      FramesSkipped.WithLabelValues(name, "disabled"),
		SkippedUninitialized: FramesSkipped.WithLabelValues(name, "uninitialized"),
		TexturesRecreated:    TexturesRecreated.WithLabelValues(name),
		Battery:              BatteryLevel.WithLabelValues(name),
		Phase:                LoopPhase.WithLabelValues(name),
	}
	m.FramesDrawn.Add(0)
	m.SkippedDisabled.Add(0)
	m.SkippedUninitialized.Add(0)
	m.TexturesRecreated.Add(0)
	return m
}

// Trigger counts an armed one-shot effect
func (m EffectMetrics) Trigger(kind string) {
	Triggers.WithLabelValues(m.name, kind).Inc()
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
