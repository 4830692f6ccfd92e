package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEffectMetricsAreLabelled(t *testing.T) {
	m := NewEffectMetrics("metrics-test")
	m.FramesDrawn.Inc()
	m.FramesDrawn.Inc()
	m.Trigger("static")

	assert.Equal(t, 2.0, testutil.ToFloat64(FramesDrawn.WithLabelValues("metrics-test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(Triggers.WithLabelValues("metrics-test", "static")))
	assert.Equal(t, 0.0, testutil.ToFloat64(FramesSkipped.WithLabelValues("metrics-test", "disabled")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	NewEffectMetrics("metrics-handler")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `vcrfx_frames_drawn_total{name="metrics-handler"} 0`)
}
