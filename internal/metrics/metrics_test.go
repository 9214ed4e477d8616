package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe("screen", time.Now(), nil)
	m.Observe("screen", time.Now(), nil)
	m.Observe("screen", time.Now(), errors.New("boom"))
	m.ObserveStatus("criteria", time.Now(), StatusCached)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("screen", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("screen", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("criteria", StatusCached)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestTrackBulk(t *testing.T) {
	m := New(nil)

	done := m.TrackBulk()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BulkInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BulkInFlight))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("screen", time.Now(), nil)
		m.ObserveScore(80)
		m.TrackBulk()()
	})
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveScore(72)
	m.Observe("validate", time.Now(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "screening_overall_score_count 1")
	assert.Contains(t, body, `screening_operations_total{operation="validate",status="success"} 1`)
}
