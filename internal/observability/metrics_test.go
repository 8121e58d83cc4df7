package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/people", "200", time.Millisecond)
	m.InflightInc()
	m.InflightDec()
	m.IncRateLimited("/api/people")
	require.NoError(t, m.CollectDBStats(nil))
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.Nil(t, New(false))
}

func TestWritePrometheus(t *testing.T) {
	m := New(true)
	m.ObserveAPI("GET", "/api/people", "200", 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/people", "200", 2*time.Second)
	m.ObserveAPI("POST", "/api/people", "406", time.Millisecond)
	m.IncRateLimited("/api/notes")

	assert.Equal(t, float64(2), m.apiRequests.Value("GET", "/api/people", "200"))
	assert.Equal(t, uint64(2), m.apiLatency.Count("GET", "/api/people", "200"))

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, "# TYPE pn_api_requests_total counter")
	assert.Contains(t, out, `pn_api_requests_total{method="GET",route="/api/people",status="200"} 2`)
	assert.Contains(t, out, `pn_api_requests_total{method="POST",route="/api/people",status="406"} 1`)
	assert.Contains(t, out, `pn_api_request_duration_seconds_bucket{method="GET",route="/api/people",status="200",le="0.05"} 1`)
	assert.Contains(t, out, `pn_api_request_duration_seconds_bucket{method="GET",route="/api/people",status="200",le="+Inf"} 2`)
	assert.Contains(t, out, `pn_api_rate_limited_total{route="/api/notes"} 1`)

	// GET sorts before POST.
	assert.Less(t, strings.Index(out, `method="GET"`), strings.Index(out, `method="POST"`))
}

func TestLabelEscaping(t *testing.T) {
	assert.Equal(t, `{a="x\"y",b="unknown"}`, labelString([]string{"a", "b"}, []string{`x"y`}))
	assert.Equal(t, `{le="1"}`, withLe("", "1"))
	assert.Equal(t, `{a="b",le="+Inf"}`, withLe(`{a="b"}`, "+Inf"))
}
