package metricsutil

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	b, err := ioutil.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(b)
}

func TestNewHandler(t *testing.T) {
	metrics.GetOrCreateCounter("metricsutil_test_total").Inc()

	log, _ := test.NewNullLogger()
	h := NewHandler(log, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) //nolint:errcheck
	})

	code, body := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "metricsutil_test_total 1")
	assert.Contains(t, body, "request_ongoing_count")

	code, body = get(t, h, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestNewHandler_NoHealth(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := NewHandler(log, nil)

	code, _ := get(t, h, "/health")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRequestsInFlightCountMiddleware(t *testing.T) {
	m := NewRequestsInFlightCountMiddleware()

	var inFlight int64
	h := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight = m.Reqs()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, int64(1), inFlight)
	assert.Equal(t, int64(0), m.Reqs())
}
