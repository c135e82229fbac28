// Package metricsutil serves the greeter metrics API.
package metricsutil

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"

	"github.com/skycoin/greeter/httputil"
)

// AddMetricsHandle adds a prometheus-format Handle at '/metrics' to the provided serve mux.
func AddMetricsHandle(mux *chi.Mux) {
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
}

// NewHandler returns the metrics API: '/metrics' and, if health is non-nil, '/health'.
func NewHandler(log logrus.FieldLogger, health http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(httputil.NewLogMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(NewRequestsInFlightCountMiddleware().Handle)

	AddMetricsHandle(r)
	if health != nil {
		r.Get("/health", health)
	}

	return r
}

// ServeHTTPMetrics serves the metrics API on addr in the background. Empty addr disables it.
// Failing to serve is fatal.
func ServeHTTPMetrics(log logrus.FieldLogger, addr string, health http.HandlerFunc) {
	if addr == "" {
		return
	}

	h := NewHandler(log, health)

	log.WithField("addr", addr).Info("Serving metrics...")
	go func() { log.Fatalln(http.ListenAndServe(addr, h)) }()
}
