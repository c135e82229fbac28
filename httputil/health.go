// Package httputil holds the HTTP helpers of the greeter metrics API.
package httputil

import (
	"net/http"
	"time"
)

// HealthCheckResponse is the body of the /health endpoint.
type HealthCheckResponse struct {
	StartedAt time.Time   `json:"started_at"`
	Uptime    string      `json:"uptime"`
	Stats     interface{} `json:"stats,omitempty"`
}

// MakeHealthHandler serves the service uptime together with the value returned by stats.
// stats may be nil.
func MakeHealthHandler(startedAt time.Time, stats func() interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthCheckResponse{
			StartedAt: startedAt,
			Uptime:    time.Since(startedAt).Truncate(time.Second).String(),
		}
		if stats != nil {
			resp.Stats = stats()
		}
		WriteJSON(w, r, http.StatusOK, resp)
	}
}
