package servermetrics

import (
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
)

// VictoriaMetrics implements Metrics using VictoriaMetrics.
type VictoriaMetrics struct {
	activeConns int64

	activeConnsGauge *metrics.Gauge
	acceptedConns    *metrics.Counter
	greetings        *metrics.Counter
	failedGreetings  *metrics.Counter
}

// NewVictoriaMetrics returns the Victoria Metrics implementation of Metrics.
func NewVictoriaMetrics() *VictoriaMetrics {
	var m VictoriaMetrics

	m.activeConnsGauge = metrics.GetOrCreateGauge("active_conns_count", func() float64 {
		return float64(m.ActiveConns())
	})
	m.acceptedConns = metrics.GetOrCreateCounter("conn_accepted_total")
	m.greetings = metrics.GetOrCreateCounter("greeting_success_total")
	m.failedGreetings = metrics.GetOrCreateCounter("greeting_fail_total")

	return &m
}

// IncActiveConns increments active connections count.
func (m *VictoriaMetrics) IncActiveConns() {
	atomic.AddInt64(&m.activeConns, 1)
}

// DecActiveConns decrements active connections count.
func (m *VictoriaMetrics) DecActiveConns() {
	atomic.AddInt64(&m.activeConns, -1)
}

// ActiveConns gets current active connections count.
func (m *VictoriaMetrics) ActiveConns() int64 {
	return atomic.LoadInt64(&m.activeConns)
}

// AcceptedConns gets the total number of accepted connections.
func (m *VictoriaMetrics) AcceptedConns() uint64 {
	return m.acceptedConns.Get()
}

// Greetings gets the total number of successful greetings.
func (m *VictoriaMetrics) Greetings() uint64 {
	return m.greetings.Get()
}

// FailedGreetings gets the total number of failed greetings.
func (m *VictoriaMetrics) FailedGreetings() uint64 {
	return m.failedGreetings.Get()
}

// RecordConn implements `Metrics`.
func (m *VictoriaMetrics) RecordConn(delta DeltaType) {
	switch delta {
	case DeltaSuccess:
		m.acceptedConns.Inc()
		m.IncActiveConns()
	case DeltaClose:
		m.DecActiveConns()
	default:
		panic(invalidDelta(delta))
	}
}

// RecordGreeting implements `Metrics`.
func (m *VictoriaMetrics) RecordGreeting(delta DeltaType) {
	switch delta {
	case DeltaFailed:
		m.failedGreetings.Inc()
	case DeltaSuccess:
		m.greetings.Inc()
	default:
		panic(invalidDelta(delta))
	}
}
