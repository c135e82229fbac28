// Package servermetrics records greeter server metrics.
package servermetrics

import "fmt"

// DeltaType represents a change in a recorded value.
type DeltaType int

// Deltas accepted by Metrics.
const (
	DeltaFailed  DeltaType = 0
	DeltaSuccess DeltaType = 1 // also: connection accepted
	DeltaClose   DeltaType = -1
)

// Metrics collects metrics of the greeter server.
type Metrics interface {
	// RecordConn records a connection being accepted (DeltaSuccess) or dropped (DeltaClose).
	RecordConn(delta DeltaType)
	// RecordGreeting records a greeting write (DeltaSuccess or DeltaFailed).
	RecordGreeting(delta DeltaType)
}

func invalidDelta(delta DeltaType) error {
	return fmt.Errorf("invalid delta: %d", delta)
}
