package servermetrics

// NewEmpty implements Metrics, but does nothing.
func NewEmpty() Metrics {
	return empty{}
}

type empty struct{}

func (empty) RecordConn(_ DeltaType)     {}
func (empty) RecordGreeting(_ DeltaType) {}
