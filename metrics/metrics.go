// Package metrics defines the instrumentation surface for credential
// resolution: per-outcome counters and end-to-end latency.
package metrics

import "time"

// Outcome labels for resolution attempts.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeTimeout  = "timeout"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

type Recorder interface {
	RecordResolution(outcome string, duration time.Duration)
	RecordRegistryRead(outcome string, duration time.Duration)
}

// Noop discards all observations.
type Noop struct{}

func (Noop) RecordResolution(string, time.Duration)   {}
func (Noop) RecordRegistryRead(string, time.Duration) {}
