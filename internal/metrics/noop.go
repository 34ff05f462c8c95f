package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration(status string) {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected() {}

// IncPokemonCreated is a no-op.
func (n *NoopRecorder) IncPokemonCreated() {}

// IncPokemonUpdated is a no-op.
func (n *NoopRecorder) IncPokemonUpdated() {}

// IncPokemonDeleted is a no-op.
func (n *NoopRecorder) IncPokemonDeleted() {}

// ObserveUpstreamDuration is a no-op.
func (n *NoopRecorder) ObserveUpstreamDuration(duration time.Duration) {}

// IncUpstreamFailure is a no-op.
func (n *NoopRecorder) IncUpstreamFailure() {}
