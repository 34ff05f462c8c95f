// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncRegistration(status string) // status: "success" or "conflict"
	IncLogin(status string)        // status: "success" or "failure"
	IncAuthRejected()              // bearer token rejected by the auth gate

	// Pokemon record metrics
	IncPokemonCreated()
	IncPokemonUpdated()
	IncPokemonDeleted()

	// PokeAPI enrichment metrics
	ObserveUpstreamDuration(duration time.Duration)
	IncUpstreamFailure()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
