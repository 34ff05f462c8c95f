package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RegistrationsSuccess    uint64
	RegistrationsConflict   uint64
	LoginsSuccess           uint64
	LoginsFailure           uint64
	AuthRejected            uint64
	PokemonCreated          uint64
	PokemonUpdated          uint64
	PokemonDeleted          uint64
	UpstreamCalls           uint64
	UpstreamFailures        uint64
	UpstreamDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	registrationsSuccess    uint64
	registrationsConflict   uint64
	loginsSuccess           uint64
	loginsFailure           uint64
	authRejected            uint64
	pokemonCreated          uint64
	pokemonUpdated          uint64
	pokemonDeleted          uint64
	upstreamCalls           uint64
	upstreamFailures        uint64
	upstreamDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RegistrationsSuccess:    atomic.LoadUint64(&m.registrationsSuccess),
		RegistrationsConflict:   atomic.LoadUint64(&m.registrationsConflict),
		LoginsSuccess:           atomic.LoadUint64(&m.loginsSuccess),
		LoginsFailure:           atomic.LoadUint64(&m.loginsFailure),
		AuthRejected:            atomic.LoadUint64(&m.authRejected),
		PokemonCreated:          atomic.LoadUint64(&m.pokemonCreated),
		PokemonUpdated:          atomic.LoadUint64(&m.pokemonUpdated),
		PokemonDeleted:          atomic.LoadUint64(&m.pokemonDeleted),
		UpstreamCalls:           atomic.LoadUint64(&m.upstreamCalls),
		UpstreamFailures:        atomic.LoadUint64(&m.upstreamFailures),
		UpstreamDurationTotalNs: atomic.LoadInt64(&m.upstreamDurationTotalNs),
	}
}

// IncRegistration increments the registration counter for a status.
func (m *InMemoryRecorder) IncRegistration(status string) {
	if status == "conflict" {
		atomic.AddUint64(&m.registrationsConflict, 1)
		return
	}
	atomic.AddUint64(&m.registrationsSuccess, 1)
}

// IncLogin increments the login counter for a status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "failure" {
		atomic.AddUint64(&m.loginsFailure, 1)
		return
	}
	atomic.AddUint64(&m.loginsSuccess, 1)
}

// IncAuthRejected increments the rejected-token counter.
func (m *InMemoryRecorder) IncAuthRejected() {
	atomic.AddUint64(&m.authRejected, 1)
}

// IncPokemonCreated increments the pokemon created counter.
func (m *InMemoryRecorder) IncPokemonCreated() {
	atomic.AddUint64(&m.pokemonCreated, 1)
}

// IncPokemonUpdated increments the pokemon updated counter.
func (m *InMemoryRecorder) IncPokemonUpdated() {
	atomic.AddUint64(&m.pokemonUpdated, 1)
}

// IncPokemonDeleted increments the pokemon deleted counter.
func (m *InMemoryRecorder) IncPokemonDeleted() {
	atomic.AddUint64(&m.pokemonDeleted, 1)
}

// ObserveUpstreamDuration records a PokeAPI call duration.
func (m *InMemoryRecorder) ObserveUpstreamDuration(duration time.Duration) {
	atomic.AddUint64(&m.upstreamCalls, 1)
	atomic.AddInt64(&m.upstreamDurationTotalNs, duration.Nanoseconds())
}

// IncUpstreamFailure increments the PokeAPI failure counter.
func (m *InMemoryRecorder) IncUpstreamFailure() {
	atomic.AddUint64(&m.upstreamFailures, 1)
}
