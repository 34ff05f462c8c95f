package pokeapi

import (
	"math/rand"
	"time"
)

// Retry delays between attempts. The enrichment call sits on the request
// path, so the whole retry budget stays under a second.
var retryDelays = []time.Duration{
	100 * time.Millisecond,
	300 * time.Millisecond,
}

const (
	// MaxAttempts is the maximum number of request attempts.
	MaxAttempts = 3

	// JitterFactor is the ±percentage of jitter applied to delays.
	JitterFactor = 0.2 // ±20%
)

// NextRetryDelay calculates the delay before the next attempt with jitter.
// attemptCount is 0-indexed (after the first failed attempt, attemptCount = 0).
func NextRetryDelay(attemptCount int) time.Duration {
	if attemptCount < 0 {
		attemptCount = 0
	}
	if attemptCount >= len(retryDelays) {
		attemptCount = len(retryDelays) - 1
	}

	base := retryDelays[attemptCount]

	jitterRange := float64(base) * JitterFactor
	jitter := (rand.Float64()*2 - 1) * jitterRange // -20% to +20%

	return time.Duration(float64(base) + jitter)
}
