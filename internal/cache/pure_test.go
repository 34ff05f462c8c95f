package cache

import "testing"

func TestHashIP(t *testing.T) {
	t.Parallel()

	a := hashIP("203.0.113.10")
	b := hashIP("203.0.113.11")

	if a == b {
		t.Error("different IPs should hash differently")
	}
	if a != hashIP("203.0.113.10") {
		t.Error("hashing must be deterministic")
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
}
