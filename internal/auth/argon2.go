// Package auth provides password hashing and bearer-token services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameter floors. NewHasher rejects anything weaker.
const (
	MinHashTime     = 1
	MinHashMemoryKB = 8 * 1024 // 8 MB
)

// Default argon2id parameters (OWASP recommended).
const (
	DefaultHashTime     = 3
	DefaultHashMemoryKB = 64 * 1024 // 64 MB

	hashThreads = 4
	hashKeyLen  = 32
	hashSaltLen = 16
)

var (
	// ErrInvalidHash indicates the hash format is invalid.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash version is not supported.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	// ErrWeakHashParams indicates the configured work factors are below the floor.
	ErrWeakHashParams = errors.New("hash parameters below minimum")
)

// HasherParams holds the tunable argon2id work factors.
type HasherParams struct {
	Time     uint32
	MemoryKB uint32
}

// DefaultHasherParams returns the recommended work factors.
func DefaultHasherParams() HasherParams {
	return HasherParams{
		Time:     DefaultHashTime,
		MemoryKB: DefaultHashMemoryKB,
	}
}

// Hasher produces and verifies argon2id password hashes.
// Construct one at startup and inject it; the cost parameters are
// fixed for the lifetime of the process.
type Hasher struct {
	params HasherParams
}

// NewHasher creates a Hasher with the given work factors.
// Returns ErrWeakHashParams if either factor is below the documented minimum.
func NewHasher(params HasherParams) (*Hasher, error) {
	if params.Time < MinHashTime {
		return nil, fmt.Errorf("%w: time=%d (min %d)", ErrWeakHashParams, params.Time, MinHashTime)
	}
	if params.MemoryKB < MinHashMemoryKB {
		return nil, fmt.Errorf("%w: memory=%dKB (min %dKB)", ErrWeakHashParams, params.MemoryKB, MinHashMemoryKB)
	}
	return &Hasher{params: params}, nil
}

// Hash creates an Argon2id hash of the given password.
// A fresh random salt is used per call, so hashing the same password
// twice yields different output. Returns the hash in PHC string format.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.MemoryKB,
		hashThreads,
		hashKeyLen,
	)

	// Encode in PHC string format:
	// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKB,
		h.params.Time,
		hashThreads,
		b64Salt,
		b64Hash,
	), nil
}

// Verify checks if the password matches the encoded hash.
// The work factors embedded in the hash are used for recomputation, so
// records hashed under older parameters still verify. Uses constant-time
// comparison to prevent timing attacks. A malformed hash returns
// (false, ErrInvalidHash), never a panic.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	computedHash := argon2.IDKey(
		[]byte(password),
		salt,
		time,
		memory,
		threads,
		uint32(len(expectedHash)),
	)

	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}
