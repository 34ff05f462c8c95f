// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/pokevault/pokevault/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420421

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, migration, direction string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	path := filepath.Join(root, "migrations", migration+"."+direction+".sql")
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s migration: %w", direction, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s migration %s: %w", direction, migration, err)
	}
	return nil
}

// ResetUsersSchema drops and recreates the users and pokemon tables for
// tests. pokemon references users, so it goes down first and up last.
func ResetUsersSchema(ctx context.Context, pool *pgxpool.Pool) error {
	steps := []struct{ migration, direction string }{
		{"000002_pokemon", "down"},
		{"000001_users", "down"},
		{"000001_users", "up"},
		{"000002_pokemon", "up"},
	}
	for _, s := range steps {
		if err := applyMigration(ctx, pool, s.migration, s.direction); err != nil {
			return err
		}
	}
	return nil
}

// ResetPokemonSchema drops and recreates the pokemon table for tests,
// leaving users in place.
func ResetPokemonSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if err := applyMigration(ctx, pool, "000002_pokemon", "down"); err != nil {
		return err
	}
	return applyMigration(ctx, pool, "000002_pokemon", "up")
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		Username:     "test-user",
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestPokemon creates a test pokemon record with sensible defaults.
func NewTestPokemon(t testing.TB, ownerID string) *model.Pokemon {
	t.Helper()
	now := time.Now().UTC()
	return &model.Pokemon{
		ID:          ulid.Make().String(),
		OwnerID:     ownerID,
		Name:        "Pika",
		Category:    "electric",
		Description: "test pokemon",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
