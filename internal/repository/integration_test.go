//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/pokevault/pokevault/internal/testutil"
)

// newTestEnv connects to the test database, resets the schema, and
// serializes access across packages with an advisory lock.
func newTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	ctx := context.Background()

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire DB lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release DB lock: %v", err)
		}
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}
