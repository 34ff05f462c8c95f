package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/model"
	"github.com/pokevault/pokevault/internal/repository"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repository.ErrEmailExists
	}
	clone := *user
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func newTestAccountService(t *testing.T, store UserStore) (*AccountService, *auth.TokenIssuer) {
	t.Helper()

	hasher, err := auth.NewHasher(auth.HasherParams{Time: auth.MinHashTime, MemoryKB: auth.MinHashMemoryKB})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	tokens := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)

	svc, err := NewAccountService(store, hasher, tokens, nil)
	if err != nil {
		t.Fatalf("NewAccountService failed: %v", err)
	}
	return svc, tokens
}

func TestAccountService_RegisterThenLogin(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc, tokens := newTestAccountService(t, store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "a@x.com",
		Username: "alice",
		Password: "pw123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("registered user should have an id")
	}
	if user.PasswordHash == "pw123" || user.PasswordHash == "" {
		t.Error("plaintext password must never be stored")
	}

	token, err := svc.Login(ctx, "a@x.com", "pw123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	subject, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("returned token should verify: %v", err)
	}
	if subject != user.ID {
		t.Errorf("token subject = %s, want %s", subject, user.ID)
	}
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc, _ := newTestAccountService(t, store)
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Username: "alice", Password: "pw123"})
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Username: "mallory", Password: "other"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// The first record is untouched.
	stored, err := store.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if stored.ID != first.ID || stored.Username != "alice" {
		t.Error("conflicting registration must not alter the existing record")
	}
}

func TestAccountService_RegisterValidation(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc, _ := newTestAccountService(t, store)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing email", RegisterInput{Username: "alice", Password: "pw123"}},
		{"missing username", RegisterInput{Email: "a@x.com", Password: "pw123"}},
		{"missing password", RegisterInput{Email: "a@x.com", Username: "alice"}},
		{"email without @", RegisterInput{Email: "not-an-email", Username: "alice", Password: "pw123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestAccountService_LoginIndistinguishableFailures(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc, _ := newTestAccountService(t, store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Username: "alice", Password: "pw123"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown email both return the same sentinel.
	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "pw123")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("failure messages must be identical to prevent user enumeration")
	}
}
