package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/model"
	"github.com/pokevault/pokevault/internal/repository"
	"github.com/pokevault/pokevault/internal/service"
)

// Shared in-memory fixtures for handler tests.

var testSigningSecret = []byte("0123456789abcdef0123456789abcdef")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memUserStore struct {
	byEmail map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*model.User)}
}

func (m *memUserStore) CreateUser(ctx context.Context, user *model.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return repository.ErrEmailExists
	}
	clone := *user
	m.byEmail[user.Email] = &clone
	return nil
}

func (m *memUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

type memPokemonStore struct {
	byID map[string]*model.Pokemon
}

func newMemPokemonStore() *memPokemonStore {
	return &memPokemonStore{byID: make(map[string]*model.Pokemon)}
}

func (m *memPokemonStore) CreatePokemon(ctx context.Context, p *model.Pokemon) error {
	clone := *p
	m.byID[p.ID] = &clone
	return nil
}

func (m *memPokemonStore) GetPokemonByID(ctx context.Context, id string) (*model.Pokemon, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrPokemonNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memPokemonStore) ListPokemonByOwner(ctx context.Context, ownerID string) ([]*model.Pokemon, error) {
	result := make([]*model.Pokemon, 0)
	for _, p := range m.byID {
		if p.OwnerID == ownerID {
			clone := *p
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *memPokemonStore) UpdatePokemon(ctx context.Context, p *model.Pokemon) error {
	if _, ok := m.byID[p.ID]; !ok {
		return repository.ErrPokemonNotFound
	}
	clone := *p
	m.byID[p.ID] = &clone
	return nil
}

func (m *memPokemonStore) DeletePokemon(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrPokemonNotFound
	}
	delete(m.byID, id)
	return nil
}

func newTestAccountService(t *testing.T) *service.AccountService {
	t.Helper()

	hasher, err := auth.NewHasher(auth.HasherParams{Time: auth.MinHashTime, MemoryKB: auth.MinHashMemoryKB})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	tokens := auth.NewTokenIssuer(testSigningSecret, time.Hour)

	svc, err := service.NewAccountService(newMemUserStore(), hasher, tokens, nil)
	if err != nil {
		t.Fatalf("NewAccountService failed: %v", err)
	}
	return svc
}
