package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pokevault/pokevault/internal/metrics"
	"github.com/pokevault/pokevault/internal/model"
	"github.com/pokevault/pokevault/internal/repository"
)

// Pokemon service errors.
var (
	ErrPokemonNotFound = errors.New("pokemon not found")
	ErrNotOwner        = errors.New("caller does not own this pokemon")
	ErrInvalidPokemon  = errors.New("pokemon name and type are required")
)

// PokemonStore is the persistence capability PokemonService depends on.
// *repository.Repository satisfies it.
type PokemonStore interface {
	CreatePokemon(ctx context.Context, p *model.Pokemon) error
	GetPokemonByID(ctx context.Context, id string) (*model.Pokemon, error)
	ListPokemonByOwner(ctx context.Context, ownerID string) ([]*model.Pokemon, error)
	UpdatePokemon(ctx context.Context, p *model.Pokemon) error
	DeletePokemon(ctx context.Context, id string) error
}

// PokemonService handles pokemon record business logic, including the
// ownership checks on mutations.
type PokemonService struct {
	store   PokemonStore
	metrics metrics.Recorder
}

// NewPokemonService creates a PokemonService.
func NewPokemonService(store PokemonStore, recorder metrics.Recorder) *PokemonService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PokemonService{
		store:   store,
		metrics: recorder,
	}
}

// PokemonInput defines the mutable attributes of a pokemon record.
type PokemonInput struct {
	Name        string
	Category    string
	Description string
}

func (in PokemonInput) validate() error {
	if in.Name == "" || in.Category == "" {
		return ErrInvalidPokemon
	}
	return nil
}

// Create stores a new pokemon record owned by the given user.
// The owner is always the authenticated caller, never taken from the
// request body.
func (s *PokemonService) Create(ctx context.Context, ownerID string, input PokemonInput) (*model.Pokemon, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Pokemon{
		ID:          ulid.Make().String(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreatePokemon(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.IncPokemonCreated()
	return p, nil
}

// ListByOwner returns all pokemon records owned by the given user.
func (s *PokemonService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Pokemon, error) {
	return s.store.ListPokemonByOwner(ctx, ownerID)
}

// Update replaces the mutable attributes of a pokemon record after
// authorizing the caller. Concurrent updates by the owner are
// last-writer-wins.
func (s *PokemonService) Update(ctx context.Context, subjectID, id string, input PokemonInput) (*model.Pokemon, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	p, err := s.authorizeMutation(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.Category = input.Category
	p.Description = input.Description
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePokemon(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPokemonNotFound) {
			return nil, ErrPokemonNotFound
		}
		return nil, err
	}

	s.metrics.IncPokemonUpdated()
	return p, nil
}

// Delete removes a pokemon record after authorizing the caller.
// The deleted record is returned so handlers can echo it.
func (s *PokemonService) Delete(ctx context.Context, subjectID, id string) (*model.Pokemon, error) {
	p, err := s.authorizeMutation(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeletePokemon(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPokemonNotFound) {
			return nil, ErrPokemonNotFound
		}
		return nil, err
	}

	s.metrics.IncPokemonDeleted()
	return p, nil
}

// authorizeMutation is the single ownership gate for update and delete.
// Existence is checked before ownership: a missing id yields
// ErrPokemonNotFound for every caller, a wrong owner yields ErrNotOwner.
func (s *PokemonService) authorizeMutation(ctx context.Context, subjectID, id string) (*model.Pokemon, error) {
	p, err := s.store.GetPokemonByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPokemonNotFound) {
			return nil, ErrPokemonNotFound
		}
		return nil, fmt.Errorf("lookup pokemon: %w", err)
	}

	if p.OwnerID != subjectID {
		return nil, ErrNotOwner
	}

	return p, nil
}
