package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pokevault/pokevault/internal/model"
)

// ErrPokemonNotFound indicates no pokemon record exists with the given id.
var ErrPokemonNotFound = errors.New("pokemon not found")

// CreatePokemon inserts a new pokemon record.
func (r *Repository) CreatePokemon(ctx context.Context, p *model.Pokemon) error {
	query := `
		INSERT INTO pokemon (id, owner_id, name, category, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.OwnerID,
		p.Name,
		p.Category,
		p.Description,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create pokemon: %w", err)
	}

	return nil
}

// GetPokemonByID retrieves a pokemon record by its ID.
func (r *Repository) GetPokemonByID(ctx context.Context, id string) (*model.Pokemon, error) {
	query := `
		SELECT id, owner_id, name, category, description, created_at, updated_at
		FROM pokemon
		WHERE id = $1
	`

	p, err := scanPokemon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPokemonNotFound
		}
		return nil, fmt.Errorf("failed to get pokemon by ID: %w", err)
	}

	return p, nil
}

// ListPokemonByOwner retrieves all pokemon records owned by the given user,
// newest first.
func (r *Repository) ListPokemonByOwner(ctx context.Context, ownerID string) ([]*model.Pokemon, error) {
	query := `
		SELECT id, owner_id, name, category, description, created_at, updated_at
		FROM pokemon
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Pokemon, 0)
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pokemon row: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pokemon rows: %w", err)
	}

	return result, nil
}

// UpdatePokemon updates the mutable attributes of a pokemon record.
// Ownership must be checked by the caller before invoking this; owner_id
// never changes here.
func (r *Repository) UpdatePokemon(ctx context.Context, p *model.Pokemon) error {
	query := `
		UPDATE pokemon
		SET name = $2, category = $3, description = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Category,
		p.Description,
		p.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPokemonNotFound
	}

	return nil
}

// DeletePokemon removes a pokemon record by ID.
func (r *Repository) DeletePokemon(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pokemon WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pokemon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPokemonNotFound
	}

	return nil
}

// scanPokemon scans a pokemon row from a pgx.Row or pgx.Rows.
func scanPokemon(row pgx.Row) (*model.Pokemon, error) {
	var p model.Pokemon
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Category,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
