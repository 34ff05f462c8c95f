package dto

import (
	"time"

	"github.com/pokevault/pokevault/internal/model"
	"github.com/pokevault/pokevault/internal/pokeapi"
)

// PokemonRequest represents the request body for creating or updating a
// pokemon record. The "type" field maps to the record's category.
type PokemonRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// PokemonResponse represents a pokemon record in API responses.
type PokemonResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PokemonListResponse combines the caller's own records with best-effort
// PokeAPI enrichment. PokeAPIData is null when the upstream fetch failed;
// the caller's own data is always present on a 200.
type PokemonListResponse struct {
	UserPokemon []PokemonResponse `json:"userPokemon"`
	PokeAPIData *pokeapi.Page     `json:"pokeApiData"`
}

// ToPokemonResponse converts a Pokemon model to its response DTO.
func ToPokemonResponse(p *model.Pokemon) PokemonResponse {
	return PokemonResponse{
		ID:          p.ID,
		UserID:      p.OwnerID,
		Name:        p.Name,
		Type:        p.Category,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPokemonResponses converts a slice of Pokemon models.
func ToPokemonResponses(records []*model.Pokemon) []PokemonResponse {
	result := make([]PokemonResponse, 0, len(records))
	for _, p := range records {
		result = append(result, ToPokemonResponse(p))
	}
	return result
}
