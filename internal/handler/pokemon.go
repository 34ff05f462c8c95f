package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/handler/dto"
	"github.com/pokevault/pokevault/internal/pokeapi"
	"github.com/pokevault/pokevault/internal/service"
)

// Enricher fetches best-effort listing data from the PokeAPI.
type Enricher interface {
	List(ctx context.Context, limit int) (*pokeapi.Page, error)
}

// PokemonHandler handles HTTP requests for pokemon records.
type PokemonHandler struct {
	svc      *service.PokemonService
	enricher Enricher
	limit    int
	logger   *slog.Logger
}

// NewPokemonHandler creates a new PokemonHandler.
// enrichLimit is the PokeAPI page size requested on list.
func NewPokemonHandler(svc *service.PokemonService, enricher Enricher, enrichLimit int, logger *slog.Logger) *PokemonHandler {
	return &PokemonHandler{
		svc:      svc,
		enricher: enricher,
		limit:    enrichLimit,
		logger:   logger,
	}
}

// Create handles POST /protected/pokemon.
func (h *PokemonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PokemonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	p, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), service.PokemonInput{
		Name:        req.Name,
		Category:    req.Type,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("pokemon_created", "pokemon_id", p.ID, "owner_id", p.OwnerID)

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("%s created successfully", p.Name),
	})
}

// List handles GET /protected/pokemon.
// The caller's own records and the PokeAPI listing are fetched
// concurrently; an upstream failure degrades pokeApiData to null but
// never fails the request when the caller's data was retrieved.
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := auth.UserIDFromContext(ctx)

	type enrichResult struct {
		page *pokeapi.Page
		err  error
	}
	enrichCh := make(chan enrichResult, 1)
	go func() {
		page, err := h.enricher.List(ctx, h.limit)
		enrichCh <- enrichResult{page: page, err: err}
	}()

	records, err := h.svc.ListByOwner(ctx, ownerID)

	enrich := <-enrichCh
	if enrich.err != nil {
		h.logger.Warn("pokeapi enrichment failed",
			"error", enrich.err,
			"owner_id", ownerID,
		)
	}

	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PokemonListResponse{
		UserPokemon: dto.ToPokemonResponses(records),
		PokeAPIData: enrich.page,
	})
}

// Update handles PUT /protected/pokemon/{id}.
func (h *PokemonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Pokemon ID is required")
		return
	}

	var req dto.PokemonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), auth.UserIDFromContext(r.Context()), id, service.PokemonInput{
		Name:        req.Name,
		Category:    req.Type,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("pokemon_updated", "pokemon_id", p.ID, "owner_id", p.OwnerID)

	writeJSON(w, http.StatusOK, dto.ToPokemonResponse(p))
}

// Delete handles DELETE /protected/pokemon/{id}.
func (h *PokemonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Pokemon ID is required")
		return
	}

	p, err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("pokemon_deleted", "pokemon_id", p.ID, "owner_id", p.OwnerID)

	writeJSON(w, http.StatusOK, dto.ToPokemonResponse(p))
}

// handleServiceError maps service errors to HTTP responses.
// NotFound and Forbidden stay distinct: a missing id is 404 for every
// caller, a wrong owner is 403.
func (h *PokemonHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPokemonNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Pokemon not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not your pokemon")
	case errors.Is(err, service.ErrInvalidPokemon):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Name and type are required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
