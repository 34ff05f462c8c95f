package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/model"
	"github.com/pokevault/pokevault/internal/pokeapi"
	"github.com/pokevault/pokevault/internal/service"
)

// stubEnricher returns a fixed page or error.
type stubEnricher struct {
	page *pokeapi.Page
	err  error
}

func (s *stubEnricher) List(ctx context.Context, limit int) (*pokeapi.Page, error) {
	return s.page, s.err
}

// asUser injects an authenticated subject into every request.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.ContextWithAuth(r.Context(), &model.AuthContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newPokemonRouter(h *PokemonHandler, userID string) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/protected/pokemon", func(r chi.Router) {
		r.Use(asUser(userID))
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func newTestPokemonHandler(t *testing.T, enricher Enricher) (*PokemonHandler, *memPokemonStore) {
	t.Helper()
	store := newMemPokemonStore()
	svc := service.NewPokemonService(store, nil)
	if enricher == nil {
		enricher = &stubEnricher{page: &pokeapi.Page{Count: 1}}
	}
	return NewPokemonHandler(svc, enricher, 10, testLogger()), store
}

func createPokemon(t *testing.T, store *memPokemonStore, owner string) *model.Pokemon {
	t.Helper()
	svc := service.NewPokemonService(store, nil)
	p, err := svc.Create(context.Background(), owner, service.PokemonInput{Name: "Pika", Category: "electric"})
	if err != nil {
		t.Fatalf("create pokemon: %v", err)
	}
	return p
}

func TestPokemonHandler_Create(t *testing.T) {
	t.Parallel()

	h, store := newTestPokemonHandler(t, nil)
	router := newPokemonRouter(h, "user-a")

	req := httptest.NewRequest(http.MethodPost, "/protected/pokemon",
		strings.NewReader(`{"name":"Pika","type":"electric","description":"yellow"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(response["message"], "Pika") {
		t.Errorf("message should mention the pokemon, got %q", response["message"])
	}

	// Owner comes from the token, never the body.
	for _, p := range store.byID {
		if p.OwnerID != "user-a" {
			t.Errorf("owner = %s, want user-a", p.OwnerID)
		}
	}
}

func TestPokemonHandler_List(t *testing.T) {
	t.Parallel()

	page := &pokeapi.Page{
		Count:   1302,
		Results: []pokeapi.Entry{{Name: "bulbasaur", URL: "https://pokeapi.co/api/v2/pokemon/1/"}},
	}
	h, store := newTestPokemonHandler(t, &stubEnricher{page: page})
	createPokemon(t, store, "user-a")
	createPokemon(t, store, "user-b")

	router := newPokemonRouter(h, "user-a")

	req := httptest.NewRequest(http.MethodGet, "/protected/pokemon", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response struct {
		UserPokemon []json.RawMessage `json:"userPokemon"`
		PokeAPIData *pokeapi.Page     `json:"pokeApiData"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.UserPokemon) != 1 {
		t.Errorf("expected only the caller's pokemon, got %d", len(response.UserPokemon))
	}
	if response.PokeAPIData == nil || response.PokeAPIData.Count != 1302 {
		t.Error("expected enrichment data in response")
	}
}

func TestPokemonHandler_ListEnrichmentFailure(t *testing.T) {
	t.Parallel()

	h, store := newTestPokemonHandler(t, &stubEnricher{err: errors.New("upstream down")})
	createPokemon(t, store, "user-a")

	router := newPokemonRouter(h, "user-a")

	req := httptest.NewRequest(http.MethodGet, "/protected/pokemon", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Upstream failure must not fail the request.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 despite upstream failure, got %d", rec.Code)
	}

	var response struct {
		UserPokemon []json.RawMessage `json:"userPokemon"`
		PokeAPIData *pokeapi.Page     `json:"pokeApiData"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.UserPokemon) != 1 {
		t.Error("caller's own data must survive enrichment failure")
	}
	if response.PokeAPIData != nil {
		t.Error("pokeApiData should be null on enrichment failure")
	}
}

func TestPokemonHandler_UpdateStatuses(t *testing.T) {
	t.Parallel()

	h, store := newTestPokemonHandler(t, nil)
	owned := createPokemon(t, store, "user-a")
	body := `{"name":"Raichu","type":"electric","description":"evolved"}`

	tests := []struct {
		name       string
		caller     string
		id         string
		wantStatus int
	}{
		{"owner", "user-a", owned.ID, http.StatusOK},
		{"non-owner", "user-b", owned.ID, http.StatusForbidden},
		{"missing id", "user-a", "no-such-id", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newPokemonRouter(h, tt.caller)
			req := httptest.NewRequest(http.MethodPut, "/protected/pokemon/"+tt.id, strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPokemonHandler_DeleteStatuses(t *testing.T) {
	t.Parallel()

	h, store := newTestPokemonHandler(t, nil)
	owned := createPokemon(t, store, "user-a")

	// Non-owner first so the record still exists for the owner case.
	router := newPokemonRouter(h, "user-b")
	req := httptest.NewRequest(http.MethodDelete, "/protected/pokemon/"+owned.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner delete: expected 403, got %d", rec.Code)
	}

	router = newPokemonRouter(h, "user-a")
	req = httptest.NewRequest(http.MethodDelete, "/protected/pokemon/"+owned.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d", rec.Code)
	}

	// Deleted record is echoed back.
	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["id"] != owned.ID {
		t.Errorf("deleted id = %v, want %s", response["id"], owned.ID)
	}

	// Gone now.
	req = httptest.NewRequest(http.MethodDelete, "/protected/pokemon/"+owned.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
}
