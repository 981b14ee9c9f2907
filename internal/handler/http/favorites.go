package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/StorefrontGo/internal/engine"
)

// FavoritesHandler handles HTTP requests for favorites endpoints.
type FavoritesHandler struct {
	engines *engine.Registry
	logger  *slog.Logger
}

// NewFavoritesHandler creates a new favorites HTTP handler.
func NewFavoritesHandler(engines *engine.Registry, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		engines: engines,
		logger:  logger,
	}
}

// FavoritesResponse is the membership view returned by list endpoints.
type FavoritesResponse struct {
	IDs []string `json:"ids"`
}

// MembershipResponse reports a single id's favorite state.
type MembershipResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// List handles GET /api/v1/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	e := h.engines.Engine(r.Context(), sid)
	writeJSON(w, http.StatusOK, response{Data: FavoritesResponse{IDs: e.Favorites.List()}})
}

// Has handles GET /api/v1/favorites/{id}
func (h *FavoritesHandler) Has(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}
	id := chi.URLParam(r, "id")

	e := h.engines.Engine(r.Context(), sid)
	writeJSON(w, http.StatusOK, response{Data: MembershipResponse{ID: id, Favorite: e.Favorites.Has(id)}})
}

// Add handles PUT /api/v1/favorites/{id}
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}
	id := chi.URLParam(r, "id")

	e := h.engines.Engine(r.Context(), sid)
	e.Favorites.Add(r.Context(), id)

	writeJSON(w, http.StatusOK, response{Data: MembershipResponse{ID: id, Favorite: true}})
}

// Remove handles DELETE /api/v1/favorites/{id}
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}
	id := chi.URLParam(r, "id")

	e := h.engines.Engine(r.Context(), sid)
	e.Favorites.Remove(r.Context(), id)

	writeJSON(w, http.StatusOK, response{Data: MembershipResponse{ID: id, Favorite: false}})
}

// Toggle handles POST /api/v1/favorites/{id}/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}
	id := chi.URLParam(r, "id")

	e := h.engines.Engine(r.Context(), sid)
	favorite := e.Favorites.Toggle(r.Context(), id)

	writeJSON(w, http.StatusOK, response{Data: MembershipResponse{ID: id, Favorite: favorite}})
}
