package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFavorites(t *testing.T, data json.RawMessage) FavoritesResponse {
	t.Helper()
	var favs FavoritesResponse
	require.NoError(t, json.Unmarshal(data, &favs))
	return favs
}

func decodeMembership(t *testing.T, data json.RawMessage) MembershipResponse {
	t.Helper()
	var m MembershipResponse
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestFavoritesList_Empty(t *testing.T) {
	router := testRouter(testRegistry())

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/favorites", "s1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeFavorites(t, resp.Data).IDs)
}

func TestFavoritesAdd(t *testing.T) {
	router := testRouter(testRegistry())

	rec, resp := doRequest(t, router, http.MethodPut, "/api/v1/favorites/p1", "s1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	m := decodeMembership(t, resp.Data)
	assert.Equal(t, "p1", m.ID)
	assert.True(t, m.Favorite)

	rec, resp = doRequest(t, router, http.MethodGet, "/api/v1/favorites", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1"}, decodeFavorites(t, resp.Data).IDs)
}

func TestFavoritesHas(t *testing.T) {
	router := testRouter(testRegistry())

	doRequest(t, router, http.MethodPut, "/api/v1/favorites/p1", "s1", nil)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/favorites/p1", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeMembership(t, resp.Data).Favorite)

	rec, resp = doRequest(t, router, http.MethodGet, "/api/v1/favorites/p999", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeMembership(t, resp.Data).Favorite)
}

func TestFavoritesRemove(t *testing.T) {
	router := testRouter(testRegistry())

	doRequest(t, router, http.MethodPut, "/api/v1/favorites/p1", "s1", nil)
	rec, resp := doRequest(t, router, http.MethodDelete, "/api/v1/favorites/p1", "s1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeMembership(t, resp.Data).Favorite)

	rec, resp = doRequest(t, router, http.MethodGet, "/api/v1/favorites", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeFavorites(t, resp.Data).IDs)
}

func TestFavoritesToggle(t *testing.T) {
	router := testRouter(testRegistry())

	rec, resp := doRequest(t, router, http.MethodPost, "/api/v1/favorites/p1/toggle", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeMembership(t, resp.Data).Favorite)

	rec, resp = doRequest(t, router, http.MethodPost, "/api/v1/favorites/p1/toggle", "s1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeMembership(t, resp.Data).Favorite)
}

func TestFavorites_MissingSessionHeader(t *testing.T) {
	router := testRouter(testRegistry())

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/favorites", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestFavorites_SessionsAreIsolated(t *testing.T) {
	router := testRouter(testRegistry())

	doRequest(t, router, http.MethodPut, "/api/v1/favorites/p1", "session-a", nil)

	rec, resp := doRequest(t, router, http.MethodGet, "/api/v1/favorites", "session-b", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeFavorites(t, resp.Data).IDs)
}
