// Package engine ties a cart ledger and a favorites set together as one
// per-session state engine and caches engines for the process lifetime.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/StorefrontGo/internal/service"
	"github.com/utafrali/StorefrontGo/internal/sink"
	"github.com/utafrali/StorefrontGo/internal/storage"
)

// Storage key prefixes. Each session owns two independent keys.
const (
	cartKeyPrefix      = "cart:"
	favoritesKeyPrefix = "favorites:"
)

// Engine is the cart and favorites state for one session, hydrated from
// storage exactly once when the engine is first created. Later external
// changes to the same keys are not observed until the process restarts; two
// processes mutating the same session resolve last-writer-wins.
type Engine struct {
	Cart      *service.CartLedger
	Favorites *service.Favorites
}

// SinkFactory builds the notification sink for a session.
type SinkFactory func(sessionID string) sink.Sink

// Registry creates engines lazily, one per session id, and caches them.
type Registry struct {
	mu       sync.Mutex
	store    *storage.Adapter
	logger   *slog.Logger
	sinkFor  SinkFactory
	sessions map[string]*Engine
}

// NewRegistry creates an empty registry over the given storage adapter.
func NewRegistry(store *storage.Adapter, logger *slog.Logger, sinkFor SinkFactory) *Registry {
	return &Registry{
		store:    store,
		logger:   logger,
		sinkFor:  sinkFor,
		sessions: make(map[string]*Engine),
	}
}

// Engine returns the cached engine for sessionID, hydrating a new one on
// first access.
func (r *Registry) Engine(ctx context.Context, sessionID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[sessionID]; ok {
		return e
	}

	logger := r.logger.With(slog.String("session_id", sessionID))
	e := &Engine{
		Cart:      service.NewCartLedger(ctx, r.store, r.sinkFor(sessionID), logger, cartKeyPrefix+sessionID),
		Favorites: service.NewFavorites(ctx, r.store, logger, favoritesKeyPrefix+sessionID),
	}
	r.sessions[sessionID] = e

	r.logger.DebugContext(ctx, "session engine hydrated",
		slog.String("session_id", sessionID),
	)
	return e
}
