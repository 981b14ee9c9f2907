package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/StorefrontGo/internal/normalizer"
	"github.com/utafrali/StorefrontGo/internal/storage"
)

var favoritesToggles = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_favorites_toggles_total",
		Help: "Total number of favorites toggle operations by outcome",
	},
	[]string{"outcome"},
)

// Favorites owns the persisted set of favorited product ids for one session.
// Identity is by string-coerced value: callers may pass numeric or string
// ids interchangeably. Hydration happens once at construction; every
// operation is total, with failures degrading silently to no persisted
// change.
type Favorites struct {
	mu      sync.Mutex
	store   *storage.Adapter
	logger  *slog.Logger
	key     string
	members map[string]struct{}
}

// NewFavorites creates the favorites set for the given storage key and
// hydrates it. A missing key, a non-JSON payload, or a non-array payload all
// hydrate to the empty set; non-string array members are coerced to strings.
func NewFavorites(ctx context.Context, store *storage.Adapter, logger *slog.Logger, key string) *Favorites {
	f := &Favorites{
		store:   store,
		logger:  logger,
		key:     key,
		members: make(map[string]struct{}),
	}
	f.hydrate(ctx)
	return f
}

func (f *Favorites) hydrate(ctx context.Context) {
	raw, status := f.store.Read(ctx, f.key)
	if status != storage.StatusOK {
		return
	}

	var entries []any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		f.logger.WarnContext(ctx, "discarding corrupt favorites payload",
			slog.String("key", f.key),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, entry := range entries {
		if id := normalizer.CoerceID(entry); id != "" {
			f.members[id] = struct{}{}
		}
	}
}

// List returns the current membership as a sorted slice. The set itself is
// unordered; sorting only makes the output deterministic.
func (f *Favorites) List() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.members))
	for id := range f.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports membership of the string-coerced id.
func (f *Favorites) Has(id any) bool {
	coerced := normalizer.CoerceID(id)
	if coerced == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[coerced]
	return ok
}

// Add inserts the string-coerced id. Adding an existing member is a no-op;
// an id that coerces to the empty string is ignored.
func (f *Favorites) Add(ctx context.Context, id any) {
	coerced := normalizer.CoerceID(id)
	if coerced == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.members[coerced]; ok {
		return
	}
	f.members[coerced] = struct{}{}
	f.persist(ctx)
}

// Remove deletes the string-coerced id. Removing a non-member is a no-op.
func (f *Favorites) Remove(ctx context.Context, id any) {
	coerced := normalizer.CoerceID(id)
	if coerced == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.members[coerced]; !ok {
		return
	}
	delete(f.members, coerced)
	f.persist(ctx)
}

// Toggle flips membership and reports the resulting state: true means the id
// is now a favorite. The read-modify-write runs under the set's mutex, so
// toggles within this process cannot interleave; across processes the last
// writer wins at storage granularity.
func (f *Favorites) Toggle(ctx context.Context, id any) bool {
	coerced := normalizer.CoerceID(id)
	if coerced == "" {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.members[coerced]; ok {
		delete(f.members, coerced)
		f.persist(ctx)
		favoritesToggles.WithLabelValues("removed").Inc()
		return false
	}
	f.members[coerced] = struct{}{}
	f.persist(ctx)
	favoritesToggles.WithLabelValues("added").Inc()
	return true
}

// persist writes the full membership as a JSON string array. Callers hold the
// mutex.
func (f *Favorites) persist(ctx context.Context) {
	ids := make([]string, 0, len(f.members))
	for id := range f.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to marshal favorites", slog.String("error", err.Error()))
		return
	}
	f.store.Write(ctx, f.key, string(data))
}
