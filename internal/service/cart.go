package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/StorefrontGo/internal/domain"
	"github.com/utafrali/StorefrontGo/internal/sink"
	"github.com/utafrali/StorefrontGo/internal/storage"
)

var (
	cartAdds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_adds_total",
		Help: "Total number of successful cart add operations",
	})
	cartAddsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_adds_rejected_total",
		Help: "Total number of cart adds rejected for missing product id or name",
	})
)

// CartLedger owns the ordered line-item collection for one session. State is
// hydrated from storage exactly once at construction and persisted after
// every mutation; a mutex serializes mutations so rapid successive actions
// cannot interleave. Every method is total: precondition violations are
// rejected without an error and storage faults degrade to in-memory-only
// operation.
type CartLedger struct {
	mu       sync.Mutex
	store    *storage.Adapter
	notifier sink.Sink
	logger   *slog.Logger
	key      string
	ledger   domain.Ledger
}

// NewCartLedger creates the ledger for the given storage key and hydrates it.
// A missing key, a non-JSON payload, or a payload of unexpected shape all
// hydrate to the empty ledger.
func NewCartLedger(ctx context.Context, store *storage.Adapter, notifier sink.Sink, logger *slog.Logger, key string) *CartLedger {
	s := &CartLedger{
		store:    store,
		notifier: notifier,
		logger:   logger,
		key:      key,
	}
	s.hydrate(ctx)
	return s
}

func (s *CartLedger) hydrate(ctx context.Context) {
	raw, status := s.store.Read(ctx, s.key)
	if status != storage.StatusOK {
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt cart payload",
			slog.String("key", s.key),
			slog.String("error", err.Error()),
		)
		return
	}

	s.ledger.Items = items
	s.ledger.Sanitize()
}

// Add merges the item into the ledger. An existing product accumulates
// quantity while keeping its first-seen name, price, image, and seller; a new
// product is appended. The returned bool reports whether the ledger changed:
// an item lacking a product id or name is rejected as a no-op and fires no
// notification. Quantities below one count as one and a negative unit price
// is stored as zero.
func (s *CartLedger) Add(ctx context.Context, item domain.LineItem, qty int) bool {
	if item.ProductID == "" || item.Name == "" {
		cartAddsRejected.Inc()
		s.logger.DebugContext(ctx, "rejected cart add for ineligible product",
			slog.String("product_id", item.ProductID),
		)
		return false
	}
	if qty < 1 {
		qty = 1
	}
	if item.UnitPrice < 0 {
		item.UnitPrice = 0
	}

	s.mu.Lock()
	var name string
	if i := s.ledger.FindItemIndex(item.ProductID); i >= 0 {
		s.ledger.Items[i].Quantity += qty
		name = s.ledger.Items[i].Name
	} else {
		item.Quantity = qty
		s.ledger.Items = append(s.ledger.Items, item)
		name = item.Name
	}
	s.persist(ctx)
	s.mu.Unlock()

	cartAdds.Inc()
	s.notifier.Notify(ctx, "Added to cart", name)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", item.ProductID),
		slog.Int("quantity", qty),
	)
	return true
}

// Remove deletes the line item for productID. Removing an absent product is a
// no-op, not an error.
func (s *CartLedger) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ledger.FindItemIndex(productID)
	if i < 0 {
		return
	}
	s.ledger.Items = append(s.ledger.Items[:i], s.ledger.Items[i+1:]...)
	s.persist(ctx)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
	)
}

// SetQuantity overwrites the quantity in place, keeping ledger position. A
// quantity of zero or less removes the item entirely; an absent product is a
// no-op.
func (s *CartLedger) SetQuantity(ctx context.Context, productID string, qty int) {
	if qty <= 0 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ledger.FindItemIndex(productID)
	if i < 0 {
		return
	}
	s.ledger.Items[i].Quantity = qty
	s.persist(ctx)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("product_id", productID),
		slog.Int("quantity", qty),
	)
}

// Clear empties the ledger and persists the empty state.
func (s *CartLedger) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.Items = nil
	s.persist(ctx)

	s.logger.InfoContext(ctx, "cart cleared")
}

// Items returns a copy of the line items in first-add order.
func (s *CartLedger) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, len(s.ledger.Items))
	copy(items, s.ledger.Items)
	return items
}

// TotalItemCount returns the sum of all quantities.
func (s *CartLedger) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TotalItemCount()
}

// Subtotal returns the recomputed sum of unit price times quantity.
func (s *CartLedger) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Subtotal()
}

// persist writes the full ledger under the cart key. Callers hold the mutex.
// The persisted shape is a bare JSON array of line items; a degraded write
// leaves the in-memory state authoritative for this process.
func (s *CartLedger) persist(ctx context.Context) {
	items := s.ledger.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal cart", slog.String("error", err.Error()))
		return
	}
	s.store.Write(ctx, s.key, string(data))
}
