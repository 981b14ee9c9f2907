package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/utafrali/StorefrontGo/pkg/errors"
)

// KV is the raw key-value medium behind the adapter. Implementations return
// apperrors.ErrNotFound (possibly wrapped) when a key is absent.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Status reports how an adapter operation concluded. The adapter never
// returns an error: persistence is a convenience, not a correctness
// requirement, and a storage fault must not break the caller. Status makes
// the degradation observable so tests can assert it happened.
type Status int

const (
	// StatusOK means the operation completed against the medium.
	StatusOK Status = iota
	// StatusMissing means a read found no value for the key.
	StatusMissing
	// StatusDegraded means the medium failed and the operation became a no-op.
	StatusDegraded
)

// String implements fmt.Stringer for log readability.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

var degradedOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_storage_degraded_total",
		Help: "Total number of storage operations that degraded to a no-op",
	},
	[]string{"op"},
)

// Adapter wraps a KV and absorbs every fault it produces. Reads degrade to
// the empty value, writes and removes degrade to no-ops; each degradation is
// logged at warn and counted.
type Adapter struct {
	kv     KV
	logger *slog.Logger
}

// NewAdapter creates an adapter over the given medium.
func NewAdapter(kv KV, logger *slog.Logger) *Adapter {
	return &Adapter{kv: kv, logger: logger}
}

// Read returns the stored value for key. A missing key yields ("", StatusMissing);
// a medium fault yields ("", StatusDegraded).
func (a *Adapter) Read(ctx context.Context, key string) (string, Status) {
	value, err := a.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", StatusMissing
		}
		a.degrade(ctx, "read", key, err)
		return "", StatusDegraded
	}
	return value, StatusOK
}

// Write persists value under key, degrading to a no-op on fault.
func (a *Adapter) Write(ctx context.Context, key, value string) Status {
	if err := a.kv.Set(ctx, key, value); err != nil {
		a.degrade(ctx, "write", key, err)
		return StatusDegraded
	}
	return StatusOK
}

// Remove deletes key, degrading to a no-op on fault. Removing an absent key
// is not a fault.
func (a *Adapter) Remove(ctx context.Context, key string) Status {
	if err := a.kv.Del(ctx, key); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		a.degrade(ctx, "remove", key, err)
		return StatusDegraded
	}
	return StatusOK
}

func (a *Adapter) degrade(ctx context.Context, op, key string, err error) {
	degradedOps.WithLabelValues(op).Inc()
	a.logger.WarnContext(ctx, "storage operation degraded",
		slog.String("op", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}
