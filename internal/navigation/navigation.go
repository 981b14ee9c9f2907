// Package navigation abstracts the hand-off a "buy now" flow performs after a
// product lands in the cart. Where control transfers to is not this system's
// concern.
package navigation

import (
	"context"
	"log/slog"
)

// Navigator transfers control elsewhere for the given product id.
type Navigator interface {
	Navigate(ctx context.Context, productID string)
}

// Logging is a Navigator that only records the hand-off. It stands in until a
// real checkout integration is wired.
type Logging struct {
	Logger *slog.Logger
}

// Navigate implements Navigator.
func (n Logging) Navigate(ctx context.Context, productID string) {
	n.Logger.InfoContext(ctx, "navigating to checkout",
		slog.String("product_id", productID),
	)
}
