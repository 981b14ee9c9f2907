package domain

// LineItem is one product's persisted cart entry. The JSON field names form
// the persisted wire contract and must not change.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image"`
	Seller    string `json:"seller"`
}

// Ledger is the ordered collection of line items for one session. Order is
// first-add order; quantity updates never reorder.
type Ledger struct {
	Items []LineItem
}

// Subtotal is the sum of unit price times quantity over all line items,
// recomputed on every call so it can never go stale after an edit.
func (l *Ledger) Subtotal() int64 {
	var total int64
	for _, item := range l.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// TotalItemCount is the sum of all quantities, not the number of distinct items.
func (l *Ledger) TotalItemCount() int {
	var count int
	for _, item := range l.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line item with the given product ID,
// or -1 if absent. At most one line item exists per product ID.
func (l *Ledger) FindItemIndex(productID string) int {
	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Sanitize drops entries that violate ledger invariants: a missing product ID,
// a quantity below one, or a duplicate product ID (first occurrence wins). A
// negative unit price is clamped to zero. Hydration runs every persisted
// payload through this so a hand-edited or partially written value cannot
// poison the in-memory state.
func (l *Ledger) Sanitize() {
	seen := make(map[string]struct{}, len(l.Items))
	kept := l.Items[:0]
	for _, item := range l.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		if item.UnitPrice < 0 {
			item.UnitPrice = 0
		}
		seen[item.ProductID] = struct{}{}
		kept = append(kept, item)
	}
	l.Items = kept
}
