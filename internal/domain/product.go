package domain

import "fmt"

// PlaceholderImage is served when no usable image can be resolved from an
// upstream product record.
const PlaceholderImage = "/images/placeholder.png"

// CartableProduct is the canonical product view resolved from a heterogeneous
// upstream record. It is produced fresh per normalization call and never
// persisted. ID and Title may be empty; callers must check CartEligible before
// feeding the product into the cart.
type CartableProduct struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category,omitempty"`
	Seller   string `json:"seller,omitempty"`
}

// CartEligible reports whether the product carries the identity fields the
// ledger requires. Products failing this check must never reach Ledger.Add.
func (p CartableProduct) CartEligible() bool {
	return p.ID != "" && p.Title != ""
}

// LineItem converts the product into a cart line item with the given quantity.
func (p CartableProduct) LineItem(quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Title,
		UnitPrice: p.Price,
		Quantity:  quantity,
		ImageURL:  p.ImageURL,
		Seller:    p.Seller,
	}
}

// FormatPrice renders an amount in minor units as a display string, e.g.
// FormatPrice(1999, "USD") == "USD 19.99". This is the only currency logic in
// the system; conversion and locale formatting live elsewhere.
func FormatPrice(minorUnits int64, currency string) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, minorUnits/100, minorUnits%100)
}
