// Package normalizer reconciles the product shapes returned by different
// upstream catalog endpoints into the single canonical view the cart and UI
// consume. Listing endpoints send `listingsId`/`title`/`media`, legacy detail
// endpoints send `id`/`name`/`coverImage`, and some embedders send a bare
// `imageUrl`. Each field is resolved by a chain of typed source functions,
// first match wins, and a failed or malformed source simply falls through to
// the next one. Normalization never returns an error.
package normalizer

import (
	"encoding/json"
	"strconv"

	"github.com/utafrali/StorefrontGo/internal/domain"
)

// RawProduct holds an upstream product record with every field kept as raw
// JSON. Fields are decoded lazily by the source function that recognizes
// their shape, so one malformed field cannot poison the rest of the record.
type RawProduct struct {
	ListingsID   json.RawMessage `json:"listingsId"`
	ID           json.RawMessage `json:"id"`
	Title        json.RawMessage `json:"title"`
	Name         json.RawMessage `json:"name"`
	Price        json.RawMessage `json:"price"`
	Media        json.RawMessage `json:"media"`
	CoverImage   json.RawMessage `json:"coverImage"`
	ImageURL     json.RawMessage `json:"imageUrl"`
	CategoryName json.RawMessage `json:"categoryName"`
	Category     json.RawMessage `json:"category"`
	SellerName   json.RawMessage `json:"sellerName"`
	Seller       json.RawMessage `json:"seller"`
}

// source resolves one candidate value for a canonical field. ok is false when
// the raw field is absent, empty, or of an unrecognized shape.
type source func(p *RawProduct) (value string, ok bool)

// firstMatch runs sources in order and returns the first hit.
func firstMatch(p *RawProduct, sources ...source) (string, bool) {
	for _, s := range sources {
		if v, ok := s(p); ok {
			return v, true
		}
	}
	return "", false
}

// Normalize resolves a raw record into the canonical cartable view. The
// result always has a defined image (placeholder fallback); ID and Title may
// be empty and callers must check CartEligible before a cart add.
func Normalize(p *RawProduct) domain.CartableProduct {
	out := domain.CartableProduct{ImageURL: domain.PlaceholderImage}
	if p == nil {
		return out
	}

	out.ID, _ = firstMatch(p, identifier(p.ListingsID), identifier(p.ID))
	out.Title, _ = firstMatch(p, text(p.Title), text(p.Name))
	if img, ok := firstMatch(p, mediaImage, text(p.CoverImage), text(p.ImageURL)); ok {
		out.ImageURL = img
	}
	out.Category, _ = firstMatch(p, text(p.CategoryName), text(p.Category))
	out.Seller, _ = firstMatch(p, text(p.SellerName), text(p.Seller))
	out.Price = price(p.Price)

	return out
}

// NormalizeJSON decodes an arbitrary upstream payload and normalizes it. A
// payload that is not a JSON object yields the all-defaults product, never an
// error.
func NormalizeJSON(data []byte) domain.CartableProduct {
	var raw RawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.CartableProduct{ImageURL: domain.PlaceholderImage}
	}
	return Normalize(&raw)
}

// identifier recognizes a string or numeric id. A numeric zero and the empty
// string are treated as absent so a zero-valued legacy field falls through to
// the next candidate.
func identifier(raw json.RawMessage) source {
	return func(*RawProduct) (string, bool) {
		if len(raw) == 0 {
			return "", false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, s != ""
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			if n.String() == "0" {
				return "", false
			}
			return n.String(), true
		}
		return "", false
	}
}

// text recognizes a non-empty JSON string.
func text(raw json.RawMessage) source {
	return func(*RawProduct) (string, bool) {
		if len(raw) == 0 {
			return "", false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, s != ""
	}
}

// mediaImage recognizes the first entry of an ordered media list: either an
// object exposing a url field or a bare URL string. Anything else falls
// through.
func mediaImage(p *RawProduct) (string, bool) {
	if len(p.Media) == 0 {
		return "", false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(p.Media, &entries); err != nil || len(entries) == 0 {
		return "", false
	}
	first := entries[0]

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(first, &obj); err == nil && obj.URL != "" {
		return obj.URL, true
	}

	var s string
	if err := json.Unmarshal(first, &s); err == nil && s != "" {
		return s, true
	}
	return "", false
}

// price recognizes a numeric amount in minor units. Fractional values are
// truncated toward zero; negative amounts and anything unrecognizable are
// zero.
func price(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	var v int64
	if i, err := n.Int64(); err == nil {
		v = i
	} else if f, err := n.Float64(); err == nil {
		v = int64(f)
	}
	if v < 0 {
		return 0
	}
	return v
}

// CoerceID normalizes a caller-supplied product identifier to its string
// form. Callers pass numeric or string ids interchangeably; membership in the
// favorites set is always by string-coerced value.
func CoerceID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
