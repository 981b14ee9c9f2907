package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utafrali/StorefrontGo/internal/domain"
)

func TestNormalizeJSON_LegacyDetailShape(t *testing.T) {
	got := NormalizeJSON([]byte(`{"id": 5, "name": "Chair", "coverImage": "c.jpg"}`))

	assert.Equal(t, "5", got.ID)
	assert.Equal(t, "Chair", got.Title)
	assert.Equal(t, "c.jpg", got.ImageURL)
	assert.True(t, got.CartEligible())
}

func TestNormalizeJSON_ListingShape(t *testing.T) {
	got := NormalizeJSON([]byte(`{
		"listingsId": "abc-123",
		"title": "Desk",
		"price": 14900,
		"media": [{"url": "https://cdn.example.com/desk.jpg"}],
		"categoryName": "Furniture",
		"sellerName": "Acme"
	}`))

	assert.Equal(t, "abc-123", got.ID)
	assert.Equal(t, "Desk", got.Title)
	assert.Equal(t, int64(14900), got.Price)
	assert.Equal(t, "https://cdn.example.com/desk.jpg", got.ImageURL)
	assert.Equal(t, "Furniture", got.Category)
	assert.Equal(t, "Acme", got.Seller)
}

func TestNormalizeJSON_EmptyObject(t *testing.T) {
	got := NormalizeJSON([]byte(`{}`))

	assert.Equal(t, "", got.ID)
	assert.Equal(t, "", got.Title)
	assert.Equal(t, int64(0), got.Price)
	assert.Equal(t, domain.PlaceholderImage, got.ImageURL)
	assert.False(t, got.CartEligible())
}

func TestNormalizeJSON_NotAnObject(t *testing.T) {
	got := NormalizeJSON([]byte(`"just a string"`))

	assert.Equal(t, domain.PlaceholderImage, got.ImageURL)
	assert.False(t, got.CartEligible())
}

func TestNormalize_Nil(t *testing.T) {
	got := Normalize(nil)

	assert.Equal(t, domain.PlaceholderImage, got.ImageURL)
	assert.False(t, got.CartEligible())
}

func TestNormalize_ListingsIDWinsOverID(t *testing.T) {
	got := NormalizeJSON([]byte(`{"listingsId": "L-1", "id": 99}`))

	assert.Equal(t, "L-1", got.ID)
}

func TestNormalize_TitleWinsOverName(t *testing.T) {
	got := NormalizeJSON([]byte(`{"title": "Listing Title", "name": "Legacy Name"}`))

	assert.Equal(t, "Listing Title", got.Title)
}

func TestNormalize_NumericZeroIDFallsThrough(t *testing.T) {
	// A zero-valued legacy numeric id is treated as absent.
	got := NormalizeJSON([]byte(`{"listingsId": 0, "id": "7"}`))

	assert.Equal(t, "7", got.ID)
}

func TestNormalize_StringZeroIDIsKept(t *testing.T) {
	got := NormalizeJSON([]byte(`{"listingsId": "0"}`))

	assert.Equal(t, "0", got.ID)
}

func TestNormalize_MalformedIDFallsThrough(t *testing.T) {
	got := NormalizeJSON([]byte(`{"listingsId": {"nested": true}, "id": "fallback"}`))

	assert.Equal(t, "fallback", got.ID)
}

func TestNormalize_MediaFirstEntryObject(t *testing.T) {
	got := NormalizeJSON([]byte(`{"media": [{"url": "a.jpg"}, {"url": "b.jpg"}]}`))

	assert.Equal(t, "a.jpg", got.ImageURL)
}

func TestNormalize_MediaBareString(t *testing.T) {
	got := NormalizeJSON([]byte(`{"media": ["bare.jpg"]}`))

	assert.Equal(t, "bare.jpg", got.ImageURL)
}

func TestNormalize_MediaEmptyFallsThroughToCoverImage(t *testing.T) {
	got := NormalizeJSON([]byte(`{"media": [], "coverImage": "cover.jpg"}`))

	assert.Equal(t, "cover.jpg", got.ImageURL)
}

func TestNormalize_MediaMalformedFallsThroughToImageURL(t *testing.T) {
	got := NormalizeJSON([]byte(`{"media": "not-an-array", "imageUrl": "fallback.jpg"}`))

	assert.Equal(t, "fallback.jpg", got.ImageURL)
}

func TestNormalize_NoImageSourceYieldsPlaceholder(t *testing.T) {
	got := NormalizeJSON([]byte(`{"id": "1", "name": "Lamp"}`))

	assert.Equal(t, domain.PlaceholderImage, got.ImageURL)
}

func TestNormalize_PriceFloatTruncates(t *testing.T) {
	got := NormalizeJSON([]byte(`{"price": 19.99}`))

	assert.Equal(t, int64(19), got.Price)
}

func TestNormalize_PriceNonNumericIsZero(t *testing.T) {
	got := NormalizeJSON([]byte(`{"price": "19.99"}`))

	assert.Equal(t, int64(0), got.Price)
}

func TestNormalize_PriceNegativeClampsToZero(t *testing.T) {
	got := NormalizeJSON([]byte(`{"id": "p1", "title": "Chair", "price": -500}`))

	assert.Equal(t, int64(0), got.Price)
	assert.True(t, got.CartEligible())
}

func TestNormalize_PriceNegativeFloatClampsToZero(t *testing.T) {
	got := NormalizeJSON([]byte(`{"price": -19.99}`))

	assert.Equal(t, int64(0), got.Price)
}

func TestNormalize_CategoryNameWinsOverCategory(t *testing.T) {
	got := NormalizeJSON([]byte(`{"categoryName": "Chairs", "category": "Legacy"}`))

	assert.Equal(t, "Chairs", got.Category)
}

func TestNormalize_SellerFallback(t *testing.T) {
	got := NormalizeJSON([]byte(`{"seller": "Legacy Seller"}`))

	assert.Equal(t, "Legacy Seller", got.Seller)
}

func TestCoerceID(t *testing.T) {
	assert.Equal(t, "abc", CoerceID("abc"))
	assert.Equal(t, "5", CoerceID(5))
	assert.Equal(t, "5", CoerceID(int64(5)))
	assert.Equal(t, "5", CoerceID(float64(5)))
	assert.Equal(t, "5.5", CoerceID(float64(5.5)))
	assert.Equal(t, "42", CoerceID(json.Number("42")))
	assert.Equal(t, "", CoerceID(nil))
	assert.Equal(t, "", CoerceID([]string{"nope"}))
}
