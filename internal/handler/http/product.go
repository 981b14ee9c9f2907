package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/StorefrontGo/internal/catalog"
	"github.com/utafrali/StorefrontGo/internal/domain"
	"github.com/utafrali/StorefrontGo/internal/engine"
	"github.com/utafrali/StorefrontGo/internal/navigation"
	"github.com/utafrali/StorefrontGo/internal/normalizer"
)

// maxRawProductBytes bounds the raw product payload accepted for normalization.
const maxRawProductBytes = 1 << 20

// ProductHandler normalizes heterogeneous upstream product records and drives
// the raw-product cart flows.
type ProductHandler struct {
	engines   *engine.Registry
	catalog   *catalog.Client
	navigator navigation.Navigator
	logger    *slog.Logger
}

// NewProductHandler creates a new product HTTP handler. catalog may be nil
// when no upstream catalog is configured; the catalog-backed routes then
// answer 503.
func NewProductHandler(engines *engine.Registry, cat *catalog.Client, nav navigation.Navigator, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		engines:   engines,
		catalog:   cat,
		navigator: nav,
		logger:    logger,
	}
}

// NormalizedResponse is the canonical product view plus its cart eligibility.
type NormalizedResponse struct {
	Product      domain.CartableProduct `json:"product"`
	CartEligible bool                   `json:"cartEligible"`
}

// Normalize handles POST /api/v1/products/normalize. The body is an arbitrary
// upstream product record; the response is the canonical view. This endpoint
// never fails on malformed product shapes, only on an unreadable body.
func (h *ProductHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRawProductBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "unreadable request body"},
		})
		return
	}

	product := normalizer.NormalizeJSON(body)
	writeJSON(w, http.StatusOK, response{Data: NormalizedResponse{
		Product:      product,
		CartEligible: product.CartEligible(),
	}})
}

// AddRaw handles POST /api/v1/cart/raw-items: normalize an upstream record
// and add it to the cart in one step. The quantity query parameter defaults
// to 1. An ineligible record is rejected without mutating the cart.
func (h *ProductHandler) AddRaw(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRawProductBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "unreadable request body"},
		})
		return
	}

	qty := 1
	if q := r.URL.Query().Get("quantity"); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil {
			qty = parsed
		}
	}

	product := normalizer.NormalizeJSON(body)
	if !product.CartEligible() {
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Error: &errorResponse{Code: "NOT_CART_ELIGIBLE", Message: "product record resolves to no id or title"},
		})
		return
	}

	e := h.engines.Engine(r.Context(), sid)
	e.Cart.Add(r.Context(), product.LineItem(qty), qty)

	writeJSON(w, http.StatusOK, response{Data: cartResponse(e)})
}

// Buy handles POST /api/v1/products/{id}/buy: fetch the record from the
// upstream catalog, normalize it, add it to the cart, and hand control to the
// navigator.
func (h *ProductHandler) Buy(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		writeSessionRequired(w)
		return
	}
	if h.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, response{
			Error: &errorResponse{Code: "CATALOG_UNAVAILABLE", Message: "no upstream catalog configured"},
		})
		return
	}

	id := chi.URLParam(r, "id")
	raw, err := h.catalog.FetchProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	product := normalizer.NormalizeJSON(raw)
	if !product.CartEligible() {
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Error: &errorResponse{Code: "NOT_CART_ELIGIBLE", Message: "catalog record resolves to no id or title"},
		})
		return
	}

	e := h.engines.Engine(r.Context(), sid)
	e.Cart.Add(r.Context(), product.LineItem(1), 1)
	h.navigator.Navigate(r.Context(), product.ID)

	writeJSON(w, http.StatusOK, response{Data: cartResponse(e)})
}
