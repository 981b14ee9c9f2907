package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/StorefrontGo/internal/catalog"
	"github.com/utafrali/StorefrontGo/internal/engine"
	"github.com/utafrali/StorefrontGo/internal/navigation"
	"github.com/utafrali/StorefrontGo/pkg/health"
	"github.com/utafrali/StorefrontGo/pkg/middleware"
)

// NewRouter creates a chi router with all storefront state routes registered.
// cat may be nil when no upstream catalog is configured.
func NewRouter(
	engines *engine.Registry,
	cat *catalog.Client,
	nav navigation.Navigator,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront-state"))
	r.Use(middleware.Tracing("storefront-state"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(engines, logger)
	favoritesHandler := NewFavoritesHandler(engines, logger)
	productHandler := NewProductHandler(engines, cat, nav, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)

			r.Post("/raw-items", productHandler.AddRaw)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favoritesHandler.List)
			r.Get("/{id}", favoritesHandler.Has)
			r.Put("/{id}", favoritesHandler.Add)
			r.Delete("/{id}", favoritesHandler.Remove)
			r.Post("/{id}/toggle", favoritesHandler.Toggle)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/normalize", productHandler.Normalize)
			r.Post("/{id}/buy", productHandler.Buy)
		})
	})

	return r
}
