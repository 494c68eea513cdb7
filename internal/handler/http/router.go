// Package http exposes the storefront state layer over a local HTTP surface
// so any view shell can consume it.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fashionkart/storefront/internal/account"
	"github.com/fashionkart/storefront/internal/cart"
	"github.com/fashionkart/storefront/internal/catalog"
	"github.com/fashionkart/storefront/internal/notify"
	"github.com/fashionkart/storefront/internal/orders"
	"github.com/fashionkart/storefront/internal/wishlist"
	"github.com/fashionkart/storefront/pkg/health"
	"github.com/fashionkart/storefront/pkg/middleware"
)

// Deps carries everything the router serves.
type Deps struct {
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Catalog  *catalog.Service
	Account  *account.Service
	Orders   *orders.Service
	Notices  *notify.Queue
	Health   *health.Handler
	Logger   *slog.Logger

	CORS               middleware.CORSConfig
	PprofCIDRs         []string
	CatalogCacheMaxAge int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORS(d.CORS))

	r.Get("/health/live", d.Health.LivenessHandler())
	r.Get("/health/ready", d.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	middleware.RegisterPprof(r, d.PprofCIDRs, d.Logger)

	cartHandler := NewCartHandler(d.Cart, d.Logger)
	wishlistHandler := NewWishlistHandler(d.Wishlist, d.Logger)
	catalogHandler := NewCatalogHandler(d.Catalog, d.Logger)
	accountHandler := NewAccountHandler(d.Account, d.Logger)
	ordersHandler := NewOrdersHandler(d.Orders, d.Cart, d.Logger)
	noticesHandler := NewNoticesHandler(d.Notices)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}/{size}", cartHandler.SetQuantity)
			r.Delete("/items/{productId}/{size}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.Get)
			r.Delete("/", wishlistHandler.Clear)
			r.Post("/items", wishlistHandler.AddItem)
			r.Get("/items/{productId}", wishlistHandler.Contains)
			r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.CacheControl(d.CatalogCacheMaxAge))
			r.Get("/", catalogHandler.List)
			r.Get("/{productId}", catalogHandler.Get)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordersHandler.Place)
			r.Get("/", ordersHandler.List)
			r.Put("/{orderId}", ordersHandler.UpdateShipping)
			r.Delete("/{orderId}", ordersHandler.Cancel)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", accountHandler.Login)
			r.Post("/register", accountHandler.Register)
			r.Post("/logout", accountHandler.Logout)
			r.Get("/me", accountHandler.Me)
		})

		r.Get("/notifications", noticesHandler.Drain)
	})

	return r
}
