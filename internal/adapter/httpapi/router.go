package httpapi

import (
	"net/http"

	"github.com/divyanshus2404/Unimarket/internal/middleware"
	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Reviews  *ReviewHandler
	Users    *UserHandler
}

// NewRouter mounts the API. Catalog reads and auth are public; everything
// that acts on behalf of a user sits behind JWT.
func NewRouter(h Handlers, jwtSecret string, log *logger.Logger, mm *metrics.MetricsManager) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.RequestLogger(log, mm))
	mux.Use(chimiddleware.Recoverer)

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public routes.
	mux.Post("/api/auth/register", h.Users.HandleRegister)
	mux.Post("/api/auth/login", h.Users.HandleLogin)
	mux.Get("/api/products", h.Products.HandleList)
	mux.Get("/api/products/{id}", h.Products.HandleGet)
	mux.Get("/api/products/{id}/reviews", h.Reviews.HandleList)

	// Authenticated routes.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret))

		r.Post("/api/products", h.Products.HandleCreate)
		r.Patch("/api/products/{id}/status", h.Products.HandleUpdateStatus)
		r.Post("/api/products/{id}/photos", h.Products.HandleUploadPhoto)
		r.Post("/api/products/{id}/reviews", h.Reviews.HandleCreate)

		r.Post("/api/products/{id}/favorite", h.Users.HandleAddFavorite)
		r.Delete("/api/products/{id}/favorite", h.Users.HandleRemoveFavorite)
		r.Get("/api/favorites", h.Users.HandleGetFavorites)

		r.Get("/api/cart", h.Cart.HandleGet)
		r.Delete("/api/cart", h.Cart.HandleClear)
		r.Post("/api/cart/items", h.Cart.HandleAddItem)
		r.Put("/api/cart/items/{productID}", h.Cart.HandleUpdateQuantity)
		r.Delete("/api/cart/items/{productID}", h.Cart.HandleRemoveItem)

		r.Get("/api/profile", h.Users.HandleGetProfile)
		r.Put("/api/profile", h.Users.HandleUpdateProfile)
	})

	return mux
}
