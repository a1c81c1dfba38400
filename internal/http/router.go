package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every route of the storefront gateway. All four handlers
// share the same per-request timeout.
func NewRouter(products *ProductHandler, carts *CartHandler, checkouts *CheckoutHandler, admin *AdminHandler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{id}", products.Get)
			r.Get("/{id}/availability", products.Availability)
		})
		r.Get("/categories", products.Categories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{lineID}", carts.UpdateQuantity)
			r.Delete("/items/{lineID}", carts.RemoveItem)
			r.Delete("/", carts.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkouts.PlaceOrder)
			r.Post("/validate", checkouts.Validate)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", admin.Login)
			r.Get("/me", admin.Me)

			r.Post("/products", admin.CreateProduct)
			r.Put("/products/{id}", admin.UpdateProduct)
			r.Delete("/products/{id}", admin.DeleteProduct)

			r.Post("/categories", admin.CreateCategory)
			r.Put("/categories/{id}", admin.UpdateCategory)
			r.Delete("/categories/{id}", admin.DeleteCategory)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", admin.ListOrders)
				r.Get("/{orderID}", admin.GetOrder)
				r.Put("/{orderID}/status", admin.UpdateOrderStatus)
			})

			r.Post("/upload", admin.UploadImage)
		})
	})

	return r
}
