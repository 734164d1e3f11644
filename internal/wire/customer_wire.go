package wire

import (
	"net/http"

	"bilemo-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCustomer expects r to be authenticated already
func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler, admin func(http.Handler) http.Handler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", customerHandler.GetCustomers)
		r.Get("/{id}", customerHandler.GetCustomerByID)

		// ==================== ADMIN ROUTES ====================
		r.With(admin).Post("/", customerHandler.CreateCustomer)
		r.With(admin).Put("/{id}", customerHandler.UpdateCustomer)
		r.With(admin).Patch("/{id}", customerHandler.UpdateCustomer)
		r.With(admin).Delete("/{id}", customerHandler.DeleteCustomer)
	})
}
