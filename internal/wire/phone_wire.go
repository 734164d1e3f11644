package wire

import (
	"net/http"

	"bilemo-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePhone(r chi.Router, phoneHandler *adaptor.PhoneHandler, admin func(http.Handler) http.Handler) {
	r.Route("/api/phones", func(r chi.Router) {
		r.Get("/", phoneHandler.GetPhones)
		r.Get("/{id}", phoneHandler.GetPhoneByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", phoneHandler.CreatePhone)
			r.Put("/{id}", phoneHandler.UpdatePhone)
			r.Delete("/{id}", phoneHandler.DeletePhone)
		})
	})
}
