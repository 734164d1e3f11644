package wire

import (
	"bilemo-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures the routes a customer uses to manage its own users
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetUsers)          // GET /api/users?page=1&limit=10
		r.Post("/", userHandler.CreateUser)       // POST /api/users
		r.Get("/{id}", userHandler.GetUserByID)   // GET /api/users/{id}
		r.Put("/{id}", userHandler.UpdateUser)    // PUT /api/users/{id}
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/users/{id}
	})
}
