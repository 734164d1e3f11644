package adaptor

import (
	"net/http"

	"bilemo-api/internal/dto/request"
	"bilemo-api/internal/usecase"
	"bilemo-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service    usecase.UserService
	pagination utils.PaginationConfig
	log        *zap.Logger
}

func NewUserHandler(service usecase.UserService, pagination utils.PaginationConfig, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:    service,
		pagination: pagination,
		log:        log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /api/users, scoped to the authenticated customer
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetUsers(r.Context(), principal, parsePagination(r, h.pagination))
	if err != nil {
		writeServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponsePaginated(w, "success", page.Data, page.Pagination)
}

// GetUserByID handles GET /api/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get user by ID")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req request.UserRequest
	if !decodeBody(w, r, &req) || !validBody(w, req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), principal, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req request.UserUpdateRequest
	if !decodeBody(w, r, &req) || !validBody(w, req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseNoContent(w)
}
