package adaptor

import (
	"net/http"

	"bilemo-api/internal/dto/request"
	"bilemo-api/internal/usecase"
	"bilemo-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service    usecase.CustomerService
	pagination utils.PaginationConfig
	log        *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, pagination utils.PaginationConfig, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:    service,
		pagination: pagination,
		log:        log.With(zap.String("handler", "customer")),
	}
}

// GetCustomers handles GET /api/customers
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	req := parsePagination(r, h.pagination)

	page, err := h.service.GetCustomers(r.Context(), principal, req)
	if err != nil {
		writeServiceError(w, h.log, err, "get customers")
		return
	}

	utils.ResponsePaginated(w, "success", page.Data, page.Pagination)
}

// GetCustomerByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomerByID(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get customer by ID")
		return
	}

	utils.ResponseSuccess(w, "Customer retrieved successfully", customer)
}

// CreateCustomer handles POST /api/customers (admin)
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req request.CustomerRequest
	if !decodeBody(w, r, &req) || !validBody(w, req) {
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), principal, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "Customer created successfully", customer)
}

// UpdateCustomer handles PUT and PATCH /api/customers/{id} (admin)
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req request.CustomerUpdateRequest
	if !decodeBody(w, r, &req) || !validBody(w, req) {
		return
	}

	if err := h.service.UpdateCustomer(r.Context(), principal, chi.URLParam(r, "id"), &req); err != nil {
		writeServiceError(w, h.log, err, "update customer")
		return
	}

	utils.ResponseNoContent(w)
}

// DeleteCustomer handles DELETE /api/customers/{id} (admin)
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete customer")
		return
	}

	utils.ResponseNoContent(w)
}
