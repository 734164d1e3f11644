package adaptor

import (
	"net/http"

	"bilemo-api/internal/dto/request"
	"bilemo-api/internal/usecase"
	"bilemo-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PhoneHandler struct {
	service    usecase.PhoneService
	pagination utils.PaginationConfig
	log        *zap.Logger
}

func NewPhoneHandler(service usecase.PhoneService, pagination utils.PaginationConfig, log *zap.Logger) *PhoneHandler {
	return &PhoneHandler{
		service:    service,
		pagination: pagination,
		log:        log.With(zap.String("handler", "phone")),
	}
}

// GetPhones handles GET /api/phones
func (h *PhoneHandler) GetPhones(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetPhones(r.Context(), principal, parsePagination(r, h.pagination))
	if err != nil {
		writeServiceError(w, h.log, err, "get phones")
		return
	}

	utils.ResponsePaginated(w, "success", page.Data, page.Pagination)
}

// GetPhoneByID handles GET /api/phones/{id}
func (h *PhoneHandler) GetPhoneByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	phone, err := h.service.GetPhoneByID(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get phone by ID")
		return
	}

	utils.ResponseSuccess(w, "Phone retrieved successfully", phone)
}

// CreatePhone handles POST /api/phones (admin)
func (h *PhoneHandler) CreatePhone(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req request.PhoneRequest
	if !decodeBody(w, r, &req) || !validBody(w, req) {
		return
	}

	phone, err := h.service.CreatePhone(r.Context(), principal, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create phone")
		return
	}

	utils.ResponseCreated(w, "Phone created successfully", phone)
}

// UpdatePhone handles PUT /api/phones/{id} (admin)
func (h *PhoneHandler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req request.PhoneUpdateRequest
	if !decodeBody(w, r, &req) || !validBody(w, req) {
		return
	}

	phone, err := h.service.UpdatePhone(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update phone")
		return
	}

	utils.ResponseSuccess(w, "Phone updated successfully", phone)
}

// DeletePhone handles DELETE /api/phones/{id} (admin)
func (h *PhoneHandler) DeletePhone(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePhone(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.log, err, "delete phone")
		return
	}

	utils.ResponseNoContent(w)
}
