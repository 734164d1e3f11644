package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/dto/request"
	"bilemo-api/internal/usecase"
	"bilemo-api/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Customer *CustomerHandler
	Phone    *PhoneHandler
	User     *UserHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, health Pinger, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Customer: NewCustomerHandler(service.Customer, config.Pagination, log),
		Phone:    NewPhoneHandler(service.Phone, config.Pagination, log),
		User:     NewUserHandler(service.User, config.Pagination, log),
		Health:   NewHealthHandler(health, log),
	}
}

// requirePrincipal pulls the authenticated customer set by the auth middleware.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*entity.Customer, bool) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return nil, false
	}
	return principal, true
}

// decodeBody answers 400 "Invalid data" when the body is not JSON of the expected shape.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid data", nil)
		return false
	}
	return true
}

func validBody(w http.ResponseWriter, req any) bool {
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// parsePagination reads page and limit. Missing or non-integer values use the
// defaults, values below 1 become 1, limit is capped.
func parsePagination(r *http.Request, config utils.PaginationConfig) *request.PaginatedRequest {
	query := r.URL.Query()

	limit := utils.ParsePositiveInt(query.Get("limit"), config.DefaultLimit)
	if config.MaxLimit > 0 && limit > config.MaxLimit {
		limit = config.MaxLimit
	}

	return &request.PaginatedRequest{
		Page:    utils.ParsePositiveInt(query.Get("page"), 1),
		PerPage: limit,
	}
}

// writeServiceError maps service errors to status codes
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Resource not found")

	case errors.Is(err, usecase.ErrRelatedNotFound):
		log.Warn(operation+" failed - related entity not found", zap.Error(err))
		utils.ResponseBadRequest(w, "User not found", nil)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, "Resource already exists", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" denied", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
