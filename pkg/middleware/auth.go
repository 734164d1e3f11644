package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/usecase"
	"bilemo-api/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the customer it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Customer, error)
}

// AuthJWT validates the bearer token and stores the principal in the request context
func AuthJWT(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthorized) {
					logger.Warn("Rejected bearer token",
						zap.String("path", r.URL.Path),
						zap.Error(err))
					utils.ResponseUnauthorized(w, "Invalid or expired token")
					return
				}

				logger.Error("Failed to authenticate request", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetPrincipalContext(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole answers 403 unless the principal holds role. Must run after AuthJWT.
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !principal.HasRole(role) {
				logger.Warn("Access denied: missing role",
					zap.String("customer_id", principal.ID.String()),
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
