package utils

import (
	"context"

	"bilemo-api/internal/data/entity"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
)

// SetPrincipalContext stores the authenticated customer for the request.
func SetPrincipalContext(ctx context.Context, principal *entity.Customer) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

func GetPrincipalFromContext(ctx context.Context) (*entity.Customer, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*entity.Customer)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
