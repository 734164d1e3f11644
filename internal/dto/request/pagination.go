package request

import (
	"fmt"

	"bilemo-api/pkg/utils"
)

// DefaultPerPage applies when the request was built without a limit.
const DefaultPerPage = 10

// PaginatedRequest is built by the handlers, which clamp PerPage to the
// configured maximum before it gets here.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"limit" validate:"min=1"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	return p.PerPage
}

// CacheKey builds the list cache key: name + page + "-" + limit.
func (p PaginatedRequest) CacheKey(name string) string {
	return fmt.Sprintf("%s%d-%d", name, p.Page, p.Limit())
}
