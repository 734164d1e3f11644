package request

import (
	"math"
	"testing"
)

func TestPaginatedRequestLimitKeepsHandlerValue(t *testing.T) {
	p := PaginatedRequest{Page: 1, PerPage: 250}
	if got := p.Limit(); got != 250 {
		t.Errorf("expected limit 250, got %d", got)
	}

	p = PaginatedRequest{Page: 1}
	if got := p.Limit(); got != DefaultPerPage {
		t.Errorf("expected default limit %d, got %d", DefaultPerPage, got)
	}
}

func TestPaginatedRequestOffset(t *testing.T) {
	tests := []struct {
		req  PaginatedRequest
		want int
	}{
		{PaginatedRequest{Page: 1, PerPage: 10}, 0},
		{PaginatedRequest{Page: 3, PerPage: 5}, 10},
		{PaginatedRequest{Page: 0, PerPage: 5}, 0},
		{PaginatedRequest{Page: 922337203685477590, PerPage: 10}, math.MaxInt},
	}

	for _, tt := range tests {
		if got := tt.req.Offset(); got != tt.want {
			t.Errorf("Offset() for page %d limit %d = %d, want %d", tt.req.Page, tt.req.PerPage, got, tt.want)
		}
	}
}

func TestPaginatedRequestCacheKey(t *testing.T) {
	p := PaginatedRequest{Page: 2, PerPage: 25}
	if got := p.CacheKey("getAllPhones-"); got != "getAllPhones-2-25" {
		t.Errorf("unexpected cache key %q", got)
	}
}
