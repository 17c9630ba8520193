package dto

import "github.com/jsamuelsen/stackit/internal/domain"

// MaxPageSize is the maximum allowed items per page.
const MaxPageSize = 100

// PageRequest represents page-number pagination parameters.
type PageRequest struct {
	// Page is 1-based. Zero selects the first page.
	Page int `form:"page" json:"page" validate:"omitempty,gte=1"`

	// PageSize is the number of items per page. Zero uses the board default.
	PageSize int `form:"pageSize" json:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

// GetPage returns the page with defaults applied.
func (p *PageRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}

	return p.Page
}

// GetPageSize returns the page size clamped to MaxPageSize. Zero means
// the caller's default.
func (p *PageRequest) GetPageSize() int {
	return min(max(p.PageSize, 0), MaxPageSize)
}

// Pagination describes the page returned in a PageResponse.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

// NewPagination converts the domain pagination info.
func NewPagination(info domain.PaginationInfo) Pagination {
	return Pagination{
		CurrentPage:  info.CurrentPage,
		TotalPages:   info.TotalPages,
		ItemsPerPage: info.ItemsPerPage,
		TotalItems:   info.TotalItems,
	}
}

// PageResponse is a generic page-number paginated response.
type PageResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPageResponse maps items with fn and attaches the pagination info.
func NewPageResponse[S, T any](items []S, info domain.PaginationInfo, fn func(S) T) *PageResponse[T] {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return &PageResponse[T]{
		Items:      out,
		Pagination: NewPagination(info),
	}
}
