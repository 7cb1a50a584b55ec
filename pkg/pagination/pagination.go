package pagination

import "math"

// Params represents input parameters for page-based pagination
type Params struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// DefaultParams returns default pagination values
func DefaultParams() *Params {
	return &Params{
		Page:  1,
		Limit: 10,
	}
}

// Validate ensures pagination parameters are within valid ranges
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset calculates the offset for SQL queries
func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginatedResult is the wire shape every listing endpoint returns
type PaginatedResult[T any] struct {
	Items        []T   `json:"items"`
	TotalItems   int64 `json:"totalItems"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, params *Params, total int64) *PaginatedResult[T] {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:        items,
		TotalItems:   total,
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		ItemsPerPage: params.Limit,
	}
}
