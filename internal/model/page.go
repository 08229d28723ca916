package model

import (
	"math"

	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageParams is a 1-based page request.
type PageParams struct {
	Page  int
	Limit int
}

func NewPageParams(page, limit *int) PageParams {
	return PageParams{
		Page:  ptr.Or(page, DefaultPage),
		Limit: ptr.Or(limit, DefaultLimit),
	}
}

// Valid reports whether both values are positive and the page offset fits in an int.
func (p PageParams) Valid() bool {
	return p.Page >= 1 && p.Limit >= 1 && p.Page-1 <= math.MaxInt/p.Limit
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total / limit).
func (p PageParams) TotalPages(total int) int {
	if p.Limit < 1 || total <= 0 {
		return 0
	}
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return pages
}
