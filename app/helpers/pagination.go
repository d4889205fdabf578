package helpers

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// NewPagination clamps page into [1, totalPages] and precomputes the
// navigation fields templates need.
func NewPagination(page, perPage int, total int64) Pagination {
	if perPage < 1 {
		perPage = 1
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	p.PrevPage = page - 1
	p.NextPage = page + 1
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageParam reads a page number from the query string, defaulting to 1.
func PageParam(r *http.Request, name string) int {
	page, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
