package utils

import (
	"net/http"
	"strconv"
)

type QueryOptions struct {
	Page   int
	Limit  int
	Status string
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	return QueryOptions{
		Page:   page,
		Limit:  limit,
		Status: q.Get("status"),
	}
}

// Pagination is the page block returned alongside list responses.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// Paginate derives the page block for a result set of total documents.
func Paginate(opts QueryOptions, total int64) Pagination {
	totalPages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))
	return Pagination{
		CurrentPage: opts.Page,
		TotalPages:  totalPages,
		TotalOrders: total,
		HasNext:     int64(opts.Page*opts.Limit) < total,
		HasPrev:     opts.Page > 1,
	}
}
