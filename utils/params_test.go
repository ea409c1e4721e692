package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/orders", nil)
	opts := ParseQueryOptions(r)
	if opts.Page != 1 || opts.Limit != 10 || opts.Status != "" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	r = httptest.NewRequest("GET", "/api/orders?page=3&limit=5&status=shipped", nil)
	opts = ParseQueryOptions(r)
	if opts.Page != 3 || opts.Limit != 5 || opts.Status != "shipped" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	// Garbage and non-positive values fall back to defaults.
	r = httptest.NewRequest("GET", "/api/orders?page=-1&limit=abc", nil)
	opts = ParseQueryOptions(r)
	if opts.Page != 1 || opts.Limit != 10 {
		t.Fatalf("unexpected fallback: %+v", opts)
	}
}

func TestPaginate(t *testing.T) {
	p := Paginate(QueryOptions{Page: 1, Limit: 10}, 25)
	if p.TotalPages != 3 || !p.HasNext || p.HasPrev {
		t.Fatalf("page 1 of 25/10: %+v", p)
	}

	p = Paginate(QueryOptions{Page: 3, Limit: 10}, 25)
	if p.HasNext || !p.HasPrev || p.CurrentPage != 3 {
		t.Fatalf("page 3 of 25/10: %+v", p)
	}

	p = Paginate(QueryOptions{Page: 1, Limit: 10}, 0)
	if p.TotalPages != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("empty set: %+v", p)
	}
}
