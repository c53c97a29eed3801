package shared

import (
	"net/http/httptest"
	"testing"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	if p.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", p.TotalPages)
	}
	if p.Page != 2 || p.PerPage != 20 || p.Total != 45 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	p = NewPagination(0, 0, 0)
	if p.Page != 1 || p.PerPage != 20 || p.TotalPages != 0 {
		t.Fatalf("defaults not applied: %+v", p)
	}
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/customers?page=3&per_page=50", nil)
	page, perPage := PageParams(r)
	if page != 3 || perPage != 50 {
		t.Fatalf("got page=%d per_page=%d", page, perPage)
	}

	r = httptest.NewRequest("GET", "/api/customers?page=-1&per_page=9999", nil)
	page, perPage = PageParams(r)
	if page != 1 || perPage != 20 {
		t.Fatalf("bounds not applied: page=%d per_page=%d", page, perPage)
	}

	if Offset(3, 50) != 100 {
		t.Fatalf("offset = %d, want 100", Offset(3, 50))
	}
}
