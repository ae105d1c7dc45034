package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)
	p := ParsePagination(r, 50, 200)
	if p.Limit != 50 || p.Offset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", p.Limit, p.Offset)
	}
}

func TestParsePaginationClampsAndFallsBack(t *testing.T) {
	cases := []struct {
		query  string
		limit  int
		offset int
	}{
		{"limit=25&offset=10", 25, 10},
		{"limit=9999", 200, 0},
		{"limit=0", 50, 0},
		{"limit=-5&offset=-3", 50, 0},
		{"limit=abc&offset=xyz", 50, 0},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/items?"+tc.query, nil)
		p := ParsePagination(r, 50, 200)
		if p.Limit != tc.limit || p.Offset != tc.offset {
			t.Fatalf("%s: expected %d/%d, got %d/%d", tc.query, tc.limit, tc.offset, p.Limit, p.Offset)
		}
	}
}
