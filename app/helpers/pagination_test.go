package helpers

import (
	"net/http/httptest"
	"testing"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int64
		wantPage   int
		wantPages  int
		wantOffset int
		hasPrev    bool
		hasNext    bool
	}{
		{"first of three", 1, 7, 20, 1, 3, 0, false, true},
		{"middle page", 2, 7, 20, 2, 3, 7, true, true},
		{"last page", 3, 7, 20, 3, 3, 14, true, false},
		{"page clamped high", 99, 7, 20, 3, 3, 14, true, false},
		{"page clamped low", 0, 7, 20, 1, 3, 0, false, true},
		{"no rows still one page", 1, 7, 0, 1, 1, 0, false, false},
		{"exact multiple", 2, 10, 20, 2, 2, 10, true, false},
		{"per-page floor of one", 1, 0, 5, 1, 5, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.total)
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
			if p.HasPrev != tt.hasPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.hasPrev)
			}
			if p.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.hasNext)
			}
		})
	}
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/dashboard?page=3", 3},
		{"/dashboard?page=0", 1},
		{"/dashboard?page=-2", 1},
		{"/dashboard?page=abc", 1},
		{"/dashboard", 1},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := PageParam(r, "page"); got != tt.want {
			t.Errorf("PageParam(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}
