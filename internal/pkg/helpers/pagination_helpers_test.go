package helpers

import (
	"testing"
	"time"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 20, wantOffset: 40, wantLimit: 20},
		{name: "zero page clamps to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page clamps to first", page: -5, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size uses default", page: 2, size: 0, wantOffset: 10, wantLimit: DefaultPageSize},
		{name: "oversized page size uses default", page: 1, size: 500, wantOffset: 0, wantLimit: DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name        string
		totalItems  int64
		page        int
		size        int
		wantPage    int
		wantPages   int
	}{
		{name: "exact pages", totalItems: 40, page: 1, size: 10, wantPage: 1, wantPages: 4},
		{name: "partial last page", totalItems: 41, page: 1, size: 10, wantPage: 1, wantPages: 5},
		{name: "empty list", totalItems: 0, page: 1, size: 10, wantPage: 1, wantPages: 1},
		{name: "page beyond range clamps", totalItems: 15, page: 9, size: 10, wantPage: 2, wantPages: 2},
		{name: "invalid size uses default", totalItems: 25, page: 1, size: 0, wantPage: 1, wantPages: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.size)
			if info.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", info.CurrentPage, tt.wantPage)
			}
			if info.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantPages)
			}
			if info.TotalItems != tt.totalItems {
				t.Errorf("TotalItems = %d, want %d", info.TotalItems, tt.totalItems)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("ParseDuration(\"90m\") = %v, want %v", got, 90*time.Minute)
	}
	if got := ParseDuration("not-a-duration", time.Hour); got != time.Hour {
		t.Errorf("ParseDuration fallback = %v, want %v", got, time.Hour)
	}
	if got := ParseDuration("", 30*time.Second); got != 30*time.Second {
		t.Errorf("ParseDuration empty fallback = %v, want %v", got, 30*time.Second)
	}
}
