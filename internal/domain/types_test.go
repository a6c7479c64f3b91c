package domain

import (
	"math"
	"testing"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		pageSize, total, want int
	}{
		{3, 0, 0},
		{3, 3, 1},
		{3, 4, 2},
		{0, 4, 0},
		{math.MaxInt, 4, 1},
		{math.MaxInt - 1, math.MaxInt, 2},
	}
	for _, tc := range cases {
		if got := NewPagination(0, tc.pageSize, tc.total).TotalPages; got != tc.want {
			t.Fatalf("NewPagination(size=%d, total=%d).TotalPages = %d want %d", tc.pageSize, tc.total, got, tc.want)
		}
	}
}
