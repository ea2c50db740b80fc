package paging

import (
	"slices"
	"testing"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPage(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		start     int
		size      int
		wantFirst int
		wantLen   int
		want      Range
	}{
		{
			name:  "no results",
			total: 0,
			start: 1,
			size:  10,
			want:  Range{PrevStart: 1},
		},
		{
			name:      "first page full",
			total:     25,
			start:     1,
			size:      10,
			wantFirst: 1,
			wantLen:   10,
			want:      Range{Start: 1, End: 10, Total: 25, PrevStart: 1, NextStart: 11},
		},
		{
			name:      "middle page",
			total:     25,
			start:     11,
			size:      10,
			wantFirst: 11,
			wantLen:   10,
			want:      Range{Start: 11, End: 20, Total: 25, PrevStart: 1, NextStart: 21},
		},
		{
			name:      "last page partial",
			total:     25,
			start:     21,
			size:      10,
			wantFirst: 21,
			wantLen:   5,
			want:      Range{Start: 21, End: 25, Total: 25, PrevStart: 11},
		},
		{
			name:      "start below one",
			total:     3,
			start:     -4,
			size:      10,
			wantFirst: 1,
			wantLen:   3,
			want:      Range{Start: 1, End: 3, Total: 3, PrevStart: 1},
		},
		{
			name:      "default size",
			total:     PageSize + 5,
			start:     1,
			size:      0,
			wantFirst: 1,
			wantLen:   PageSize,
			want:      Range{Start: 1, End: PageSize, Total: PageSize + 5, PrevStart: 1, NextStart: PageSize + 1},
		},
		{
			name:  "past the end",
			total: 5,
			start: 30,
			size:  10,
			want:  Range{Total: 5, PrevStart: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, got := Page(numbers(tt.total), tt.start, tt.size)
			if got != tt.want {
				t.Errorf("Page range = %+v, want %+v", got, tt.want)
			}
			if len(page) != tt.wantLen {
				t.Fatalf("len(page) = %d, want %d", len(page), tt.wantLen)
			}
			if tt.wantLen > 0 && page[0] != tt.wantFirst {
				t.Errorf("page[0] = %d, want %d", page[0], tt.wantFirst)
			}
			if got.HasNext() != (tt.want.NextStart > 0) {
				t.Errorf("HasNext = %v", got.HasNext())
			}
		})
	}
}

func TestPageWindow(t *testing.T) {
	rows := numbers(5)
	page, _ := Page(rows, 2, 2)
	if !slices.Equal(page, []int{2, 3}) {
		t.Errorf("page = %v, want [2 3]", page)
	}
}
