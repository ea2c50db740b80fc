// internal/app/system/paging/paging.go
package paging

// PageSize is the default number of rows shown in paged lists.
const PageSize = 50

// Range holds computed display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	Total     int
	PrevStart int // start value for the previous page
	NextStart int // start value for the next page; 0 when this is the last
}

// HasNext reports whether rows remain after this page.
func (r Range) HasNext() bool { return r.NextStart > 0 }

// Page returns the rows of the page beginning at the 1-based index start.
// A start below 1 is treated as 1; size <= 0 means PageSize.
func Page[T any](rows []T, start, size int) ([]T, Range) {
	if size <= 0 {
		size = PageSize
	}
	if start < 1 {
		start = 1
	}
	total := len(rows)
	if start > total {
		return nil, Range{Total: total, PrevStart: prevStart(start, size, total)}
	}
	end := min(start-1+size, total)
	page := rows[start-1 : end]
	r := Range{
		Start:     start,
		End:       end,
		Total:     total,
		PrevStart: prevStart(start, size, total),
	}
	if end < total {
		r.NextStart = end + 1
	}
	return page, r
}

func prevStart(start, size, total int) int {
	p := min(start, total+1) - size
	if p < 1 {
		p = 1
	}
	return p
}
