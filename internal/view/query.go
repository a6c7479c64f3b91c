package view

import "strings"

// Direction is the sort polarity.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 3

// ParseDirection reads "desc" (any case) as Desc and anything else as Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// QueryState is the caller-owned snapshot of search, sort and page settings.
// Derive never changes it; the With* helpers return modified copies.
type QueryState struct {
	Search    string
	SortKey   string
	Direction Direction
	Page      int
	PageSize  int
}

// DefaultState matches the initial dashboard table: name ascending, first page.
func DefaultState() QueryState {
	return QueryState{
		SortKey:   FieldName,
		Direction: Asc,
		PageSize:  DefaultPageSize,
	}
}

// ToggleSort applies a column header click. Clicking the current key flips the
// direction; clicking another key sorts it ascending. The page is kept.
func (q QueryState) ToggleSort(key string) QueryState {
	if q.SortKey == key {
		q.Direction = q.Direction.Toggle()
	} else {
		q.SortKey = key
		q.Direction = Asc
	}
	return q
}

// WithSearch sets the search text and goes back to the first page.
func (q QueryState) WithSearch(text string) QueryState {
	q.Search = text
	q.Page = 0
	return q
}

// WithPageSize sets the page size and goes back to the first page.
func (q QueryState) WithPageSize(n int) QueryState {
	q.PageSize = n
	q.Page = 0
	return q
}

func (q QueryState) WithPage(n int) QueryState {
	q.Page = n
	return q
}

// Normalized clamps a negative page to 0 and replaces a non-positive page size
// with DefaultPageSize. An empty direction reads as Asc.
func (q QueryState) Normalized() QueryState {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Direction != Desc {
		q.Direction = Asc
	}
	return q
}
