package view

import (
	"slices"
	"strings"
)

// DerivedView is one page of the filtered and sorted collection.
type DerivedView[T any] struct {
	Records []T
	// Total counts every record that passed the search filter.
	Total int
}

// Derive filters records by state.Search, sorts them by state.SortKey and
// returns the page at state.Page. It never fails and never modifies records;
// malformed state is normalized first (see QueryState.Normalized).
func Derive[T any](schema Schema[T], records []T, state QueryState) DerivedView[T] {
	state = state.Normalized()

	matched := Filter(schema, records, state.Search)
	SortBy(schema, matched, state.SortKey, state.Direction)

	return DerivedView[T]{
		Records: Page(matched, state.Page, state.PageSize),
		Total:   len(matched),
	}
}

// Filter returns a new slice holding the records whose searchable fields
// contain the trimmed, case-folded query. A blank query keeps every record.
func Filter[T any](schema Schema[T], records []T, query string) []T {
	q := normalizeText(query)
	if q == "" {
		return slices.Clone(records)
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if Matches(schema, rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether any searchable field of rec contains q.
// q must already be normalized.
func Matches[T any](schema Schema[T], rec T, q string) bool {
	for _, c := range schema.Searchable {
		if strings.Contains(strings.ToLower(c.Text(rec)), q) {
			return true
		}
	}
	return false
}

type keyed[T any] struct {
	key string
	rec T
}

// SortBy sorts records in place by the case-folded text of key. The sort is
// stable, so ties keep their input order in both directions. An unknown key
// leaves records untouched.
func SortBy[T any](schema Schema[T], records []T, key string, dir Direction) {
	text, ok := schema.sortAccessor(key)
	if !ok || len(records) < 2 {
		return
	}

	rows := make([]keyed[T], len(records))
	for i, rec := range records {
		rows[i] = keyed[T]{key: strings.ToLower(text(rec)), rec: rec}
	}

	slices.SortStableFunc(rows, func(a, b keyed[T]) int {
		c := strings.Compare(a.key, b.key)
		if dir == Desc {
			return -c
		}
		return c
	})

	for i := range rows {
		records[i] = rows[i].rec
	}
}

// Page returns the window [page*size, page*size+size) of records. A window past
// the end is empty. The result shares storage with records but is capped so an
// append cannot overwrite the following page.
func Page[T any](records []T, page, size int) []T {
	n := len(records)
	if n == 0 || page < 0 || size <= 0 || page > (n-1)/size {
		return []T{}
	}
	start := page * size
	end := min(start+size, n)
	return records[start:end:end]
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
