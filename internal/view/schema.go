// Package view derives the visible page of a record table from caller-owned
// query state: search filter, single-key sort and page slice.
package view

// Accessor reads one field of a record as text. Absent or null values read as "".
type Accessor[T any] func(T) string

// Column binds a field key to its accessor.
type Column[T any] struct {
	Key  string
	Text Accessor[T]
}

// Schema declares which fields of T can be sorted on and which are searched.
// The two sets are configured independently and may overlap.
type Schema[T any] struct {
	Sortable   []Column[T]
	Searchable []Column[T]
}

// SortableFields lists the sort keys in declaration order.
func (s Schema[T]) SortableFields() []string {
	return keys(s.Sortable)
}

// SearchableFields lists the searched fields in declaration order.
func (s Schema[T]) SearchableFields() []string {
	return keys(s.Searchable)
}

// IsSortable reports whether key names a declared sort field.
func (s Schema[T]) IsSortable(key string) bool {
	_, ok := s.sortAccessor(key)
	return ok
}

// Text returns the sort text of rec for key, or "" when key is not sortable.
func (s Schema[T]) Text(rec T, key string) string {
	fn, ok := s.sortAccessor(key)
	if !ok {
		return ""
	}
	return fn(rec)
}

func (s Schema[T]) sortAccessor(key string) (Accessor[T], bool) {
	for _, c := range s.Sortable {
		if c.Key == key {
			return c.Text, true
		}
	}
	return nil, false
}

func keys[T any](cols []Column[T]) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Key)
	}
	return out
}
