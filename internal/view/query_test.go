package view

import (
	"reflect"
	"testing"
)

func TestToggleSortSameKeyFlipsDirection(t *testing.T) {
	q := DefaultState().WithPage(4)

	q = q.ToggleSort(FieldName)
	if q.Direction != Desc || q.SortKey != FieldName || q.Page != 4 {
		t.Fatalf("first toggle: got %+v", q)
	}
	q = q.ToggleSort(FieldName)
	if q.Direction != Asc {
		t.Fatalf("second toggle: got %+v", q)
	}
}

func TestToggleSortNewKeyResetsToAscending(t *testing.T) {
	q := DefaultState().ToggleSort(FieldName)
	if q.Direction != Desc {
		t.Fatalf("setup: %+v", q)
	}

	q = q.WithPage(2).ToggleSort(FieldEmail)
	if q.SortKey != FieldEmail || q.Direction != Asc || q.Page != 2 {
		t.Fatalf("got %+v", q)
	}
}

func TestSearchAndPageSizeResetPage(t *testing.T) {
	q := DefaultState().WithPage(3).WithSearch("bob")
	if q.Page != 0 || q.Search != "bob" {
		t.Fatalf("WithSearch: %+v", q)
	}
	q = q.WithPage(2).WithPageSize(25)
	if q.Page != 0 || q.PageSize != 25 {
		t.Fatalf("WithPageSize: %+v", q)
	}
}

func TestNormalized(t *testing.T) {
	got := QueryState{Page: -1, PageSize: -5, Direction: "sideways"}.Normalized()
	want := QueryState{Page: 0, PageSize: DefaultPageSize, Direction: Asc}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{"desc": Desc, " DESC ": Desc, "asc": Asc, "": Asc, "down": Asc}
	for in, want := range cases {
		if got := ParseDirection(in); got != want {
			t.Fatalf("ParseDirection(%q) = %q want %q", in, got, want)
		}
	}
}

func TestSchemaFieldSets(t *testing.T) {
	if got := Users.SortableFields(); !reflect.DeepEqual(got, []string{FieldName, FieldEmail, FieldCompany}) {
		t.Fatalf("sortable: %v", got)
	}
	if got := Users.SearchableFields(); !reflect.DeepEqual(got, []string{FieldName, FieldEmail, FieldPhone, FieldCompany}) {
		t.Fatalf("searchable: %v", got)
	}
	if Users.IsSortable(FieldPhone) {
		t.Fatalf("phone must not be sortable")
	}
}
