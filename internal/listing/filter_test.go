package listing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusRow struct {
	ID    int
	Label string
}

type stockRow struct {
	Name     string
	Quantity int
	Active   bool
	Vendor   *string
}

var statusColumns = []Column[statusRow]{
	{Key: "label", Label: "Label", Value: func(r statusRow) any { return r.Label }},
}

var stockColumns = []Column[stockRow]{
	{Key: "name", Label: "Name", Value: func(r stockRow) any { return r.Name }},
	{Key: "quantity", Label: "Qty", Value: func(r stockRow) any { return r.Quantity }},
	{Key: "active", Label: "Active", Value: func(r stockRow) any { return r.Active }},
	{Key: "vendor", Label: "Vendor", Value: func(r stockRow) any { return r.Vendor }},
	{Key: "notes", Label: "Notes"},
}

func strPtr(s string) *string { return &s }

func foldForTest(s string) string { return strings.ToLower(s) }

func stockRows() []stockRow {
	return []stockRow{
		{Name: "Copper Wire", Quantity: 2, Active: true, Vendor: strPtr("Acme")},
		{Name: "Fuse 10A", Quantity: 12, Active: false},
		{Name: "Wire Clamp", Quantity: 20, Active: true, Vendor: strPtr("Volt Co")},
		{Name: "Breaker", Quantity: 2, Active: true},
	}
}

func names(rows []stockRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestApplyFiltersIncidentStatusScenario(t *testing.T) {
	rows := []statusRow{{1, "Pending"}, {2, "Completed"}, {3, "On Hold"}}
	got := ApplyFilters(rows, statusColumns, FilterState{"label": "on"})
	require.Len(t, got, 1)
	assert.Equal(t, "On Hold", got[0].Label)
}

func TestApplyFiltersStringifiesScalars(t *testing.T) {
	rows := stockRows()

	got := ApplyFilters(rows, stockColumns, FilterState{"quantity": "2"})
	assert.Equal(t, []string{"Copper Wire", "Fuse 10A", "Wire Clamp", "Breaker"}, names(got))

	got = ApplyFilters(rows, stockColumns, FilterState{"quantity": "20"})
	assert.Equal(t, []string{"Wire Clamp"}, names(got))

	got = ApplyFilters(rows, stockColumns, FilterState{"active": "FALSE"})
	assert.Equal(t, []string{"Fuse 10A"}, names(got))
}

func TestApplyFiltersMissingFieldsReadAsEmpty(t *testing.T) {
	rows := stockRows()

	got := ApplyFilters(rows, stockColumns, FilterState{"vendor": "co"})
	assert.Equal(t, []string{"Wire Clamp"}, names(got))

	assert.Empty(t, ApplyFilters(rows, stockColumns, FilterState{"notes": "x"}))
	assert.Empty(t, ApplyFilters(rows, stockColumns, FilterState{"unknown": "x"}))
	assert.Len(t, ApplyFilters(rows, stockColumns, FilterState{"notes": ""}), len(rows))
}

func TestApplyFiltersAndsColumns(t *testing.T) {
	got := ApplyFilters(stockRows(), stockColumns, FilterState{"name": "wire", "active": "true", "quantity": "2"})
	assert.Equal(t, []string{"Copper Wire", "Wire Clamp"}, names(got))
}

func TestApplyFiltersIsOrderedSubsequence(t *testing.T) {
	rows := stockRows()
	states := []FilterState{
		{},
		{"name": "r"},
		{"name": "E", "quantity": "1"},
		{"vendor": "a"},
		{"active": "t", "name": "w"},
	}
	for _, state := range states {
		got := ApplyFilters(rows, stockColumns, state)
		j := 0
		for _, row := range got {
			for j < len(rows) && rows[j] != row {
				j++
			}
			require.Less(t, j, len(rows), "result is not a subsequence for %v", state)
			j++
		}
		for _, row := range got {
			for _, p := range state.Active() {
				col := stockColumns[0]
				for _, c := range stockColumns {
					if c.Key == p.Column {
						col = c
					}
				}
				assert.Contains(t, foldForTest(col.Cell(row)), foldForTest(p.Needle))
			}
		}
	}
}

func TestApplyFiltersIdentityAndIdempotence(t *testing.T) {
	rows := stockRows()
	same := ApplyFilters(rows, stockColumns, FilterState{})
	if diff := cmp.Diff(rows, same); diff != "" {
		t.Fatalf("empty filter changed rows (-want +got):\n%s", diff)
	}

	state := FilterState{"name": "wire"}
	once := ApplyFilters(rows, stockColumns, state)
	twice := ApplyFilters(once, stockColumns, state)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("re-applying filters changed result (-want +got):\n%s", diff)
	}
}

func TestApplyFiltersDoesNotMutateSource(t *testing.T) {
	rows := stockRows()
	before := names(rows)
	got := ApplyFilters(rows, stockColumns, FilterState{})
	got[0].Name = "changed"
	ApplyFilters(rows, stockColumns, FilterState{"name": "fuse"})
	assert.Equal(t, before, names(rows))
}

func TestFilterStateFunctionalUpdates(t *testing.T) {
	base := FilterState{"name": "wire"}
	next := base.With("vendor", "acme")
	assert.Equal(t, FilterState{"name": "wire"}, base)
	assert.Equal(t, "acme", next.Get("vendor"))

	cleared := next.Without("name")
	assert.Equal(t, "wire", next.Get("name"))
	assert.Equal(t, "", cleared.Get("name"))

	assert.True(t, FilterState{"name": ""}.IsEmpty())
	assert.Equal(t, []Predicate{{Column: "a", Needle: "1"}, {Column: "b", Needle: "2"}}, FilterState{"b": "2", "a": "1"}.Active())
}

func TestStringify(t *testing.T) {
	var nilVendor *string
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "", Stringify(nilVendor))
	assert.Equal(t, "Acme", Stringify(strPtr("Acme")))
	assert.Equal(t, "2", Stringify(2))
	assert.Equal(t, "2.5", Stringify(2.5))
	assert.Equal(t, "true", Stringify(true))
}
