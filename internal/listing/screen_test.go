package listing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assetRow struct {
	ID       int64
	Name     string
	Location string
}

func assetScreen() Screen[assetRow] {
	return Screen[assetRow]{
		Columns: []Column[assetRow]{
			{Key: "name", Label: "Name", Value: func(a assetRow) any { return a.Name }},
			{Key: "location", Label: "Location", Value: func(a assetRow) any { return a.Location }},
		},
		PageSize: 10,
		RowID:    func(a assetRow) string { return strconv.FormatInt(a.ID, 10) },
	}
}

func assetRows(n int) []assetRow {
	rows := make([]assetRow, n)
	for i := range rows {
		loc := "Block A"
		if i%2 == 1 {
			loc = "Block B"
		}
		rows[i] = assetRow{ID: int64(i + 1), Name: "Asset " + strconv.Itoa(i+1), Location: loc}
	}
	return rows
}

func TestScreenBuildComposesFilterAndPage(t *testing.T) {
	screen := assetScreen()
	view := screen.Build(assetRows(12), Query{Tab: "Assets", Filters: FilterState{}, Page: 2})

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "11", view.Rows[0].ID)
	assert.Equal(t, []string{"Asset 11", "Block A"}, view.Rows[0].Cells)
	assert.Equal(t, 2, view.Page.TotalPages)
	assert.Equal(t, "?tab=Assets", view.Page.PrevURL)
	assert.Empty(t, view.Page.NextURL)
	require.Len(t, view.Page.Links, 2)
	assert.True(t, view.Page.Links[1].Current)
	assert.False(t, view.Empty)
}

func TestScreenBuildFiltersBeforePaging(t *testing.T) {
	screen := assetScreen()
	q := Query{Filters: FilterState{"location": "block b"}, Page: 2, SearchOpen: true}
	view := screen.Build(assetRows(12), q)

	assert.Equal(t, 6, view.Page.Total)
	assert.Equal(t, 1, view.Page.Number)
	assert.True(t, view.Page.Clamped)
	assert.Len(t, view.Rows, 6)
	assert.Equal(t, "block b", view.Headers[1].Filter)
	assert.True(t, view.SearchOpen)
	assert.Equal(t, "?", view.CloseSearch)
}

func TestScreenBuildEmptyState(t *testing.T) {
	screen := assetScreen()
	view := screen.Build(assetRows(3), Query{Filters: FilterState{"name": "zzz"}, Page: 1})
	assert.True(t, view.Empty)
	assert.Equal(t, EmptyMessage, view.EmptyMessage)
	assert.Equal(t, 1, view.Page.TotalPages)

	screen.EmptyMessage = "No assets yet"
	view = screen.Build(nil, Query{Page: 1})
	assert.Equal(t, "No assets yet", view.EmptyMessage)
}
