package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names used by list screens.
const (
	TabParam          = "tab"
	PageParam         = "page"
	SearchParam       = "search"
	FilterParamPrefix = "f."
)

// Query is the list-screen state carried in a request URL.
type Query struct {
	Tab        string
	Filters    FilterState
	Page       int
	SearchOpen bool
}

// ParseQuery reads list state from values. Only filters for the given column
// keys are kept. A missing or malformed page means page 1, so a filter form
// submitted without a page param starts over from the first page.
func ParseQuery(values url.Values, columns []string) Query {
	known := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		known[c] = struct{}{}
	}

	q := Query{Tab: values.Get(TabParam), Filters: FilterState{}, Page: 1}
	for name, vals := range values {
		col, ok := strings.CutPrefix(name, FilterParamPrefix)
		if !ok || len(vals) == 0 {
			continue
		}
		if _, ok := known[col]; !ok {
			continue
		}
		if v := strings.TrimSpace(vals[0]); v != "" {
			q.Filters[col] = v
		}
	}
	if raw := values.Get(PageParam); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Page = n
		}
	}
	q.SearchOpen = values.Get(SearchParam) == "1" || !q.Filters.IsEmpty()
	return q
}

// Values encodes the query back into URL values.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Tab != "" {
		values.Set(TabParam, q.Tab)
	}
	if q.SearchOpen {
		values.Set(SearchParam, "1")
	}
	for _, p := range q.Filters.Active() {
		values.Set(FilterParamPrefix+p.Column, p.Needle)
	}
	if q.Page > 1 {
		values.Set(PageParam, strconv.Itoa(q.Page))
	}
	return values
}

// Encode returns the query in URL-encoded form, keys sorted.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// URL returns the query as a relative "?..." string.
func (q Query) URL() string {
	encoded := q.Encode()
	if encoded == "" {
		return "?"
	}
	return "?" + encoded
}

// WithFilter sets one column filter and resets to the first page.
func (q Query) WithFilter(column, value string) Query {
	q.Filters = q.Filters.With(column, value)
	q.Page = 1
	return q
}

// PageURL links to page n with the current filters.
func (q Query) PageURL(n int) string {
	q.Page = n
	return q.URL()
}

// OpenSearchURL shows the search row.
func (q Query) OpenSearchURL() string {
	q.SearchOpen = true
	return q.URL()
}

// CloseSearchURL hides the search row, dropping every filter.
func (q Query) CloseSearchURL() string {
	return Query{Tab: q.Tab, Page: 1}.URL()
}
