package listing

// EmptyMessage is the default text for a page without rows.
const EmptyMessage = "No data found"

// Screen composes filtering and pagination for one record type.
type Screen[T any] struct {
	Columns      []Column[T]
	PageSize     int
	RowID        func(T) string
	EmptyMessage string
}

// ColumnKeys lists the searchable column keys.
func (s Screen[T]) ColumnKeys() []string {
	keys := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		keys[i] = c.Key
	}
	return keys
}

// HeaderCell is one table header plus its current filter text.
type HeaderCell struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Filter string `json:"filter,omitempty"`
}

// Row is one rendered table row.
type Row struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
}

// PageLink is one entry of a page-number bar.
type PageLink struct {
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Current bool   `json:"current"`
}

// PageInfo is the non-generic page metadata for templates and JSON.
type PageInfo struct {
	Number     int        `json:"number"`
	TotalPages int        `json:"total_pages"`
	Total      int        `json:"total"`
	From       int        `json:"from"`
	To         int        `json:"to"`
	Clamped    bool       `json:"clamped"`
	PrevURL    string     `json:"prev_url,omitempty"`
	NextURL    string     `json:"next_url,omitempty"`
	Links      []PageLink `json:"links"`
}

// View is a composed, render-ready page of a list screen.
type View struct {
	Headers      []HeaderCell `json:"headers"`
	Rows         []Row        `json:"rows"`
	Page         PageInfo     `json:"page"`
	Empty        bool         `json:"empty"`
	EmptyMessage string       `json:"empty_message,omitempty"`
	SearchOpen   bool         `json:"search_open"`
	OpenSearch   string       `json:"-"`
	CloseSearch  string       `json:"-"`
}

// Build filters source with q.Filters, slices out q.Page and renders cells.
func (s Screen[T]) Build(source []T, q Query) View {
	filtered := ApplyFilters(source, s.Columns, q.Filters)
	page := Paginate(filtered, s.PageSize, q.Page)
	q.Page = page.Number

	view := View{
		Headers:     make([]HeaderCell, len(s.Columns)),
		Rows:        make([]Row, 0, len(page.Items)),
		SearchOpen:  q.SearchOpen,
		OpenSearch:  q.OpenSearchURL(),
		CloseSearch: q.CloseSearchURL(),
	}
	for i, c := range s.Columns {
		view.Headers[i] = HeaderCell{Key: c.Key, Label: c.Label, Filter: q.Filters.Get(c.Key)}
	}
	for _, item := range page.Items {
		row := Row{Cells: make([]string, len(s.Columns))}
		if s.RowID != nil {
			row.ID = s.RowID(item)
		}
		for i, c := range s.Columns {
			row.Cells[i] = c.Cell(item)
		}
		view.Rows = append(view.Rows, row)
	}

	view.Page = PageInfo{
		Number:     page.Number,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		From:       page.From(),
		To:         page.To(),
		Clamped:    page.Clamped,
		Links:      make([]PageLink, 0, page.TotalPages),
	}
	if page.HasPrev() {
		view.Page.PrevURL = q.PageURL(page.Number - 1)
	}
	if page.HasNext() {
		view.Page.NextURL = q.PageURL(page.Number + 1)
	}
	for _, n := range page.Numbers() {
		view.Page.Links = append(view.Page.Links, PageLink{Number: n, URL: q.PageURL(n), Current: n == page.Number})
	}

	if len(view.Rows) == 0 {
		view.Empty = true
		view.EmptyMessage = s.EmptyMessage
		if view.EmptyMessage == "" {
			view.EmptyMessage = EmptyMessage
		}
	}
	return view
}
