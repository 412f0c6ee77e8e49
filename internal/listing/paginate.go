package listing

// DefaultPageSize applies when a screen does not configure one.
const DefaultPageSize = 10

// PageState is the page position a screen keeps between requests. SetPage
// takes any integer; bounds are enforced when a Page is derived.
type PageState struct {
	Current int
	Size    int
}

// NewPageState starts at page 1.
func NewPageState(size int) PageState {
	if size <= 0 {
		size = DefaultPageSize
	}
	return PageState{Current: 1, Size: size}
}

// SetPage returns the state moved to page n.
func (s PageState) SetPage(n int) PageState {
	s.Current = n
	return s
}

// Reset returns the state moved back to page 1.
func (s PageState) Reset() PageState {
	return s.SetPage(1)
}

// Next advances one page, stopping at totalPages.
func (s PageState) Next(totalPages int) PageState {
	if s.Current >= totalPages {
		return s
	}
	return s.SetPage(s.Current + 1)
}

// Prev goes back one page, stopping at page 1.
func (s PageState) Prev() PageState {
	if s.Current <= 1 {
		return s
	}
	return s.SetPage(s.Current - 1)
}

// Page is one slice of a filtered list plus its position metadata.
type Page[T any] struct {
	Items      []T
	Number     int
	Requested  int
	Clamped    bool
	Size       int
	Total      int
	TotalPages int
}

// Paginate slices filtered into pages of pageSize and returns the page at
// currentPage, clamped into [1, TotalPages]. An empty list still has one page.
func Paginate[T any](filtered []T, pageSize, currentPage int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number := currentPage
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	items := make([]T, 0, end-start)
	items = append(items, filtered[start:end]...)

	return Page[T]{
		Items:      items,
		Number:     number,
		Requested:  currentPage,
		Clamped:    number != currentPage,
		Size:       pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// From is the 1-based index of the first row on the page, 0 when empty.
func (p Page[T]) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

// To is the 1-based index of the last row on the page, 0 when empty.
func (p Page[T]) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

// Numbers lists every page number for a page-number bar.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
