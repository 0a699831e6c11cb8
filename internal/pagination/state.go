package pagination

import "errors"

// Page size defaults. The portfolio ships two variants: three items per page
// for the dynamic list and five for the pre-rendered one.
const (
	DefaultPageSize   = 3
	AlternatePageSize = 5
	MinPageSize       = 1
	MaxPageSize       = 100
	FirstPage         = 1
)

// ErrInvalidPageSize is returned when a page size is not positive.
var ErrInvalidPageSize = errors.New("page size must be a positive integer")

// TotalPages returns max(1, ceil(itemCount/pageSize)).
// A non-positive pageSize is treated as a single page.
func TotalPages(itemCount, pageSize int) int {
	if pageSize <= 0 || itemCount <= 0 {
		return 1
	}
	pages := itemCount / pageSize
	if itemCount%pageSize > 0 {
		pages++
	}
	return pages
}

// State is an explicit page cursor over an ordered item list.
// The cursor is always within [1, TotalPages()].
type State[T any] struct {
	items       []T
	pageSize    int
	currentPage int
	totalPages  int
}

// Controls describes the navigation affordances for the current page.
type Controls struct {
	// PrevDisabled is true exactly on the first page.
	PrevDisabled bool
	// NextDisabled is true exactly on the last page.
	NextDisabled bool
	// Hidden is true when there is at most one page.
	Hidden bool
}

// New creates a State positioned on the first page. Items are copied so later
// changes to the caller's slice do not leak into the cursor.
func New[T any](items []T, pageSize int) (*State[T], error) {
	if pageSize < MinPageSize {
		return nil, ErrInvalidPageSize
	}

	s := &State[T]{pageSize: pageSize, currentPage: FirstPage}
	s.SetItems(items)
	return s, nil
}

// SetItems replaces the item list, recomputes the page count and clamps the
// cursor into range.
func (s *State[T]) SetItems(items []T) {
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.totalPages = TotalPages(len(s.items), s.pageSize)

	switch {
	case s.currentPage < FirstPage:
		s.currentPage = FirstPage
	case s.currentPage > s.totalPages:
		s.currentPage = s.totalPages
	}
}

// GoToPage moves the cursor to page and returns that page's items.
// When page is outside [1, TotalPages()] the state is left unchanged and
// ok is false.
func (s *State[T]) GoToPage(page int) (items []T, ok bool) {
	if page < FirstPage || page > s.totalPages {
		return nil, false
	}
	s.currentPage = page
	return s.pageItems(page), true
}

// Next is GoToPage(CurrentPage()+1).
func (s *State[T]) Next() ([]T, bool) {
	return s.GoToPage(s.currentPage + 1)
}

// Previous is GoToPage(CurrentPage()-1).
func (s *State[T]) Previous() ([]T, bool) {
	return s.GoToPage(s.currentPage - 1)
}

// Current returns the items on the current page without moving the cursor.
func (s *State[T]) Current() []T {
	return s.pageItems(s.currentPage)
}

// Bounds returns the half-open index range [start, end) covered by page.
func (s *State[T]) Bounds(page int) (start, end int) {
	start = (page - 1) * s.pageSize
	if start > len(s.items) {
		start = len(s.items)
	}
	end = start + s.pageSize
	if end > len(s.items) {
		end = len(s.items)
	}
	return start, end
}

func (s *State[T]) pageItems(page int) []T {
	start, end := s.Bounds(page)
	out := make([]T, end-start)
	copy(out, s.items[start:end])
	return out
}

// CurrentPage returns the 1-based cursor.
func (s *State[T]) CurrentPage() int {
	return s.currentPage
}

// TotalPages returns the number of pages (at least 1).
func (s *State[T]) TotalPages() int {
	return s.totalPages
}

// PageSize returns the page capacity.
func (s *State[T]) PageSize() int {
	return s.pageSize
}

// Len returns the number of items.
func (s *State[T]) Len() int {
	return len(s.items)
}

// Controls returns the navigation affordances for the current page.
func (s *State[T]) Controls() Controls {
	return Controls{
		PrevDisabled: s.currentPage == FirstPage,
		NextDisabled: s.currentPage == s.totalPages,
		Hidden:       s.totalPages <= 1,
	}
}

// Meta returns pagination metadata for the current page.
func (s *State[T]) Meta() Meta {
	return Meta{
		CurrentPage: s.currentPage,
		PageSize:    s.pageSize,
		TotalPages:  s.totalPages,
		TotalItems:  len(s.items),
		HasPrevious: s.currentPage > FirstPage,
		HasNext:     s.currentPage < s.totalPages,
	}
}
