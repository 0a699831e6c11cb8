package pagination

import (
	"errors"
	"fmt"
)

// Common validation errors.
var (
	ErrInvalidPage        = errors.New("page must be >= 1")
	ErrPageSizeOutOfRange = fmt.Errorf("%w: must be between %d and %d", ErrInvalidPageSize, MinPageSize, MaxPageSize)
)

// Params holds the page selection flags of the CLI.
type Params struct {
	// Page is the 1-based page to show.
	Page int

	// PageSize is the number of items per page.
	PageSize int
}

// NewParams creates Params pointing at the first page with the default size.
func NewParams() *Params {
	return &Params{
		Page:     FirstPage,
		PageSize: DefaultPageSize,
	}
}

// Validate checks that both values are in range.
// Whether Page exists for a given list is only known after loading; that
// check belongs to State.GoToPage.
func (p Params) Validate() error {
	if p.Page < FirstPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrPageSizeOutOfRange, p.PageSize)
	}
	return nil
}

// Offset returns the index of the first item on Page.
func (p Params) Offset() int {
	if p.Page < FirstPage {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
