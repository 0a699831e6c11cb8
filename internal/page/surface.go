// Package page binds pagination state to a displayable surface. It provides a
// goquery-backed HTML document surface, a named-event dispatcher standing in
// for button clicks, and the two paginators: one that re-renders a loaded
// publication list page by page, and one that toggles pre-rendered markup.
package page

import (
	"html/template"

	"github.com/researchfolio/pubpager/internal/pagination"
)

// Surface is the set of display regions a paginator writes to.
type Surface interface {
	SetContent(html template.HTML)
	SetStats(html template.HTML)
	SetPageIndicator(current, total int)
	SetPrevDisabled(disabled bool)
	SetNextDisabled(disabled bool)
	SetPaginationVisible(visible bool)
}

// Navigator is the contract shared by both paginators.
type Navigator interface {
	GoToPage(page int) bool
	Next() bool
	Previous() bool
	Meta() pagination.Meta
}

// applyControls writes the indicator and button state for meta to s.
func applyControls(s Surface, meta pagination.Meta) {
	controls := meta.Controls()
	s.SetPaginationVisible(!controls.Hidden)
	s.SetPageIndicator(meta.CurrentPage, meta.TotalPages)
	s.SetPrevDisabled(controls.PrevDisabled)
	s.SetNextDisabled(controls.NextDisabled)
}
