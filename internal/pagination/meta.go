package pagination

// Meta contains metadata about the current page.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// Controls derives the navigation affordances from the metadata.
func (m Meta) Controls() Controls {
	return Controls{
		PrevDisabled: !m.HasPrevious,
		NextDisabled: !m.HasNext,
		Hidden:       m.TotalPages <= 1,
	}
}
