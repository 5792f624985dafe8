package pagination

// Meta describes the window Apply selected.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta builds the metadata for p over totalItems.
func NewMeta(p Params, totalItems int) Meta {
	pageSize := p.PageSize
	if !p.IsPageBased() {
		pageSize = p.Limit
	}
	if pageSize == 0 {
		pageSize = totalItems
	}

	start, _ := p.window(totalItems)
	currentPage := 1
	if pageSize > 0 {
		currentPage = start/pageSize + 1
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	return Meta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: start > 0,
		HasNext:     start+pageSize < totalItems,
	}
}
