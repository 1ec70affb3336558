package models

// PaginatedProducts mirrors the shape the catalog UI consumes: the page of
// items plus enough metadata to render pagination controls.
type PaginatedProducts struct {
	Data        []*ProductDTO `json:"data"`
	Total       int           `json:"total"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	PerPage     int           `json:"per_page"`
	Search      string        `json:"search,omitempty"`
}
