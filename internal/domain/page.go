package domain

// PaginationParams carries page/limit values from the HTTP layer to the service layer.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query params.
// Nil or non-positive values fall back to page=1, limit=20.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, 100)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
// The product can overflow for huge pages; use Bounds to slice results.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Bounds returns the [start, end) slice indices of the page within total items.
// Pages past the end, however large, yield an empty range.
func (p PaginationParams) Bounds(total int) (int, int) {
	if total <= 0 || p.Limit <= 0 {
		return 0, 0
	}
	pages := (total + p.Limit - 1) / p.Limit
	if p.Page < 1 || p.Page-1 >= pages {
		return total, total
	}
	start := p.Offset()
	end := min(start+p.Limit, total)
	return start, end
}
