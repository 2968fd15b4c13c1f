package domain

// PaginationParams selects one page of a list result. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Window returns the LIMIT and OFFSET for p. ok is false for a nil p or a
// non-positive page size, which both mean the whole result set.
func (p *PaginationParams) Window() (limit, offset int, ok bool) {
	if p == nil || p.PageSize <= 0 {
		return 0, 0, false
	}
	return p.PageSize, (max(p.Page, 1) - 1) * p.PageSize, true
}
