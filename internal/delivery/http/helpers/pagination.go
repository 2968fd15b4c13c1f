package helpers

import (
	"net/http"
	"strconv"

	"conferencecentral/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. It returns
// nil when neither is present, meaning the whole result set. Invalid values
// fall back to the defaults and page_size is clamped to MaxPageSize.
func ParsePagination(r *http.Request) *domain.PaginationParams {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("page_size") {
		return nil
	}
	page := DefaultPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		page = v
	}
	pageSize := DefaultPageSize
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v >= 1 {
		pageSize = min(v, MaxPageSize)
	}
	return &domain.PaginationParams{Page: page, PageSize: pageSize}
}

// PaginationMeta describes the page a list response was cut from.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
}

// NewPaginationMeta builds the metadata for a page holding count items. A nil
// p means the unpaged result, reported as a single page of count items.
func NewPaginationMeta(p *domain.PaginationParams, count int) PaginationMeta {
	if p == nil {
		return PaginationMeta{Page: 1, PageSize: count, Count: count}
	}
	return PaginationMeta{Page: p.Page, PageSize: p.PageSize, Count: count}
}
