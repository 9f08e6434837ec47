package pagination

import (
	"math"
	"net/url"
	"strconv"
)

// PageRequest is a page window: a 1-based page number and a positive size.
type PageRequest struct {
	Page     int `json:"pageNumber"`
	PageSize int `json:"pageSize"`
}

// Offset calculates the number of records to skip based on page and page size.
// It saturates at math.MaxInt instead of wrapping.
func (r PageRequest) Offset() int {
	if r.Page <= 1 || r.PageSize <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery parses pageNumber and pageSize (or page and page_size)
// from URL query values. Absent or unparseable values take the defaults;
// explicit out-of-range values are preserved for validation to reject.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	req := PageRequest{
		Page:     1,
		PageSize: cfg.DefaultPageSize,
	}

	if n, ok := intParam(values, "pageNumber", "page"); ok {
		req.Page = n
	}
	if n, ok := intParam(values, "pageSize", "page_size"); ok {
		req.PageSize = n
	}

	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPageResult creates a PageResult with derived navigation flags.
// HasNextPage holds when page*pageSize < total, computed as page < totalPages
// so large page numbers cannot overflow; HasPreviousPage when page > 1.
func NewPageResult[T any](items []T, total, page, pageSize int) PageResult[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = total / pageSize
		if total%pageSize != 0 {
			totalPages++
		}
	}

	if items == nil {
		items = []T{}
	}

	return PageResult[T]{
		Items:           items,
		TotalCount:      total,
		PageNumber:      page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

func intParam(values url.Values, keys ...string) (int, bool) {
	for _, key := range keys {
		if v := values.Get(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
