package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params holds page-number pagination parameters extracted from a request.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts pagination parameters from the echo context. The
// console sends page/pageSize; limit is accepted as a legacy alias for
// pageSize.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	if size <= 0 {
		size, _ = strconv.Atoi(c.QueryParam("limit"))
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// Bounds clips the page window to valid slice indexes for a collection of
// the given total size. A page past the end yields an empty window.
func (p Params) Bounds(total int) (lo, hi int) {
	lo = (p.Page - 1) * p.PageSize
	if lo > total {
		lo = total
	}
	hi = lo + p.PageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}

// TotalPages returns the number of pages needed to hold total items.
func (p Params) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Page*p.PageSize < total
}
