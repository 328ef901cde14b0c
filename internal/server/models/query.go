package models

import "github.com/dmitrijs2005/myjar/internal/common"

// Criterion is a single search term: Field contains Query.
type Criterion struct {
	Field string
	Query string
}

// Page selects a window of an ordered result. A zero Limit selects
// nothing; NoLimit (any negative Limit) selects everything after Skip.
type Page struct {
	Skip  int
	Limit int
}

const NoLimit = -1

const (
	DefaultPageSize = common.DefaultPageSize
	MaxPageSize     = common.PageSizeCap
)

// Empty reports whether p selects no entries.
func (p Page) Empty() bool {
	return p.Limit == 0
}

// ClampLimit bounds a requested page size to [0, ceiling]. Negative
// requests get DefaultPageSize, or ceiling when that is smaller.
func ClampLimit(limit, ceiling int) int {
	if ceiling <= 0 {
		ceiling = MaxPageSize
	}
	if limit < 0 {
		limit = DefaultPageSize
	}
	return min(limit, ceiling)
}

// PageOf returns the window of the 1-based page number holding size entries.
func PageOf(number, size int) Page {
	return Page{Skip: (number - 1) * size, Limit: size}
}
