package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPageNumber keeps Offset within int32 for any page size.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Page is a normalized 1-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps the raw page and limit values. Page is kept within
// [1, MaxPageNumber]; limit falls back to DefaultPageSize when not positive
// and is capped at MaxPageSize.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Number: page, Size: limit}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Unbounded reports whether the page carries no limit at all.
func (p Page) Unbounded() bool {
	return p.Size == 0
}

// AllRows is the page used by list endpoints that return every row.
var AllRows = Page{Number: 1}
