package data

import (
	"math"
	"strings"
)

// Filters holds the pagination values shared by every list operation.
type Filters struct {
	Page     int
	PageSize int
}

// Normalize clamps out-of-range pagination values instead of rejecting them.
// A page below 1 becomes 1 and the page size is forced into [1, 100].
func (f *Filters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 1
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Limit returns the maximum number of records a page may hold.
func (f Filters) Limit() int {
	return f.PageSize
}

// Offset returns the number of records to skip for the requested page.
func (f Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Metadata describes the pagination details of a list response.
type Metadata struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// CalculateMetadata computes pagination metadata from the total number of
// matching records and the normalized pagination values. An empty result
// set still reports one page.
func CalculateMetadata(totalItems, page, pageSize int) Metadata {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}
	return Metadata{
		Page:       page,
		Limit:      pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// ApplyBookFilter reduces books to the records matching every supplied
// predicate, preserving their order, and returns the page selected by
// filters together with metadata for the full match count. An empty author,
// a zero year and a nil available each match every record. The author
// predicate is a case-insensitive substring match, year and available are
// exact. A page beyond the last one yields an empty slice, not an error.
func ApplyBookFilter(books []*Book, author string, year int, available *bool, filters Filters) ([]*Book, Metadata) {
	matched := make([]*Book, 0, len(books))
	needle := strings.ToLower(author)
	for _, book := range books {
		if author != "" && !strings.Contains(strings.ToLower(book.Author), needle) {
			continue
		}
		if year != 0 && book.Year != year {
			continue
		}
		if available != nil && book.Available != *available {
			continue
		}
		matched = append(matched, book)
	}

	metadata := CalculateMetadata(len(matched), filters.Page, filters.PageSize)

	start := filters.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filters.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], metadata
}
