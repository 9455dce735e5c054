package query

import (
	"math"
	"strconv"
	"strings"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"
)

// Paging defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit caps the page size a client can ask for
	MaxLimit = 100
)

// Page is a validated page request
type Page struct {
	Number int
	Limit  int
}

// NewPage validates a page number and size. Both must be at least 1; the size is clamped to MaxLimit.
func NewPage(number, limit int) (Page, error) {
	if number < 1 {
		return Page{}, apperror.Validation("page must be at least 1", nil)
	}
	if limit < 1 {
		return Page{}, apperror.Validation("limit must be at least 1", nil)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}, nil
}

// ParsePage reads page and limit query values, using the defaults for empty values.
func ParsePage(rawPage, rawLimit string) (Page, error) {
	number, limit := DefaultPage, DefaultLimit

	if s := strings.TrimSpace(rawPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, apperror.Validation("page must be a number", err)
		}
		number = n
	}
	if s := strings.TrimSpace(rawLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, apperror.Validation("limit must be a number", err)
		}
		limit = n
	}

	return NewPage(number, limit)
}

// Skip is the number of records before this page. It saturates at math.MaxInt, which is
// past the end of any listing, so huge page numbers still read an empty page.
func (p Page) Skip() int {
	if p.Limit > 0 && p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// TotalPages is ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// Result is one page of T plus the number of records matching the filter across all pages.
// Items is empty, not nil, when the page is past the end.
type Result[T any] struct {
	Items []T
	Page  Page
	Total int64
}

// TotalPages of the listing this result belongs to.
func (r Result[T]) TotalPages() int {
	return TotalPages(r.Total, r.Page.Limit)
}

// Meta returns the pagination fields of the response body.
func (r Result[T]) Meta() model.PageMeta {
	return model.PageMeta{
		Page:       r.Page.Number,
		Limit:      r.Page.Limit,
		Total:      r.Total,
		TotalPages: r.TotalPages(),
	}
}
