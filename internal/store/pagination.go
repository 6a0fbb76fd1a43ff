package store

import "fmt"

const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ErrInvalidPagination is returned for out-of-range page/per_page values
// (spec.md §4.2, §8 boundary behavior); the HTTP layer maps it to 400.
type ErrInvalidPagination struct {
	Reason string
}

func (e ErrInvalidPagination) Error() string { return e.Reason }

// Page is a validated, 1-based page request.
type Page struct {
	Number  int
	PerPage int
}

// NewPage validates page/per_page against spec.md §4.2 ("page ≥ 1, per_page
// ∈ [1, 100]"). A nil pointer means "not supplied" and falls back to the
// default; a supplied value out of range, 0 included, is a 400.
func NewPage(page, perPage *int) (Page, error) {
	p := DefaultPage
	if page != nil {
		if *page < 1 {
			return Page{}, ErrInvalidPagination{Reason: fmt.Sprintf("page must be >= 1, got %d", *page)}
		}
		p = *page
	}

	pp := DefaultPerPage
	if perPage != nil {
		if *perPage < 1 || *perPage > MaxPerPage {
			return Page{}, ErrInvalidPagination{Reason: fmt.Sprintf("per_page must be in [1, %d], got %d", MaxPerPage, *perPage)}
		}
		pp = *perPage
	}

	return Page{Number: p, PerPage: pp}, nil
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }
func (p Page) Limit() int  { return p.PerPage }

// Pagination is the wire shape of a page's metadata (spec.md §4.2).
type Pagination struct {
	PageNumber int  `json:"page_number"`
	PageSize   int  `json:"page_size"`
	Pages      int  `json:"pages"`
	TotalItems *int `json:"total_items,omitempty"`
}

// Paginated is a page of items plus its pagination metadata.
type Paginated[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewPaginated[T any](items []T, p Page, total int) Paginated[T] {
	pages := 0
	if total > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	t := total
	return Paginated[T]{
		Items: items,
		Pagination: Pagination{
			PageNumber: p.Number,
			PageSize:   p.PerPage,
			Pages:      pages,
			TotalItems: &t,
		},
	}
}
