package models

import "math"

// PerPage is the fixed size of every post listing page.
const PerPage = 5

// Page is one slice of a listing. A page past the last one has no Items but is
// otherwise valid.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
	PrevNum int  `json:"prev_num,omitempty"`
	NextNum int  `json:"next_num,omitempty"`
}

// NewPage fills in the navigation fields from the total row count.
func NewPage[T any](items []T, page, perPage, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	p := Page[T]{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
	if p.HasPrev {
		p.PrevNum = page - 1
	}
	if p.HasNext {
		p.NextNum = page + 1
	}
	return p
}

// Offset returns the row offset of a 1-based page. Pages too large to
// address saturate instead of overflowing into a negative offset.
func Offset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt / perPage * perPage
	}
	return (page - 1) * perPage
}
