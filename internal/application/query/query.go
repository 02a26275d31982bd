// Package query turns list-screen query parameters into filtered,
// paginated results through the listing controller.
package query

import (
	"time"

	"github.com/hms/backend/internal/domain/listing"
)

// ListQuery carries the filter and pagination parameters of a list endpoint.
// Dates are bound as 2006-01-02; a start without an end selects that single
// calendar day.
type ListQuery struct {
	Search    string     `form:"search"`
	DateStart *time.Time `form:"date_start" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"date_end" time_format:"2006-01-02"`
	Status    string     `form:"status"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Filters maps the query onto the listing filter state
func (q ListQuery) Filters() listing.Filters {
	return listing.Filters{
		Query:  q.Search,
		Date:   listing.DateFilter{Start: q.DateStart, End: q.DateEnd},
		Status: q.Status,
	}
}

// PageLabel mirrors listing.PageLabel for JSON responses
type PageLabel struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Active   bool `json:"active,omitempty"`
}

// Pagination is the pagination metadata attached to list responses
type Pagination struct {
	CurrentPage int         `json:"current_page"`
	PageSize    int         `json:"page_size"`
	TotalItems  int         `json:"total_items"`
	TotalPages  int         `json:"total_pages"`
	HasPrev     bool        `json:"has_prev"`
	HasNext     bool        `json:"has_next"`
	Labels      []PageLabel `json:"labels"`
}

// Result is one page of records plus pagination metadata
type Result[T any] struct {
	Items      []T
	Pagination Pagination
}

func controller[T any](records []T, source listing.Source[T], q ListQuery) *listing.Controller[T] {
	c := listing.NewController(source)
	c.SetRecords(records)
	c.SetFilters(q.Filters())
	if q.PageSize > 0 {
		c.SetPageSize(q.PageSize)
	}
	if q.Page > 0 {
		c.GoToPage(q.Page)
	}
	return c
}

// Run filters records through the listing controller and returns the
// requested page. Records are expected newest first; order is preserved.
func Run[T any](records []T, source listing.Source[T], q ListQuery) Result[T] {
	c := controller(records, source, q)

	labels := make([]PageLabel, 0)
	for _, l := range c.PageLabels() {
		labels = append(labels, PageLabel{Page: l.Page, Ellipsis: l.Ellipsis, Active: l.Active})
	}

	return Result[T]{
		Items: c.Page(),
		Pagination: Pagination{
			CurrentPage: c.CurrentPage(),
			PageSize:    c.PageSize(),
			TotalItems:  len(c.Filtered()),
			TotalPages:  c.TotalPages(),
			HasPrev:     c.HasPrev(),
			HasNext:     c.HasNext(),
			Labels:      labels,
		},
	}
}

// Filtered returns the full filtered set without pagination. Exports are
// built from this set, not from the current page.
func Filtered[T any](records []T, source listing.Source[T], q ListQuery) []T {
	c := controller(records, source, q)
	return c.Filtered()
}
