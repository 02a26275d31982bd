package listing

import (
	"strings"
	"time"
)

// StatusAll bypasses status filtering
const StatusAll = "ALL"

// DefaultPageSize matches the dashboard's fixed table page length
const DefaultPageSize = 10

// DateFilter holds an optional date range. A nil Start means "from the
// beginning"; a nil End together with a set Start narrows the filter to that
// single calendar day rather than an open-ended range. The asymmetry mirrors
// the dashboard's "single day" filter mode and is kept intentionally.
type DateFilter struct {
	Start *time.Time
	End   *time.Time
}

// Active reports whether any date bound is set
func (d DateFilter) Active() bool {
	return d.Start != nil || d.End != nil
}

// SingleDay reports whether the filter is in single-calendar-day mode
func (d DateFilter) SingleDay() bool {
	return d.Start != nil && d.End == nil
}

// Filters holds the filter state of one list screen. Created empty on screen
// mount, mutated by user input, cleared by Reset; never persisted.
type Filters struct {
	Query  string
	Date   DateFilter
	Status string
}

// Active reports whether any filter would exclude records
func (f Filters) Active() bool {
	return f.Query != "" || f.Date.Active() || (f.Status != "" && f.Status != StatusAll)
}

// Source describes how to read the filterable fields of a record type.
// SearchFields is required; Timestamp and Status may be nil to disable the
// corresponding filter.
type Source[T any] struct {
	SearchFields func(T) []string
	Timestamp    func(T) time.Time
	Status       func(T) string
}

// Controller owns an in-memory record collection and turns it into the exact
// slice to render plus pagination metadata. All operations are synchronous and
// pure over the current record set.
type Controller[T any] struct {
	source   Source[T]
	records  []T
	filters  Filters
	page     int
	pageSize int
}

// NewController creates a controller with an empty record set
func NewController[T any](source Source[T]) *Controller[T] {
	return &Controller[T]{
		source:   source,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// SetRecords replaces the underlying record set. Input order is preserved by
// filtering; callers supply records sorted newest first. Resets to page 1.
func (c *Controller[T]) SetRecords(records []T) {
	c.records = records
	c.page = 1
}

// SetQuery sets the text search query and resets to page 1
func (c *Controller[T]) SetQuery(query string) {
	c.filters.Query = query
	c.page = 1
}

// SetDateRange sets the date filter and resets to page 1
func (c *Controller[T]) SetDateRange(start, end *time.Time) {
	c.filters.Date = DateFilter{Start: start, End: end}
	c.page = 1
}

// SetStatus sets the status filter and resets to page 1
func (c *Controller[T]) SetStatus(status string) {
	c.filters.Status = status
	c.page = 1
}

// SetFilters replaces the whole filter state and resets to page 1
func (c *Controller[T]) SetFilters(filters Filters) {
	c.filters = filters
	c.page = 1
}

// Reset clears all filters and returns to page 1
func (c *Controller[T]) Reset() {
	c.filters = Filters{}
	c.page = 1
}

// Filters returns the current filter state
func (c *Controller[T]) Filters() Filters {
	return c.filters
}

// SetPageSize changes the page length and resets to page 1
func (c *Controller[T]) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	c.pageSize = size
	c.page = 1
}

// PageSize returns the current page length
func (c *Controller[T]) PageSize() int {
	return c.pageSize
}

// GoToPage moves to page n, clamped to the valid range. The controller never
// exposes an out-of-range page.
func (c *Controller[T]) GoToPage(n int) {
	total := c.TotalPages()
	if total < 1 {
		c.page = 1
		return
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	c.page = n
}

// NextPage advances one page; a no-op on the last page
func (c *Controller[T]) NextPage() {
	c.GoToPage(c.page + 1)
}

// PrevPage goes back one page; a no-op on the first page
func (c *Controller[T]) PrevPage() {
	c.GoToPage(c.page - 1)
}

// CurrentPage returns the current page number (1-based)
func (c *Controller[T]) CurrentPage() int {
	return c.page
}

// Filtered returns every record passing all active filters, preserving input
// order. Filters are a conjunction: a record must pass all of them.
func (c *Controller[T]) Filtered() []T {
	out := make([]T, 0, len(c.records))
	for _, r := range c.records {
		if c.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// TotalPages returns ceil(len(filtered)/pageSize); 0 when nothing matches so
// callers can render an explicit "no records" state instead of page 1 of 0.
func (c *Controller[T]) TotalPages() int {
	n := len(c.Filtered())
	if n == 0 {
		return 0
	}
	return (n + c.pageSize - 1) / c.pageSize
}

// Page returns the slice of filtered records for the current page
func (c *Controller[T]) Page() []T {
	filtered := c.Filtered()
	start := (c.page - 1) * c.pageSize
	if start >= len(filtered) {
		return []T{}
	}
	end := start + c.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// HasPrev reports whether the Previous control is enabled
func (c *Controller[T]) HasPrev() bool {
	return c.page > 1
}

// HasNext reports whether the Next control is enabled
func (c *Controller[T]) HasNext() bool {
	return c.page < c.TotalPages()
}

// PageLabels returns the numbered pagination control for the current state
func (c *Controller[T]) PageLabels() []PageLabel {
	return PageWindow(c.page, c.TotalPages())
}

func (c *Controller[T]) matches(r T) bool {
	return c.matchesQuery(r) && c.matchesDate(r) && c.matchesStatus(r)
}

func (c *Controller[T]) matchesQuery(r T) bool {
	if c.filters.Query == "" {
		return true
	}
	query := strings.ToLower(c.filters.Query)
	for _, field := range c.source.SearchFields(r) {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (c *Controller[T]) matchesDate(r T) bool {
	if c.source.Timestamp == nil || !c.filters.Date.Active() {
		return true
	}
	return MatchDate(c.source.Timestamp(r), c.filters.Date)
}

func (c *Controller[T]) matchesStatus(r T) bool {
	if c.source.Status == nil {
		return true
	}
	status := c.filters.Status
	if status == "" || status == StatusAll {
		return true
	}
	return c.source.Status(r) == status
}

// MatchDate reports whether ts falls inside the date filter. With both bounds
// set the range is inclusive and the end bound covers the whole end day. With
// only a start the record must fall on that exact calendar day.
func MatchDate(ts time.Time, filter DateFilter) bool {
	if !filter.Active() {
		return true
	}
	if filter.SingleDay() {
		y1, m1, d1 := ts.Date()
		y2, m2, d2 := filter.Start.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}

	start := time.Time{}
	if filter.Start != nil {
		start = *filter.Start
	}
	end := EndOfDay(*filter.End)
	return !ts.Before(start) && !ts.After(end)
}

// EndOfDay normalizes t to 23:59:59.999 so the end date is inclusive of the
// whole day
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
