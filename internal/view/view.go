// Package view derives the rendered subset of a collection: a
// case-insensitive substring filter composed with fixed-size pagination.
// The pipeline owns the search term and current page of one view and
// recomputes the derivation from the collection snapshot on every read.
package view

import (
	"math"
	"strings"
)

// Matcher reports whether a record matches the lowercased search term.
// An empty term is handled by the pipeline and never reaches the matcher.
type Matcher[E any] func(record E, term string) bool

// Pipeline holds the filter and pagination state of one view.
type Pipeline[E any] struct {
	matcher  Matcher[E]
	pageSize int
	page     int
	term     string
}

// New returns a pipeline at page 1 with an empty search term.
func New[E any](pageSize int, matcher Matcher[E]) *Pipeline[E] {
	return &Pipeline[E]{
		matcher:  matcher,
		pageSize: pageSize,
		page:     1,
	}
}

// SetSearch replaces the search term and resets the page to 1.
func (p *Pipeline[E]) SetSearch(term string) {
	p.term = term
	p.page = 1
}

// Search returns the current search term.
func (p *Pipeline[E]) Search() string {
	return p.term
}

// Page returns the current page clamped against the given records.
func (p *Pipeline[E]) Page(records []E) int {
	return clamp(p.page, 1, p.TotalPages(records))
}

// TotalPages returns ceil(filtered/pageSize), never less than 1.
func (p *Pipeline[E]) TotalPages(records []E) int {
	total := int(math.Ceil(float64(len(p.Filter(records))) / float64(p.pageSize)))
	if total < 1 {
		total = 1
	}

	return total
}

// NextPage advances the page; a no-op on the last page.
func (p *Pipeline[E]) NextPage(records []E) {
	p.page = clamp(p.Page(records)+1, 1, p.TotalPages(records))
}

// PrevPage goes one page back; a no-op on the first page.
func (p *Pipeline[E]) PrevPage(records []E) {
	p.page = clamp(p.Page(records)-1, 1, p.TotalPages(records))
}

// Reset drops the search term and returns to page 1.
func (p *Pipeline[E]) Reset() {
	p.term = ""
	p.page = 1
}

// Filter returns the records matching the current search term, in
// collection order. An empty term matches everything.
func (p *Pipeline[E]) Filter(records []E) []E {
	if p.term == "" {
		return records
	}

	term := strings.ToLower(p.term)
	matched := make([]E, 0, len(records))
	for _, record := range records {
		if p.matcher(record, term) {
			matched = append(matched, record)
		}
	}

	return matched
}

// Visible returns the current page of the filtered records.
func (p *Pipeline[E]) Visible(records []E) []E {
	filtered := p.Filter(records)
	page := p.Page(records)

	from := (page - 1) * p.pageSize
	to := from + p.pageSize
	if from > len(filtered) {
		from = len(filtered)
	}
	if to > len(filtered) {
		to = len(filtered)
	}

	return filtered[from:to]
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}

	return value
}
