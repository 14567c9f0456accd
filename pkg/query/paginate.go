package query

import (
	"fmt"
)

// DefaultPageSize is applied when pagination is requested without an
// explicit page size.
const DefaultPageSize int64 = 10

// PageRequest carries the caller's optional pagination parameters.
// A nil Page means no pagination: all rows are returned and the result
// reports a single page. Page is 1-indexed.
type PageRequest struct {
	Page     *int64
	PageSize *int64
}

// Paginated reports whether the caller asked for a page.
func (r PageRequest) Paginated() bool {
	return r.Page != nil
}

// EffectivePageSize returns the requested page size, or fallback when the
// caller left it out. A non-positive fallback selects DefaultPageSize.
func (r PageRequest) EffectivePageSize(fallback int64) int64 {
	if r.PageSize != nil {
		return *r.PageSize
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultPageSize
}

// Validate rejects out-of-domain pagination values. This is the parse-time
// boundary: past it, page and page size are trusted positive integers and
// the wrapper applies them without clamping. maxPageSize 0 means unbounded.
func (r PageRequest) Validate(maxPageSize int64) error {
	if r.Page != nil && *r.Page <= 0 {
		return NewValidationError("page", fmt.Sprintf("must be positive, got %d", *r.Page))
	}
	if r.PageSize != nil {
		if *r.PageSize <= 0 {
			return NewValidationError("page_size", fmt.Sprintf("must be positive, got %d", *r.PageSize))
		}
		if maxPageSize > 0 && *r.PageSize > maxPageSize {
			return NewValidationError("page_size", fmt.Sprintf("must not exceed %d, got %d", maxPageSize, *r.PageSize))
		}
	}
	return nil
}

// PaginatedQuery wraps an already filtered and ordered base query into a
// form that returns one page of rows plus the total row count of the
// unpaginated result set. With a window-capable dialect the count travels
// as an extra total_count column on every row, computed in the same round
// trip; otherwise CountSQL and PageSQL split the work into two queries.
//
// The wrapper is a structural transformation: it satisfies SQLQuery and
// executes through the same path as the base query.
type PaginatedQuery struct {
	base     SQLQuery
	dialect  Dialect
	page     int64
	pageSize int64
}

// Paginate wraps base for the given 1-indexed page and page size.
// Both values are trusted positive integers; validation happens earlier
// via PageRequest.Validate.
func Paginate(d Dialect, base SQLQuery, page, pageSize int64) *PaginatedQuery {
	return &PaginatedQuery{
		base:     base,
		dialect:  d,
		page:     page,
		pageSize: pageSize,
	}
}

// Offset returns the number of rows skipped before this page.
func (q *PaginatedQuery) Offset() int64 {
	return (q.page - 1) * q.pageSize
}

// SQL renders the fused one-round-trip form: every row of the page carries
// the window count of the full filtered result set. An empty result set
// yields zero rows, so the caller must treat the missing count as zero.
func (q *PaginatedQuery) SQL() (string, []any) {
	inner, args := q.base.SQL()
	out := make([]any, len(args), len(args)+2)
	copy(out, args)

	out = append(out, q.pageSize)
	limit := q.dialect.Placeholder(len(out))
	out = append(out, q.Offset())
	offset := q.dialect.Placeholder(len(out))

	text := fmt.Sprintf(
		"SELECT sub.*, COUNT(*) OVER () AS total_count FROM (%s) AS sub LIMIT %s OFFSET %s",
		inner, limit, offset,
	)
	return text, out
}

// CountSQL renders the separate count query used by dialects without
// window-count support.
func (q *PaginatedQuery) CountSQL() (string, []any) {
	inner, args := q.base.SQL()
	return fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS sub", inner), args
}

// PageSQL renders the limited page query used alongside CountSQL.
func (q *PaginatedQuery) PageSQL() (string, []any) {
	inner, args := q.base.SQL()
	out := make([]any, len(args), len(args)+2)
	copy(out, args)

	out = append(out, q.pageSize)
	limit := q.dialect.Placeholder(len(out))
	out = append(out, q.Offset())
	offset := q.dialect.Placeholder(len(out))

	return fmt.Sprintf("SELECT sub.* FROM (%s) AS sub LIMIT %s OFFSET %s", inner, limit, offset), out
}

// TotalPages derives the page count for a result set of total rows.
// An empty result set still reports one page so paginated and unpaginated
// paths agree on the minimum.
func TotalPages(total, pageSize int64) int64 {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
