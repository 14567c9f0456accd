package repository

import (
	"context"
	"database/sql"

	"github.com/querykit/querykit/pkg/query"
)

// PagedRepository implements Reader for one entity over the query engine.
// All state is set at construction; a repository is safe for concurrent use.
type PagedRepository[T any, ID comparable] struct {
	executor    *query.Executor
	rules       query.Ruleset
	idColumn    string
	scan        query.Scanner[T]
	maxPageSize int64
}

// Option configures a PagedRepository.
type Option[T any, ID comparable] func(*PagedRepository[T, ID])

// WithMaxPageSize caps the page size accepted by List; 0 means unbounded.
func WithMaxPageSize[T any, ID comparable](n int64) Option[T, ID] {
	return func(r *PagedRepository[T, ID]) {
		r.maxPageSize = n
	}
}

// NewPagedRepository creates a repository from the entity's ruleset, its ID
// column, and a scanner mapping a result row to the entity.
func NewPagedRepository[T any, ID comparable](
	executor *query.Executor,
	rules query.Ruleset,
	idColumn string,
	scan query.Scanner[T],
	opts ...Option[T, ID],
) *PagedRepository[T, ID] {
	r := &PagedRepository[T, ID]{
		executor: executor,
		rules:    rules,
		idColumn: idColumn,
		scan:     scan,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns one page of entities. Pagination parameters are validated
// here, at the engine boundary; filter and sort parameters follow the
// ruleset's leniency rules.
func (r *PagedRepository[T, ID]) List(ctx context.Context, params query.Params) (*query.Page[T], error) {
	req := query.PageRequestFrom(params)
	if err := req.Validate(r.maxPageSize); err != nil {
		return nil, err
	}

	base := r.rules.Build(r.executor.Dialect(), params)
	return query.FetchPage(ctx, r.executor, base, req, r.scan)
}

// FindByID retrieves a single entity, or sql.ErrNoRows when it does not exist.
func (r *PagedRepository[T, ID]) FindByID(ctx context.Context, id ID) (*T, error) {
	base := query.NewSelect(r.executor.Dialect(), r.rules.Table, r.rules.Columns...)
	base.Where(r.idColumn, query.OpEq, id)
	base.Limit(1)

	page, err := query.FetchPage(ctx, r.executor, base, query.PageRequest{}, r.scan)
	if err != nil {
		return nil, err
	}
	if len(page.Records) == 0 {
		return nil, sql.ErrNoRows
	}
	return &page.Records[0], nil
}

// Count returns the number of entities matching the filter parameters.
func (r *PagedRepository[T, ID]) Count(ctx context.Context, params query.Params) (int64, error) {
	base := r.rules.Build(r.executor.Dialect(), params)
	return query.Count(ctx, r.executor, base)
}
