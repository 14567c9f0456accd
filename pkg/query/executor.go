package query

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/querykit/querykit/pkg/observability/logger"
	"github.com/querykit/querykit/pkg/observability/metrics"
)

const tracerName = "github.com/querykit/querykit/pkg/query"

// SQLExecutor is the store surface the engine executes against. *sql.DB,
// *sql.Tx and the pkg/store adapters all satisfy it; the connection is
// borrowed from the underlying pool for the duration of one call and
// released on every exit path.
type SQLExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner maps one result row to a record. The scan callback behaves like
// sql.Rows.Scan over the record's own columns; the executor takes care of
// any trailing count column, so the same Scanner serves paginated and
// unpaginated queries.
type Scanner[T any] func(scan func(dest ...any) error) (T, error)

// Page is one page of records plus the totals derived from the full
// filtered result set.
type Page[T any] struct {
	Records    []T
	Total      int64
	TotalPages int64
}

// Executor runs composed queries against a store. It holds no per-request
// state and is safe for concurrent use; parallelism is bounded only by the
// underlying connection pool.
type Executor struct {
	db              SQLExecutor
	dialect         Dialect
	logger          logger.Logger
	metrics         *metrics.QueryMetrics
	tracer          trace.Tracer
	defaultPageSize int64
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the executor's logger.
func WithLogger(log logger.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = log
	}
}

// WithMetrics enables query metrics recording.
func WithMetrics(m *metrics.QueryMetrics) ExecutorOption {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithDefaultPageSize overrides the page size applied when a paginated
// request omits page_size.
func WithDefaultPageSize(n int64) ExecutorOption {
	return func(e *Executor) {
		e.defaultPageSize = n
	}
}

// NewExecutor creates an executor for the given store and dialect.
func NewExecutor(db SQLExecutor, d Dialect, opts ...ExecutorOption) *Executor {
	e := &Executor{
		db:              db,
		dialect:         d,
		logger:          logger.NewNoopLogger(),
		tracer:          otel.Tracer(tracerName),
		defaultPageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dialect returns the dialect the executor composes queries for.
func (e *Executor) Dialect() Dialect {
	return e.dialect
}

// FetchPage executes the base query and returns one page of records plus
// the totals of the unpaginated result set.
//
// Without a page request the base query runs unmodified and the result
// reports a single page. With one, the query is wrapped so that the page and
// the total count come back in a single round trip on window-capable
// dialects, or in a count query plus a page query otherwise. An empty result
// set yields zero records and one page.
//
// Store failures propagate as a DataAccessError wrapping the driver error.
func FetchPage[T any](ctx context.Context, e *Executor, base SQLQuery, req PageRequest, scan Scanner[T]) (*Page[T], error) {
	mode := metrics.ModeUnpaginated
	if req.Paginated() {
		if e.dialect.SupportsWindowCount() {
			mode = metrics.ModeWindow
		} else {
			mode = metrics.ModeFallback
		}
	}

	ctx, span := e.tracer.Start(ctx, "query.fetch_page", trace.WithAttributes(
		attribute.String("db.dialect", e.dialect.Name()),
		attribute.String("query.mode", mode),
	))
	defer span.End()

	start := time.Now()
	page, err := fetchPage(ctx, e, base, req, scan, mode)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		if e.metrics != nil {
			e.metrics.ObserveError(e.dialect.Name(), mode)
		}
		e.logger.WithContext(ctx).Error("query execution failed",
			"dialect", e.dialect.Name(),
			"mode", mode,
			"error", err,
		)
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.ObserveQuery(e.dialect.Name(), mode, elapsed, len(page.Records))
	}
	e.logger.WithContext(ctx).Debug("query executed",
		"dialect", e.dialect.Name(),
		"mode", mode,
		"rows", len(page.Records),
		"total", page.Total,
		"duration_ms", elapsed.Milliseconds(),
	)
	return page, nil
}

func fetchPage[T any](ctx context.Context, e *Executor, base SQLQuery, req PageRequest, scan Scanner[T], mode string) (*Page[T], error) {
	if !req.Paginated() {
		records, err := fetchAll(ctx, e, base, scan)
		if err != nil {
			return nil, err
		}
		return &Page[T]{
			Records:    records,
			Total:      int64(len(records)),
			TotalPages: 1,
		}, nil
	}

	pageSize := req.EffectivePageSize(e.defaultPageSize)
	paginated := Paginate(e.dialect, base, *req.Page, pageSize)

	var (
		records []T
		total   int64
		err     error
	)
	if mode == metrics.ModeWindow {
		records, total, err = fetchWindowed(ctx, e, paginated, scan)
	} else {
		records, total, err = fetchWithCountQuery(ctx, e, paginated, scan)
	}
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Records:    records,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}, nil
}

// fetchWindowed runs the fused query: every row carries the window count,
// read alongside the record columns and stripped before the record is
// returned. Zero rows means a total of zero.
func fetchWindowed[T any](ctx context.Context, e *Executor, q *PaginatedQuery, scan Scanner[T]) ([]T, int64, error) {
	text, args := q.SQL()
	rows, err := e.db.QueryContext(ctx, text, args...)
	if err != nil {
		return nil, 0, NewDataAccessError("execute paginated query", err)
	}
	defer rows.Close()

	records := []T{}
	var total int64
	for rows.Next() {
		record, err := scan(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		})
		if err != nil {
			return nil, 0, NewDataAccessError("scan paginated row", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, NewDataAccessError("iterate paginated rows", err)
	}
	return records, total, nil
}

// fetchWithCountQuery is the two-round-trip fallback for dialects without
// window-count support.
func fetchWithCountQuery[T any](ctx context.Context, e *Executor, q *PaginatedQuery, scan Scanner[T]) ([]T, int64, error) {
	countText, countArgs := q.CountSQL()
	var total int64
	if err := e.db.QueryRowContext(ctx, countText, countArgs...).Scan(&total); err != nil {
		return nil, 0, NewDataAccessError("execute count query", err)
	}

	pageText, pageArgs := q.PageSQL()
	rows, err := e.db.QueryContext(ctx, pageText, pageArgs...)
	if err != nil {
		return nil, 0, NewDataAccessError("execute page query", err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		record, err := scan(rows.Scan)
		if err != nil {
			return nil, 0, NewDataAccessError("scan page row", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, NewDataAccessError("iterate page rows", err)
	}
	return records, total, nil
}

// Count returns the number of rows the base query would produce.
func Count(ctx context.Context, e *Executor, base SQLQuery) (int64, error) {
	inner, args := base.SQL()
	text := "SELECT COUNT(*) FROM (" + inner + ") AS sub"

	var total int64
	if err := e.db.QueryRowContext(ctx, text, args...).Scan(&total); err != nil {
		return 0, NewDataAccessError("execute count query", err)
	}
	return total, nil
}

func fetchAll[T any](ctx context.Context, e *Executor, base SQLQuery, scan Scanner[T]) ([]T, error) {
	text, args := base.SQL()
	rows, err := e.db.QueryContext(ctx, text, args...)
	if err != nil {
		return nil, NewDataAccessError("execute query", err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		record, err := scan(rows.Scan)
		if err != nil {
			return nil, NewDataAccessError("scan row", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewDataAccessError("iterate rows", err)
	}
	return records, nil
}
