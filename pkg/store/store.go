package store

import (
	"context"
	"database/sql"
)

// Adapter is the lifecycle and execution contract for relational store
// adapters. The execution methods satisfy the query engine's SQLExecutor
// surface; queries inside a WithTransaction callback reuse the transaction
// carried in the context.
type Adapter interface {
	DB() *sql.DB
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error

	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
