// Package repository provides read-side repositories built on the query
// engine. Each repository is configured once with a declarative ruleset and
// a row scanner; request parameters do the rest.
package repository

import (
	"context"

	"github.com/querykit/querykit/pkg/query"
)

// Lister lists one page of entities from caller-supplied parameters.
type Lister[T any] interface {
	List(ctx context.Context, params query.Params) (*query.Page[T], error)
}

// Finder retrieves a single entity by its identifier.
type Finder[T any, ID comparable] interface {
	FindByID(ctx context.Context, id ID) (*T, error)
}

// Counter counts entities matching the filter parameters.
type Counter interface {
	Count(ctx context.Context, params query.Params) (int64, error)
}

// Reader combines the read operations.
type Reader[T any, ID comparable] interface {
	Lister[T]
	Finder[T, ID]
	Counter
}
