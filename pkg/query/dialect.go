package query

import (
	"fmt"
	"strings"
)

// Dialect is the capability set a relational store must expose for query
// composition: positional placeholder syntax and whether a windowed count
// (COUNT(*) OVER ()) can be fused into a paginated query.
type Dialect interface {
	// Name returns the driver-level dialect name ("postgres", "mysql", "sqlite").
	Name() string

	// Placeholder returns the parameter placeholder for the n-th argument (1-based).
	Placeholder(n int) string

	// SupportsWindowCount reports whether the store can evaluate a window
	// count in the same round trip as the page query. Dialects without it
	// fall back to a separate COUNT query (slower, same results).
	SupportsWindowCount() bool
}

type postgresDialect struct{}

func (postgresDialect) Name() string           { return "postgres" }
func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }
func (postgresDialect) SupportsWindowCount() bool { return true }

type mysqlDialect struct{}

func (mysqlDialect) Name() string             { return "mysql" }
func (mysqlDialect) Placeholder(int) string   { return "?" }

// Window functions require MySQL 8.0; reporting false keeps the engine
// usable against 5.7 at the cost of one extra COUNT round trip.
func (mysqlDialect) SupportsWindowCount() bool { return false }

type sqliteDialect struct{}

func (sqliteDialect) Name() string              { return "sqlite" }
func (sqliteDialect) Placeholder(int) string    { return "?" }
func (sqliteDialect) SupportsWindowCount() bool { return true }

// Dialect singletons. All dialects are stateless and safe for concurrent use.
var (
	Postgres Dialect = postgresDialect{}
	MySQL    Dialect = mysqlDialect{}
	SQLite   Dialect = sqliteDialect{}
)

// DialectByName maps a configured driver name to its dialect.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q (supported: postgres, mysql, sqlite)", name)
	}
}
