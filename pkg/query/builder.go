package query

import (
	"reflect"
	"strings"
)

// SQLQuery is anything that can render itself to parameterized SQL.
// Both the base SelectBuilder and the PaginatedQuery wrapper satisfy it, so
// pagination composes structurally instead of post-processing fetched rows.
type SQLQuery interface {
	SQL() (string, []any)
}

// Builder is the capability set callers compose against: add predicates, set
// an ordering, bound the result window, render to SQL. Implementations are
// dialect-specific; callers never depend on a concrete query type.
type Builder interface {
	Where(column string, op Op, value any) Builder
	OrderBy(column string, dir Direction) Builder
	Limit(n int64) Builder
	Offset(n int64) Builder
	SQL() (string, []any)
}

// Condition is one filter entry: a column, a comparison operator, and an
// optional value. A nil value means the entry contributes no predicate.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// SelectBuilder composes a single-table SELECT for a given dialect.
// All state is request-scoped; a builder is not safe for concurrent use but
// the package-level constructors and dialects are.
type SelectBuilder struct {
	dialect Dialect
	table   string
	columns []string
	where   []string
	args    []any
	order   string
	limit   *int64
	offset  *int64
}

// NewSelect starts a SELECT over table projecting the given columns.
// An empty column list projects *.
func NewSelect(d Dialect, table string, columns ...string) *SelectBuilder {
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	return &SelectBuilder{
		dialect: d,
		table:   table,
		columns: columns,
	}
}

// Where conjoins a predicate for column when value is present.
// An absent value (nil, or a typed nil pointer) contributes nothing, so
// filtering on an absent value is identical to not filtering at all.
// Predicates are conjoined in call order, keeping generated text
// deterministic for identical inputs.
func (b *SelectBuilder) Where(column string, op Op, value any) Builder {
	if isAbsent(value) {
		return b
	}
	b.args = append(b.args, value)
	b.where = append(b.where, column+" "+op.sql()+" "+b.dialect.Placeholder(len(b.args)))
	return b
}

// Apply folds a list of filter entries into the builder in caller order.
func (b *SelectBuilder) Apply(conds ...Condition) Builder {
	for _, c := range conds {
		b.Where(c.Column, c.Op, c.Value)
	}
	return b
}

// OrderBy sets the explicit ordering. Columns reach this point only through
// an allow-list mapping, never from raw caller input.
func (b *SelectBuilder) OrderBy(column string, dir Direction) Builder {
	b.order = column + " " + string(dir)
	return b
}

// Limit bounds the number of returned rows.
func (b *SelectBuilder) Limit(n int64) Builder {
	b.limit = &n
	return b
}

// Offset skips the first n rows.
func (b *SelectBuilder) Offset(n int64) Builder {
	b.offset = &n
	return b
}

// Table returns the table this builder selects from.
func (b *SelectBuilder) Table() string {
	return b.table
}

// SQL renders the query text and its arguments. Rendering does not mutate
// the builder; calling SQL twice yields identical output.
func (b *SelectBuilder) SQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if b.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order)
	}

	args := make([]any, len(b.args), len(b.args)+2)
	copy(args, b.args)

	if b.limit != nil {
		args = append(args, *b.limit)
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.dialect.Placeholder(len(args)))
	}
	if b.offset != nil {
		args = append(args, *b.offset)
		sb.WriteString(" OFFSET ")
		sb.WriteString(b.dialect.Placeholder(len(args)))
	}

	return sb.String(), args
}

// isAbsent reports whether a filter value is missing: a nil interface or a
// typed nil pointer (the usual shape of an optional struct field).
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
