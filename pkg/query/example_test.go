package query_test

import (
	"fmt"

	"github.com/querykit/querykit/pkg/query"
)

// Example shows how a listing endpoint composes its query from optional
// request parameters. Absent parameters contribute nothing and the sort
// token only ever resolves through the allow-list.
func Example() {
	rules := query.Ruleset{
		Table:   "users",
		Columns: []string{"id", "email", "created_at"},
		Filters: []query.FilterRule{
			{Column: "email", Op: query.OpLike, Param: "email"},
			{Column: "created_at", Op: query.OpGE, Param: "created_at[gte]"},
		},
		Sort: query.SortMapping{
			{Name: "email", Column: "email"},
			{Name: "created_at", Column: "created_at"},
		},
	}

	params := query.Params{
		"email":   "%@example.com",
		"sort_by": "created_at.desc",
		"page":    int64(2),
	}

	base := rules.Build(query.Postgres, params)
	text, args := base.SQL()
	fmt.Println(text)
	fmt.Println(args)

	// Wrapping for pagination fuses the page and the total count into one
	// round trip on window-capable dialects.
	paged := query.Paginate(query.Postgres, base, 2, 10)
	text, _ = paged.SQL()
	fmt.Println(text)

	// Output:
	// SELECT id, email, created_at FROM users WHERE email LIKE $1 ORDER BY created_at DESC
	// [%@example.com]
	// SELECT sub.*, COUNT(*) OVER () AS total_count FROM (SELECT id, email, created_at FROM users WHERE email LIKE $1) AS sub LIMIT $2 OFFSET $3
}
