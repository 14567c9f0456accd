package query

// FilterRule binds a column and comparison operator to the parameter name
// that supplies its value.
type FilterRule struct {
	Column string
	Op     Op
	Param  string
}

// Ruleset declares, as data, how one entity's listing query is built: the
// projected table and columns, the filter rules, and the sort allow-list.
// It is interpreted at call time, so the same builder and resolver code
// serves every entity without per-entity duplication. A Ruleset is immutable
// once constructed and safe for concurrent use.
type Ruleset struct {
	Table   string
	Columns []string
	Filters []FilterRule
	Sort    SortMapping

	// SortParam overrides the parameter carrying the sort token.
	// Empty selects ParamSortBy.
	SortParam string
}

// Build expands the rule table against the supplied parameters: filter rules
// whose parameter is absent contribute nothing, the sort token resolves
// through the allow-list, unresolved tokens leave the query unordered.
func (r Ruleset) Build(d Dialect, p Params) *SelectBuilder {
	b := NewSelect(d, r.Table, r.Columns...)
	for _, f := range r.Filters {
		b.Where(f.Column, f.Op, p[f.Param])
	}

	sortParam := r.SortParam
	if sortParam == "" {
		sortParam = ParamSortBy
	}
	if token := p.String(sortParam); token != nil {
		if ord, ok := r.Sort.Resolve(*token); ok {
			b.OrderBy(ord.Column, ord.Direction)
		}
	}
	return b
}
