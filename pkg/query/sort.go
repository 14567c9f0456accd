package query

// Direction is the sort direction applied to a resolved ordering.
type Direction string

// Sort directions
const (
	// Asc sorts in ascending order
	Asc Direction = "ASC"
	// Desc sorts in descending order
	Desc Direction = "DESC"
)

// SortField binds a caller-facing sort name to the column it orders by.
type SortField struct {
	Name   string
	Column string
}

// SortMapping is the fixed allow-list of sortable fields for an entity.
// Only columns reachable through the mapping can ever appear in ORDER BY.
type SortMapping []SortField

// Ordering is a resolved (column, direction) pair.
type Ordering struct {
	Column    string
	Direction Direction
}

// Resolve maps a sort token to an ordering. A bare name sorts ascending;
// ".asc" and ".desc" suffixes are explicit. Mapping order decides priority
// among duplicate names. An empty or unrecognized token resolves to no
// explicit ordering, never an error: malformed sort input degrades to the
// store-default order.
func (m SortMapping) Resolve(token string) (Ordering, bool) {
	if token == "" {
		return Ordering{}, false
	}
	for _, f := range m {
		switch token {
		case f.Name, f.Name + ".asc":
			return Ordering{Column: f.Column, Direction: Asc}, true
		case f.Name + ".desc":
			return Ordering{Column: f.Column, Direction: Desc}, true
		}
	}
	return Ordering{}, false
}
