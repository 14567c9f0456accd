package query

// Op is the closed set of comparison operators a filter entry may use.
// Raw operator tokens are rejected at parse time by ParseOp; everything past
// that point works on the typed value and cannot fail.
type Op int

// Comparison operators
const (
	// OpEq matches rows where the column equals the value
	OpEq Op = iota
	// OpLike matches rows where the column matches a SQL LIKE pattern
	OpLike
	// OpGE matches rows where the column is greater than or equal to the value
	OpGE
	// OpLE matches rows where the column is less than or equal to the value
	OpLE
)

// sql resolves the operator to its SQL text.
func (op Op) sql() string {
	switch op {
	case OpLike:
		return "LIKE"
	case OpGE:
		return ">="
	case OpLE:
		return "<="
	default:
		return "="
	}
}

// String returns the operator token used in parameter names and metrics.
func (op Op) String() string {
	switch op {
	case OpLike:
		return "like"
	case OpGE:
		return "ge"
	case OpLE:
		return "le"
	default:
		return "eq"
	}
}

// ParseOp converts a raw operator token to its typed form.
// Unknown tokens are a ValidationError; this is the only place operator
// strings are interpreted.
func ParseOp(token string) (Op, error) {
	switch token {
	case "eq":
		return OpEq, nil
	case "like":
		return OpLike, nil
	case "ge", "gte":
		return OpGE, nil
	case "le", "lte":
		return OpLE, nil
	default:
		return 0, NewValidationError("operator", "unknown comparison operator "+token)
	}
}
