package query

// Params maps recognized parameter names to already-typed optional values.
// Parsing raw query-string text into these values is the caller's job; a
// missing key or a nil value simply means the parameter was not supplied.
type Params map[string]any

// Recognized pagination parameter names
const (
	// ParamPage is the 1-indexed page number; absent means unpaginated
	ParamPage = "page"
	// ParamPageSize is the page size; absent falls back to the default
	ParamPageSize = "page_size"
	// ParamSortBy is the default sort token parameter
	ParamSortBy = "sort_by"
)

// Int64 reads an optional integer parameter. Integer-typed values and
// pointers to them are accepted; anything else reads as absent.
func (p Params) Int64(key string) *int64 {
	switch v := p[key].(type) {
	case int64:
		return &v
	case *int64:
		return v
	case int:
		n := int64(v)
		return &n
	case *int:
		if v == nil {
			return nil
		}
		n := int64(*v)
		return &n
	default:
		return nil
	}
}

// String reads an optional string parameter.
func (p Params) String(key string) *string {
	switch v := p[key].(type) {
	case string:
		return &v
	case *string:
		return v
	default:
		return nil
	}
}

// PageRequestFrom extracts the pagination parameters from p.
func PageRequestFrom(p Params) PageRequest {
	return PageRequest{
		Page:     p.Int64(ParamPage),
		PageSize: p.Int64(ParamPageSize),
	}
}
