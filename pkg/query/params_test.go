package query

import "testing"

func TestParams_Int64(t *testing.T) {
	n64 := int64(7)
	n := 9
	var nilInt64 *int64
	var nilInt *int

	tests := []struct {
		name   string
		params Params
		want   *int64
	}{
		{name: "int64 value", params: Params{"page": int64(3)}, want: int64Ptr(3)},
		{name: "int64 pointer", params: Params{"page": &n64}, want: int64Ptr(7)},
		{name: "int value", params: Params{"page": 5}, want: int64Ptr(5)},
		{name: "int pointer", params: Params{"page": &n}, want: int64Ptr(9)},
		{name: "nil int64 pointer", params: Params{"page": nilInt64}},
		{name: "nil int pointer", params: Params{"page": nilInt}},
		{name: "missing key", params: Params{}},
		{name: "wrong type reads as absent", params: Params{"page": "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Int64("page")
			if tt.want == nil {
				if got != nil {
					t.Errorf("Int64() = %d, want nil", *got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("Int64() = %v, want %d", got, *tt.want)
			}
		})
	}
}

func TestParams_String(t *testing.T) {
	s := "email.desc"
	var nilStr *string

	tests := []struct {
		name   string
		params Params
		want   *string
	}{
		{name: "string value", params: Params{"sort_by": "email"}, want: &s},
		{name: "string pointer", params: Params{"sort_by": &s}, want: &s},
		{name: "nil string pointer", params: Params{"sort_by": nilStr}},
		{name: "missing key", params: Params{}},
		{name: "wrong type reads as absent", params: Params{"sort_by": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.String("sort_by")
			if tt.want == nil {
				if got != nil {
					t.Errorf("String() = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("String() = nil, want value")
			}
		})
	}
}

func TestPageRequestFrom(t *testing.T) {
	req := PageRequestFrom(Params{
		ParamPage:     int64(2),
		ParamPageSize: 25,
	})
	if req.Page == nil || *req.Page != 2 {
		t.Errorf("Page = %v, want 2", req.Page)
	}
	if req.PageSize == nil || *req.PageSize != 25 {
		t.Errorf("PageSize = %v, want 25", req.PageSize)
	}

	empty := PageRequestFrom(Params{})
	if empty.Paginated() {
		t.Error("empty params must not request pagination")
	}
}
