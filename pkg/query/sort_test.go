package query

import "testing"

func TestSortMapping_Resolve(t *testing.T) {
	mapping := SortMapping{
		{Name: "id", Column: "users.id"},
		{Name: "email", Column: "users.email"},
		{Name: "created_at", Column: "users.created_at"},
	}

	tests := []struct {
		name    string
		token   string
		want    Ordering
		matched bool
	}{
		{
			name:    "bare name sorts ascending",
			token:   "email",
			want:    Ordering{Column: "users.email", Direction: Asc},
			matched: true,
		},
		{
			name:    "explicit asc suffix",
			token:   "email.asc",
			want:    Ordering{Column: "users.email", Direction: Asc},
			matched: true,
		},
		{
			name:    "explicit desc suffix",
			token:   "created_at.desc",
			want:    Ordering{Column: "users.created_at", Direction: Desc},
			matched: true,
		},
		{name: "empty token", token: ""},
		{name: "unknown name", token: "password"},
		{name: "unknown name with suffix", token: "password.desc"},
		{name: "bad suffix", token: "email.descending"},
		{name: "case sensitive", token: "EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := mapping.Resolve(tt.token)
			if matched != tt.matched {
				t.Fatalf("Resolve(%q) matched = %v, want %v", tt.token, matched, tt.matched)
			}
			if matched && got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestSortMapping_ResolveDuplicatePriority(t *testing.T) {
	mapping := SortMapping{
		{Name: "name", Column: "users.display_name"},
		{Name: "name", Column: "users.login_name"},
	}

	got, matched := mapping.Resolve("name")
	if !matched {
		t.Fatal("expected a match")
	}
	if got.Column != "users.display_name" {
		t.Errorf("first mapping entry should win, got column %q", got.Column)
	}
}
