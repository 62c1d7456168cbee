package postgres

import "testing"

func TestOrderClause(t *testing.T) {
	t.Parallel()

	allowed := map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	}
	const fallback = "created_at DESC"

	cases := []struct {
		orderBy string
		want    string
	}{
		{"", fallback},
		{"name_ASC", "name ASC"},
		{"name_DESC", "name DESC"},
		{"createdAt_DESC", "created_at DESC"},
		{"name", "name ASC"},
		{"unknown_ASC", fallback},
		{"name_BOGUS", fallback},
		{"created_at; DROP TABLE x", fallback},
	}
	for _, tc := range cases {
		if got := OrderClause(tc.orderBy, allowed, fallback); got != tc.want {
			t.Errorf("OrderClause(%q) = %q, want %q", tc.orderBy, got, tc.want)
		}
	}
}
