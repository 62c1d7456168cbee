package postgres

import "strings"

// OrderClause translates an "field_ASC" / "field_DESC" sort expression from
// the API into a SQL ORDER BY clause. allowed maps API field names to column
// names; anything not in the map, and any malformed expression, falls back
// to fallback. The returned clause is built only from allowed column names
// and the two fixed direction keywords, never from raw input.
func OrderClause(orderBy string, allowed map[string]string, fallback string) string {
	if orderBy == "" {
		return fallback
	}

	field, dir := orderBy, "ASC"
	if i := strings.LastIndex(orderBy, "_"); i >= 0 {
		suffix := orderBy[i+1:]
		if suffix == "ASC" || suffix == "DESC" {
			field, dir = orderBy[:i], suffix
		}
	}

	col, ok := allowed[field]
	if !ok {
		return fallback
	}
	return col + " " + dir
}
