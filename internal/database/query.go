package database

import (
	"strings"

	"gorm.io/gorm"
)

const DefaultListLimit = 100

// ListOptions carries the limit/offset/ordering/search query parameters of
// the list endpoints. Ordering names are validated against a per-endpoint
// whitelist before they reach SQL.
type ListOptions struct {
	Limit    int
	Offset   int
	Ordering string
	Search   string
}

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// orderClause maps the requested ordering to a column from the whitelist,
// honouring a "-" prefix for descending order. Unknown names fall back to
// the default.
func (o ListOptions) orderClause(allowed map[string]string, def string) string {
	name := o.Ordering
	desc := strings.HasPrefix(name, "-")
	name = strings.TrimPrefix(name, "-")

	column, ok := allowed[name]
	if !ok {
		return def
	}
	if desc {
		return column + " DESC"
	}
	return column
}

func applySearch(q *gorm.DB, search string, columns ...string) *gorm.DB {
	if search == "" {
		return q
	}
	pattern := "%" + search + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " LIKE ?"
		args[i] = pattern
	}
	return q.Where(strings.Join(clauses, " OR "), args...)
}
