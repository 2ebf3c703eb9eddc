package sqlite

import (
	"strings"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// filter accumulates predicate and parameter pairs for a dynamic WHERE clause.
// Predicates keep the order they were added in.
type filter struct {
	preds []string
	args  []any
}

// add appends a predicate with a single positional parameter.
func (f *filter) add(pred string, arg any) {
	f.preds = append(f.preds, pred)
	f.args = append(f.args, arg)
}

func (f *filter) where() string {
	if len(f.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.preds, " AND ")
}

// count builds the unpaginated count query for table.
func (f *filter) count(table string) (string, []any) {
	return "SELECT COUNT(*) FROM " + table + f.where(), f.args
}

// page builds the paginated select. SQLite requires a LIMIT before OFFSET,
// so -1 stands in for "no limit".
func (f *filter) page(selectFrom, orderBy string, lf domain.ListFilter) (string, []any) {
	query := selectFrom + f.where() + " ORDER BY " + orderBy
	args := append([]any(nil), f.args...)

	if lf.Limit > 0 || lf.Offset > 0 {
		limit := lf.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ?"
		args = append(args, limit)
		if lf.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, lf.Offset)
		}
	}
	return query, args
}
