package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Timestamps are stored as fixed-width UTC text so they sort and compare
// lexicographically.
const timeFormat = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeFormat, s)
	return t
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

// nullable stores an empty reference as NULL so foreign keys accept it.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func storeErr(op string, err error) error {
	return &domain.StoreError{Op: op, Err: err}
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation checks if a SQLite error is a FOREIGN KEY constraint violation.
func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// violatedColumn extracts the first column named in a UNIQUE constraint error,
// e.g. "slug" from "UNIQUE constraint failed: pages.slug".
func violatedColumn(err error) string {
	msg := err.Error()
	i := strings.Index(msg, "UNIQUE constraint failed: ")
	if i < 0 {
		return ""
	}
	rest := msg[i+len("UNIQUE constraint failed: "):]
	if j := strings.IndexAny(rest, ", )"); j >= 0 {
		rest = rest[:j]
	}
	if k := strings.LastIndexByte(rest, '.'); k >= 0 {
		rest = rest[k+1:]
	}
	return rest
}

// writeErr translates a store-level unique violation into the same ConflictError the
// guards return. fields maps column names to guarded field names and values.
func writeErr(op, entity string, err error, fields map[string]domain.Field) error {
	if isUniqueViolation(err) {
		if f, ok := fields[violatedColumn(err)]; ok {
			return &domain.ConflictError{Entity: entity, Field: f.Name, Value: f.Value}
		}
	}
	return storeErr(op, err)
}

// list runs the count and the paginated select of a filtered list query.
func list[T any](
	ctx context.Context,
	q querier,
	f *filter,
	table, columns, orderBy string,
	lf domain.ListFilter,
	scan func(scanner) (T, error),
) (domain.ListResult[T], error) {
	countQuery, countArgs := f.count(table)
	var total int
	if err := q.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return domain.ListResult[T]{}, storeErr("counting "+table, err)
	}

	query, args := f.page("SELECT "+columns+" FROM "+table, orderBy, lf)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.ListResult[T]{}, storeErr("listing "+table, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return domain.ListResult[T]{}, storeErr("scanning "+table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.ListResult[T]{}, storeErr("listing "+table, err)
	}

	return domain.ListResult[T]{Items: items, Total: total}, nil
}

// exists reports whether a row with id is present in table.
func exists(ctx context.Context, q querier, table, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("checking "+table, err)
	}
	return true, nil
}

// affected maps a zero-row write to notFound.
func affected(res sql.Result, op string, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
