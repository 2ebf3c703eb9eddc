package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const legalColumns = `id, page_type, title, content, version, effective_date, is_current, is_active,
	created_at, updated_at`

// LegalPageRepository implements domain.LegalPageRepository using SQLite. A repository
// returned by WithinTx is bound to that transaction.
type LegalPageRepository struct {
	db *sql.DB
	q  querier
}

func legalFields(l domain.LegalPage) map[string]domain.Field {
	// The partial unique index on page_type only covers current records.
	return map[string]domain.Field{
		"page_type": {Name: "isCurrent", Value: l.PageType},
	}
}

// WithinTx runs fn against a repository bound to a single transaction. Calls on a
// repository that is already transactional reuse the open transaction.
func (r *LegalPageRepository) WithinTx(ctx context.Context, fn func(domain.LegalPageRepository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&LegalPageRepository{q: tx})
	})
}

func (r *LegalPageRepository) Create(ctx context.Context, l domain.LegalPage) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO legal_pages (`+legalColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.PageType, l.Title, l.Content, l.Version, formatTime(l.EffectiveDate),
		l.IsCurrent, l.IsActive, formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting legal page", "legal page", err, legalFields(l))
	}
	return nil
}

func (r *LegalPageRepository) GetByID(ctx context.Context, id string) (domain.LegalPage, error) {
	return r.getOne(ctx, `SELECT `+legalColumns+` FROM legal_pages WHERE id = ?`, id)
}

func (r *LegalPageRepository) GetCurrent(ctx context.Context, pageType string) (domain.LegalPage, error) {
	return r.getOne(ctx,
		`SELECT `+legalColumns+` FROM legal_pages WHERE page_type = ? AND is_current = 1`, pageType)
}

func (r *LegalPageRepository) getOne(ctx context.Context, query string, arg string) (domain.LegalPage, error) {
	l, err := scanLegalPage(r.q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LegalPage{}, domain.ErrLegalPageNotFound
	}
	if err != nil {
		return domain.LegalPage{}, storeErr("scanning legal page", err)
	}
	return l, nil
}

func (r *LegalPageRepository) List(ctx context.Context, lf domain.LegalPageFilter) (domain.ListResult[domain.LegalPage], error) {
	var f filter
	if lf.PageType != "" {
		f.add("page_type = ?", lf.PageType)
	}
	if lf.IsCurrent != nil {
		f.add("is_current = ?", *lf.IsCurrent)
	}
	return list(ctx, r.q, &f, "legal_pages", legalColumns, "page_type, effective_date DESC, id", lf.ListFilter, scanLegalPage)
}

func (r *LegalPageRepository) Update(ctx context.Context, l domain.LegalPage) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE legal_pages SET title = ?, content = ?, version = ?, effective_date = ?,
		 is_current = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		l.Title, l.Content, l.Version, formatTime(l.EffectiveDate),
		l.IsCurrent, l.IsActive, formatTime(l.UpdatedAt), l.ID,
	)
	if err != nil {
		return writeErr("updating legal page", "legal page", err, legalFields(l))
	}
	return affected(res, "updating legal page", domain.ErrLegalPageNotFound)
}

func (r *LegalPageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM legal_pages WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting legal page", err)
	}
	return affected(res, "deleting legal page", domain.ErrLegalPageNotFound)
}

// DemoteCurrent clears is_current on every record of pageType except exceptID.
func (r *LegalPageRepository) DemoteCurrent(ctx context.Context, pageType, exceptID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE legal_pages SET is_current = 0, updated_at = ?
		 WHERE page_type = ? AND is_current = 1 AND id != ?`,
		formatTime(time.Now()), pageType, exceptID,
	)
	if err != nil {
		return 0, storeErr("demoting legal pages", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("demoting legal pages", err)
	}
	return n, nil
}

func scanLegalPage(s scanner) (domain.LegalPage, error) {
	var l domain.LegalPage
	var effective, createdAt, updatedAt string

	err := s.Scan(&l.ID, &l.PageType, &l.Title, &l.Content, &l.Version, &effective,
		&l.IsCurrent, &l.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return domain.LegalPage{}, err
	}

	l.EffectiveDate = parseTime(effective)
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)

	return l, nil
}
