package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const pageColumns = `id, page_key, slug, title, content, meta_title, meta_description, status,
	version, published_version, published_at, created_at, updated_at`

// PageRepository implements domain.PageRepository using SQLite.
type PageRepository struct {
	q querier
}

func pageFields(p domain.Page) map[string]domain.Field {
	return map[string]domain.Field{
		"page_key": {Name: "pageKey", Value: p.PageKey},
		"slug":     {Name: "slug", Value: p.Slug},
	}
}

func (r *PageRepository) Create(ctx context.Context, p domain.Page) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO pages (`+pageColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.PageKey, p.Slug, p.Title, p.Content, p.MetaTitle, p.MetaDescription, string(p.Status),
		p.Version, p.PublishedVersion, formatTimePtr(p.PublishedAt),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting page", "page", err, pageFields(p))
	}
	return nil
}

func (r *PageRepository) GetByID(ctx context.Context, id string) (domain.Page, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PageRepository) GetBySlug(ctx context.Context, slug string) (domain.Page, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *PageRepository) GetByPageKey(ctx context.Context, pageKey string) (domain.Page, error) {
	return r.getOne(ctx, "page_key", pageKey)
}

func (r *PageRepository) getOne(ctx context.Context, column, value string) (domain.Page, error) {
	p, err := scanPage(r.q.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE `+column+` = ?`, value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Page{}, domain.ErrPageNotFound
	}
	if err != nil {
		return domain.Page{}, storeErr("scanning page", err)
	}
	return p, nil
}

func (r *PageRepository) List(ctx context.Context, pf domain.PageFilter) (domain.ListResult[domain.Page], error) {
	var f filter
	if pf.Status != nil {
		f.add("status = ?", string(*pf.Status))
	}
	if pf.PageKey != "" {
		f.add("page_key = ?", pf.PageKey)
	}
	return list(ctx, r.q, &f, "pages", pageColumns, "created_at DESC, id", pf.ListFilter, scanPage)
}

// Update writes the page only if the stored version still equals expectedVersion.
// A lost race is reported as a version ConflictError.
func (r *PageRepository) Update(ctx context.Context, p domain.Page, expectedVersion int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE pages SET page_key = ?, slug = ?, title = ?, content = ?, meta_title = ?,
		 meta_description = ?, status = ?, version = ?, published_version = ?, published_at = ?,
		 updated_at = ?
		 WHERE id = ? AND version = ?`,
		p.PageKey, p.Slug, p.Title, p.Content, p.MetaTitle, p.MetaDescription, string(p.Status),
		p.Version, p.PublishedVersion, formatTimePtr(p.PublishedAt), formatTime(p.UpdatedAt),
		p.ID, expectedVersion,
	)
	if err != nil {
		return writeErr("updating page", "page", err, pageFields(p))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("checking rows affected", err)
	}
	if n > 0 {
		return nil
	}

	found, err := exists(ctx, r.q, "pages", p.ID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrPageNotFound
	}
	return &domain.ConflictError{Entity: "page", Field: "version", Value: strconv.Itoa(expectedVersion)}
}

func (r *PageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting page", err)
	}
	return affected(res, "deleting page", domain.ErrPageNotFound)
}

func scanPage(s scanner) (domain.Page, error) {
	var p domain.Page
	var status, createdAt, updatedAt string
	var publishedVersion sql.NullInt64
	var publishedAt sql.NullString

	err := s.Scan(&p.ID, &p.PageKey, &p.Slug, &p.Title, &p.Content, &p.MetaTitle, &p.MetaDescription,
		&status, &p.Version, &publishedVersion, &publishedAt, &createdAt, &updatedAt)
	if err != nil {
		return domain.Page{}, err
	}

	p.Status = domain.PageStatus(status)
	if publishedVersion.Valid {
		v := int(publishedVersion.Int64)
		p.PublishedVersion = &v
	}
	p.PublishedAt = parseTimePtr(publishedAt)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	return p, nil
}
