package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const businessModelColumns = `id, internal_code, slug, name, description, is_active, show_on_web,
	display_order, created_at, updated_at`

// BusinessModelRepository implements domain.BusinessModelRepository using SQLite.
type BusinessModelRepository struct {
	q querier
}

func businessModelFields(b domain.BusinessModel) map[string]domain.Field {
	return map[string]domain.Field{
		"internal_code": {Name: "internalCode", Value: b.InternalCode},
		"slug":          {Name: "slug", Value: b.Slug},
	}
}

func (r *BusinessModelRepository) Create(ctx context.Context, b domain.BusinessModel) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO business_models (`+businessModelColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.InternalCode, b.Slug, b.Name, b.Description, b.IsActive, b.ShowOnWeb,
		b.DisplayOrder, formatTime(b.CreatedAt), formatTime(b.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting business model", "business model", err, businessModelFields(b))
	}
	return nil
}

func (r *BusinessModelRepository) GetByID(ctx context.Context, id string) (domain.BusinessModel, error) {
	return r.getOne(ctx, "id", id)
}

func (r *BusinessModelRepository) GetByInternalCode(ctx context.Context, code string) (domain.BusinessModel, error) {
	return r.getOne(ctx, "internal_code", code)
}

func (r *BusinessModelRepository) GetBySlug(ctx context.Context, slug string) (domain.BusinessModel, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *BusinessModelRepository) getOne(ctx context.Context, column, value string) (domain.BusinessModel, error) {
	b, err := scanBusinessModel(r.q.QueryRowContext(ctx,
		`SELECT `+businessModelColumns+` FROM business_models WHERE `+column+` = ?`, value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BusinessModel{}, domain.ErrBusinessModelNotFound
	}
	if err != nil {
		return domain.BusinessModel{}, storeErr("scanning business model", err)
	}
	return b, nil
}

func (r *BusinessModelRepository) List(ctx context.Context, bf domain.BusinessModelFilter) (domain.ListResult[domain.BusinessModel], error) {
	var f filter
	if bf.IsActive != nil {
		f.add("is_active = ?", *bf.IsActive)
	}
	if bf.ShowOnWeb != nil {
		f.add("show_on_web = ?", *bf.ShowOnWeb)
	}
	return list(ctx, r.q, &f, "business_models", businessModelColumns, "display_order, name, id", bf.ListFilter, scanBusinessModel)
}

func (r *BusinessModelRepository) Update(ctx context.Context, b domain.BusinessModel) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE business_models SET internal_code = ?, slug = ?, name = ?, description = ?,
		 is_active = ?, show_on_web = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		b.InternalCode, b.Slug, b.Name, b.Description, b.IsActive, b.ShowOnWeb, b.DisplayOrder,
		formatTime(b.UpdatedAt), b.ID,
	)
	if err != nil {
		return writeErr("updating business model", "business model", err, businessModelFields(b))
	}
	return affected(res, "updating business model", domain.ErrBusinessModelNotFound)
}

func (r *BusinessModelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM business_models WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting business model", err)
	}
	return affected(res, "deleting business model", domain.ErrBusinessModelNotFound)
}

func scanBusinessModel(s scanner) (domain.BusinessModel, error) {
	var b domain.BusinessModel
	var createdAt, updatedAt string

	err := s.Scan(&b.ID, &b.InternalCode, &b.Slug, &b.Name, &b.Description, &b.IsActive, &b.ShowOnWeb,
		&b.DisplayOrder, &createdAt, &updatedAt)
	if err != nil {
		return domain.BusinessModel{}, err
	}

	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)

	return b, nil
}
