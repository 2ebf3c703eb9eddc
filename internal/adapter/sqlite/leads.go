package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const leadColumns = `id, lead_type, lead_status, full_name, email, phone, message, program_id, source,
	accepts_terms, accepts_marketing, contacted_at, contacted_by, conversion_date, notes,
	created_at, updated_at`

// LeadRepository implements domain.LeadRepository using SQLite.
type LeadRepository struct {
	q querier
}

func (r *LeadRepository) Create(ctx context.Context, l domain.Lead) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, string(l.LeadType), string(l.LeadStatus), l.FullName, l.Email, l.Phone, l.Message,
		nullable(l.ProgramID), l.Source, l.AcceptsTerms, l.AcceptsMarketing,
		formatTimePtr(l.ContactedAt), l.ContactedBy, formatTimePtr(l.ConversionDate), l.Notes,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if err != nil {
		return storeErr("inserting lead", err)
	}
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	l, err := scanLead(r.q.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	if err != nil {
		return domain.Lead{}, storeErr("scanning lead", err)
	}
	return l, nil
}

// List applies the optional filters in a fixed order: type, status, email, created range.
func (r *LeadRepository) List(ctx context.Context, lf domain.LeadFilter) (domain.ListResult[domain.Lead], error) {
	var f filter
	if lf.LeadType != nil {
		f.add("lead_type = ?", string(*lf.LeadType))
	}
	if lf.LeadStatus != nil {
		f.add("lead_status = ?", string(*lf.LeadStatus))
	}
	if lf.Email != "" {
		f.add("email = ? COLLATE NOCASE", lf.Email)
	}
	if lf.CreatedFrom != nil {
		f.add("created_at >= ?", formatTime(*lf.CreatedFrom))
	}
	if lf.CreatedTo != nil {
		f.add("created_at < ?", formatTime(*lf.CreatedTo))
	}
	return list(ctx, r.q, &f, "leads", leadColumns, "created_at DESC, id", lf.ListFilter, scanLead)
}

func (r *LeadRepository) Update(ctx context.Context, l domain.Lead) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE leads SET lead_status = ?, full_name = ?, email = ?, phone = ?, message = ?,
		 contacted_at = ?, contacted_by = ?, conversion_date = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		string(l.LeadStatus), l.FullName, l.Email, l.Phone, l.Message,
		formatTimePtr(l.ContactedAt), l.ContactedBy, formatTimePtr(l.ConversionDate), l.Notes,
		formatTime(l.UpdatedAt), l.ID,
	)
	if err != nil {
		return storeErr("updating lead", err)
	}
	return affected(res, "updating lead", domain.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting lead", err)
	}
	return affected(res, "deleting lead", domain.ErrLeadNotFound)
}

func scanLead(s scanner) (domain.Lead, error) {
	var l domain.Lead
	var leadType, leadStatus, createdAt, updatedAt string
	var programID, contactedAt, conversionDate sql.NullString

	err := s.Scan(&l.ID, &leadType, &leadStatus, &l.FullName, &l.Email, &l.Phone, &l.Message,
		&programID, &l.Source, &l.AcceptsTerms, &l.AcceptsMarketing,
		&contactedAt, &l.ContactedBy, &conversionDate, &l.Notes, &createdAt, &updatedAt)
	if err != nil {
		return domain.Lead{}, err
	}

	l.LeadType = domain.LeadType(leadType)
	l.LeadStatus = domain.LeadStatus(leadStatus)
	l.ProgramID = programID.String
	l.ContactedAt = parseTimePtr(contactedAt)
	l.ConversionDate = parseTimePtr(conversionDate)
	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)

	return l, nil
}
