package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const specialtyColumns = `id, slug, name, description, is_active, show_on_web, created_at, updated_at`

// SpecialtyRepository implements domain.SpecialtyRepository using SQLite.
type SpecialtyRepository struct {
	q querier
}

func slugField(slug string) map[string]domain.Field {
	return map[string]domain.Field{"slug": {Name: "slug", Value: slug}}
}

func (r *SpecialtyRepository) Create(ctx context.Context, s domain.Specialty) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO specialties (`+specialtyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Slug, s.Name, s.Description, s.IsActive, s.ShowOnWeb,
		formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting specialty", "specialty", err, slugField(s.Slug))
	}
	return nil
}

func (r *SpecialtyRepository) GetByID(ctx context.Context, id string) (domain.Specialty, error) {
	return r.getOne(ctx, "id", id)
}

func (r *SpecialtyRepository) GetBySlug(ctx context.Context, slug string) (domain.Specialty, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *SpecialtyRepository) getOne(ctx context.Context, column, value string) (domain.Specialty, error) {
	s, err := scanSpecialty(r.q.QueryRowContext(ctx,
		`SELECT `+specialtyColumns+` FROM specialties WHERE `+column+` = ?`, value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Specialty{}, domain.ErrSpecialtyNotFound
	}
	if err != nil {
		return domain.Specialty{}, storeErr("scanning specialty", err)
	}
	return s, nil
}

func (r *SpecialtyRepository) List(ctx context.Context, sf domain.SpecialtyFilter) (domain.ListResult[domain.Specialty], error) {
	var f filter
	if sf.IsActive != nil {
		f.add("is_active = ?", *sf.IsActive)
	}
	if sf.ShowOnWeb != nil {
		f.add("show_on_web = ?", *sf.ShowOnWeb)
	}
	return list(ctx, r.q, &f, "specialties", specialtyColumns, "name, id", sf.ListFilter, scanSpecialty)
}

func (r *SpecialtyRepository) Update(ctx context.Context, s domain.Specialty) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE specialties SET slug = ?, name = ?, description = ?, is_active = ?, show_on_web = ?,
		 updated_at = ?
		 WHERE id = ?`,
		s.Slug, s.Name, s.Description, s.IsActive, s.ShowOnWeb, formatTime(s.UpdatedAt), s.ID,
	)
	if err != nil {
		return writeErr("updating specialty", "specialty", err, slugField(s.Slug))
	}
	return affected(res, "updating specialty", domain.ErrSpecialtyNotFound)
}

func (r *SpecialtyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM specialties WHERE id = ?`, id)
	if err != nil && isForeignKeyViolation(err) {
		// A reference appeared after the usage check; report it like the guard does.
		u, uerr := r.Usage(ctx, id)
		if uerr != nil {
			return uerr
		}
		return &domain.ReferentialError{Entity: "specialty", ID: id, References: u.References()}
	}
	if err != nil {
		return storeErr("deleting specialty", err)
	}
	return affected(res, "deleting specialty", domain.ErrSpecialtyNotFound)
}

// Usage counts programs and instructors that reference the specialty.
func (r *SpecialtyRepository) Usage(ctx context.Context, id string) (domain.SpecialtyUsage, error) {
	var u domain.SpecialtyUsage
	err := r.q.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM programs WHERE specialty_id = ?),
		   (SELECT COUNT(*) FROM instructor_specialties WHERE specialty_id = ?)`,
		id, id,
	).Scan(&u.Programs, &u.Instructors)
	if err != nil {
		return domain.SpecialtyUsage{}, storeErr("counting specialty usage", err)
	}
	return u, nil
}

func scanSpecialty(s scanner) (domain.Specialty, error) {
	var sp domain.Specialty
	var createdAt, updatedAt string

	err := s.Scan(&sp.ID, &sp.Slug, &sp.Name, &sp.Description, &sp.IsActive, &sp.ShowOnWeb, &createdAt, &updatedAt)
	if err != nil {
		return domain.Specialty{}, err
	}

	sp.CreatedAt = parseTime(createdAt)
	sp.UpdatedAt = parseTime(updatedAt)

	return sp, nil
}

const programColumns = `id, slug, title, summary, specialty_id, business_model_id, is_active,
	display_order, created_at, updated_at`

// ProgramRepository implements domain.ProgramRepository using SQLite.
type ProgramRepository struct {
	q querier
}

func (r *ProgramRepository) Create(ctx context.Context, p domain.Program) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO programs (`+programColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Summary, nullable(p.SpecialtyID), nullable(p.BusinessModelID),
		p.IsActive, p.DisplayOrder, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting program", "program", err, slugField(p.Slug))
	}
	return nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, id string) (domain.Program, error) {
	return r.getOne(ctx, "id", id)
}

func (r *ProgramRepository) GetBySlug(ctx context.Context, slug string) (domain.Program, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *ProgramRepository) getOne(ctx context.Context, column, value string) (domain.Program, error) {
	p, err := scanProgram(r.q.QueryRowContext(ctx,
		`SELECT `+programColumns+` FROM programs WHERE `+column+` = ?`, value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Program{}, domain.ErrProgramNotFound
	}
	if err != nil {
		return domain.Program{}, storeErr("scanning program", err)
	}
	return p, nil
}

func (r *ProgramRepository) List(ctx context.Context, pf domain.ProgramFilter) (domain.ListResult[domain.Program], error) {
	var f filter
	if pf.SpecialtyID != "" {
		f.add("specialty_id = ?", pf.SpecialtyID)
	}
	if pf.BusinessModelID != "" {
		f.add("business_model_id = ?", pf.BusinessModelID)
	}
	if pf.IsActive != nil {
		f.add("is_active = ?", *pf.IsActive)
	}
	return list(ctx, r.q, &f, "programs", programColumns, "display_order, title, id", pf.ListFilter, scanProgram)
}

func (r *ProgramRepository) Update(ctx context.Context, p domain.Program) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE programs SET slug = ?, title = ?, summary = ?, specialty_id = ?, business_model_id = ?,
		 is_active = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		p.Slug, p.Title, p.Summary, nullable(p.SpecialtyID), nullable(p.BusinessModelID),
		p.IsActive, p.DisplayOrder, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return writeErr("updating program", "program", err, slugField(p.Slug))
	}
	return affected(res, "updating program", domain.ErrProgramNotFound)
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting program", err)
	}
	return affected(res, "deleting program", domain.ErrProgramNotFound)
}

func scanProgram(s scanner) (domain.Program, error) {
	var p domain.Program
	var specialtyID, businessModelID sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&p.ID, &p.Slug, &p.Title, &p.Summary, &specialtyID, &businessModelID,
		&p.IsActive, &p.DisplayOrder, &createdAt, &updatedAt)
	if err != nil {
		return domain.Program{}, err
	}

	p.SpecialtyID = specialtyID.String
	p.BusinessModelID = businessModelID.String
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	return p, nil
}

// The specialty ids are folded into one column in assignment order.
const instructorColumns = `id, slug, full_name, bio, is_active, created_at, updated_at,
	COALESCE((SELECT group_concat(specialty_id, ',' ORDER BY position)
	          FROM instructor_specialties WHERE instructor_id = instructors.id), '')`

// InstructorRepository implements domain.InstructorRepository using SQLite.
// Writes span the instructors and instructor_specialties tables in one transaction.
type InstructorRepository struct {
	db *sql.DB
}

func (r *InstructorRepository) Create(ctx context.Context, i domain.Instructor) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO instructors (id, slug, full_name, bio, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i.ID, i.Slug, i.FullName, i.Bio, i.IsActive, formatTime(i.CreatedAt), formatTime(i.UpdatedAt),
		)
		if err != nil {
			return writeErr("inserting instructor", "instructor", err, slugField(i.Slug))
		}
		return assignSpecialties(ctx, tx, i.ID, i.SpecialtyIDs)
	})
}

func (r *InstructorRepository) GetByID(ctx context.Context, id string) (domain.Instructor, error) {
	return r.getOne(ctx, "id", id)
}

func (r *InstructorRepository) GetBySlug(ctx context.Context, slug string) (domain.Instructor, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *InstructorRepository) getOne(ctx context.Context, column, value string) (domain.Instructor, error) {
	i, err := scanInstructor(r.db.QueryRowContext(ctx,
		`SELECT `+instructorColumns+` FROM instructors WHERE `+column+` = ?`, value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Instructor{}, domain.ErrInstructorNotFound
	}
	if err != nil {
		return domain.Instructor{}, storeErr("scanning instructor", err)
	}
	return i, nil
}

func (r *InstructorRepository) List(ctx context.Context, inf domain.InstructorFilter) (domain.ListResult[domain.Instructor], error) {
	var f filter
	if inf.SpecialtyID != "" {
		f.add("id IN (SELECT instructor_id FROM instructor_specialties WHERE specialty_id = ?)", inf.SpecialtyID)
	}
	if inf.IsActive != nil {
		f.add("is_active = ?", *inf.IsActive)
	}
	return list(ctx, r.db, &f, "instructors", instructorColumns, "full_name, id", inf.ListFilter, scanInstructor)
}

func (r *InstructorRepository) Update(ctx context.Context, i domain.Instructor) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE instructors SET slug = ?, full_name = ?, bio = ?, is_active = ?, updated_at = ?
			 WHERE id = ?`,
			i.Slug, i.FullName, i.Bio, i.IsActive, formatTime(i.UpdatedAt), i.ID,
		)
		if err != nil {
			return writeErr("updating instructor", "instructor", err, slugField(i.Slug))
		}
		if err := affected(res, "updating instructor", domain.ErrInstructorNotFound); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_specialties WHERE instructor_id = ?`, i.ID); err != nil {
			return storeErr("clearing instructor specialties", err)
		}
		return assignSpecialties(ctx, tx, i.ID, i.SpecialtyIDs)
	})
}

func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instructors WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting instructor", err)
	}
	return affected(res, "deleting instructor", domain.ErrInstructorNotFound)
}

func assignSpecialties(ctx context.Context, tx *sql.Tx, instructorID string, specialtyIDs []string) error {
	seen := make(map[string]bool, len(specialtyIDs))
	position := 0
	for _, sid := range specialtyIDs {
		if seen[sid] {
			continue
		}
		seen[sid] = true
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO instructor_specialties (instructor_id, specialty_id, position) VALUES (?, ?, ?)`,
			instructorID, sid, position,
		); err != nil {
			return storeErr("assigning instructor specialty", err)
		}
		position++
	}
	return nil
}

func scanInstructor(s scanner) (domain.Instructor, error) {
	var i domain.Instructor
	var createdAt, updatedAt, specialties string

	err := s.Scan(&i.ID, &i.Slug, &i.FullName, &i.Bio, &i.IsActive, &createdAt, &updatedAt, &specialties)
	if err != nil {
		return domain.Instructor{}, err
	}

	i.SpecialtyIDs = []string{}
	if specialties != "" {
		i.SpecialtyIDs = strings.Split(specialties, ",")
	}
	i.CreatedAt = parseTime(createdAt)
	i.UpdatedAt = parseTime(updatedAt)

	return i, nil
}
