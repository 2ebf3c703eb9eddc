package app

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

const (
	entityProgram    = "program"
	entityInstructor = "instructor"
)

var errUnknownReference = validation.NewError("validation_unknown_reference", "references an unknown record")

// checkReference verifies that a non-empty foreign key points at an existing record.
func checkReference[T any](ctx context.Context, field, id string, get func(context.Context, string) (T, error)) error {
	if id == "" {
		return nil
	}
	_, err := get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ValidationError{Err: validation.Errors{field: errUnknownReference}}
	}
	return err
}

// ProgramService orchestrates program operations.
type ProgramService struct {
	repo           domain.ProgramRepository
	specialties    domain.SpecialtyRepository
	businessModels domain.BusinessModelRepository
	publisher      domain.EventPublisher
	lookups        guard.Lookups
}

// NewProgramService creates a service with the given adapters. The specialty and
// business model repositories are read to validate references.
func NewProgramService(
	repo domain.ProgramRepository,
	specialties domain.SpecialtyRepository,
	businessModels domain.BusinessModelRepository,
	publisher domain.EventPublisher,
) *ProgramService {
	return &ProgramService{
		repo:           repo,
		specialties:    specialties,
		businessModels: businessModels,
		publisher:      publisher,
		lookups: guard.Lookups{
			"slug": guard.OwnerID(repo.GetBySlug, func(p domain.Program) string { return p.ID }),
		},
	}
}

func (s *ProgramService) checkReferences(ctx context.Context, specialtyID, businessModelID string) error {
	if err := checkReference(ctx, "specialtyId", specialtyID, s.specialties.GetByID); err != nil {
		return err
	}
	return checkReference(ctx, "businessModelId", businessModelID, s.businessModels.GetByID)
}

// Create persists a new program after validating its references and slug.
func (s *ProgramService) Create(ctx context.Context, in domain.NewProgramInput) (domain.Program, error) {
	if err := validate(in); err != nil {
		return domain.Program{}, err
	}

	if err := s.checkReferences(ctx, in.SpecialtyID, in.BusinessModelID); err != nil {
		return domain.Program{}, err
	}

	program := domain.NewProgram(generateID(), in)

	if err := guard.Unique(ctx, entityProgram, "", s.lookups, program.UniqueFields()...); err != nil {
		return domain.Program{}, err
	}

	if err := s.repo.Create(ctx, program); err != nil {
		return domain.Program{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityProgram, domain.ActionCreated, program.ID, map[string]string{
		"slug": program.Slug,
	}))

	return program, nil
}

// Get returns a program by id.
func (s *ProgramService) Get(ctx context.Context, id string) (domain.Program, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns programs matching the given filter.
func (s *ProgramService) List(ctx context.Context, filter domain.ProgramFilter) (domain.ListResult[domain.Program], error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update.
func (s *ProgramService) Update(ctx context.Context, id string, patch domain.ProgramPatch) (domain.Program, error) {
	if err := validate(patch); err != nil {
		return domain.Program{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Program{}, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated := existing
	updated.ApplyPatch(patch, now())

	if updated.SpecialtyID != existing.SpecialtyID || updated.BusinessModelID != existing.BusinessModelID {
		if err := s.checkReferences(ctx, updated.SpecialtyID, updated.BusinessModelID); err != nil {
			return domain.Program{}, err
		}
	}

	if err := guard.Unique(ctx, entityProgram, id, s.lookups, guard.Changed(existing, updated)...); err != nil {
		return domain.Program{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Program{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityProgram, domain.ActionUpdated, updated.ID, map[string]string{
		"slug": updated.Slug,
	}))

	return updated, nil
}

// Delete removes a program.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	notify(ctx, s.publisher, domain.NewChange(entityProgram, domain.ActionDeleted, id, nil))
	return nil
}

// InstructorService orchestrates instructor operations.
type InstructorService struct {
	repo        domain.InstructorRepository
	specialties domain.SpecialtyRepository
	publisher   domain.EventPublisher
	lookups     guard.Lookups
}

// NewInstructorService creates a service with the given adapters.
func NewInstructorService(repo domain.InstructorRepository, specialties domain.SpecialtyRepository, publisher domain.EventPublisher) *InstructorService {
	return &InstructorService{
		repo:        repo,
		specialties: specialties,
		publisher:   publisher,
		lookups: guard.Lookups{
			"slug": guard.OwnerID(repo.GetBySlug, func(i domain.Instructor) string { return i.ID }),
		},
	}
}

func (s *InstructorService) checkSpecialties(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := checkReference(ctx, "specialtyIds", id, s.specialties.GetByID); err != nil {
			return err
		}
	}
	return nil
}

// Create persists a new instructor after validating specialties and slug.
func (s *InstructorService) Create(ctx context.Context, in domain.NewInstructorInput) (domain.Instructor, error) {
	if err := validate(in); err != nil {
		return domain.Instructor{}, err
	}

	if err := s.checkSpecialties(ctx, in.SpecialtyIDs); err != nil {
		return domain.Instructor{}, err
	}

	instructor := domain.NewInstructor(generateID(), in)

	if err := guard.Unique(ctx, entityInstructor, "", s.lookups, instructor.UniqueFields()...); err != nil {
		return domain.Instructor{}, err
	}

	if err := s.repo.Create(ctx, instructor); err != nil {
		return domain.Instructor{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityInstructor, domain.ActionCreated, instructor.ID, map[string]string{
		"slug": instructor.Slug,
	}))

	return instructor, nil
}

// Get returns an instructor by id.
func (s *InstructorService) Get(ctx context.Context, id string) (domain.Instructor, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns instructors matching the given filter.
func (s *InstructorService) List(ctx context.Context, filter domain.InstructorFilter) (domain.ListResult[domain.Instructor], error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update.
func (s *InstructorService) Update(ctx context.Context, id string, patch domain.InstructorPatch) (domain.Instructor, error) {
	if err := validate(patch); err != nil {
		return domain.Instructor{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Instructor{}, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	if patch.SpecialtyIDs != nil {
		if err := s.checkSpecialties(ctx, *patch.SpecialtyIDs); err != nil {
			return domain.Instructor{}, err
		}
	}

	updated := existing
	updated.ApplyPatch(patch, now())

	if err := guard.Unique(ctx, entityInstructor, id, s.lookups, guard.Changed(existing, updated)...); err != nil {
		return domain.Instructor{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Instructor{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityInstructor, domain.ActionUpdated, updated.ID, map[string]string{
		"slug": updated.Slug,
	}))

	return updated, nil
}

// Delete removes an instructor.
func (s *InstructorService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	notify(ctx, s.publisher, domain.NewChange(entityInstructor, domain.ActionDeleted, id, nil))
	return nil
}
