package app

import (
	"context"

	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

const entitySpecialty = "specialty"

// SpecialtyService orchestrates specialty operations.
type SpecialtyService struct {
	repo      domain.SpecialtyRepository
	publisher domain.EventPublisher
	policy    guard.Policy
	lookups   guard.Lookups
}

// NewSpecialtyService creates a service with the given adapters. Specialties whose
// slug is in protected cannot be deleted, and no specialty can be deleted while
// programs or instructors reference it.
func NewSpecialtyService(repo domain.SpecialtyRepository, publisher domain.EventPublisher, protected guard.Set) *SpecialtyService {
	return &SpecialtyService{
		repo:      repo,
		publisher: publisher,
		policy: guard.Policy{
			Entity:      entitySpecialty,
			Alternative: "showOnWeb=false",
			Protected:   protected,
		},
		lookups: guard.Lookups{
			"slug": guard.OwnerID(repo.GetBySlug, func(s domain.Specialty) string { return s.ID }),
		},
	}
}

// Create persists a new specialty after checking slug uniqueness.
func (s *SpecialtyService) Create(ctx context.Context, in domain.NewSpecialtyInput) (domain.Specialty, error) {
	if err := validate(in); err != nil {
		return domain.Specialty{}, err
	}

	specialty := domain.NewSpecialty(generateID(), in)

	if err := guard.Unique(ctx, entitySpecialty, "", s.lookups, specialty.UniqueFields()...); err != nil {
		return domain.Specialty{}, err
	}

	if err := s.repo.Create(ctx, specialty); err != nil {
		return domain.Specialty{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entitySpecialty, domain.ActionCreated, specialty.ID, map[string]string{
		"slug": specialty.Slug,
	}))

	return specialty, nil
}

// Get returns a specialty by id.
func (s *SpecialtyService) Get(ctx context.Context, id string) (domain.Specialty, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns specialties matching the given filter.
func (s *SpecialtyService) List(ctx context.Context, filter domain.SpecialtyFilter) (domain.ListResult[domain.Specialty], error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update.
func (s *SpecialtyService) Update(ctx context.Context, id string, patch domain.SpecialtyPatch) (domain.Specialty, error) {
	if err := validate(patch); err != nil {
		return domain.Specialty{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Specialty{}, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated := existing
	updated.ApplyPatch(patch, now())

	if err := guard.Unique(ctx, entitySpecialty, id, s.lookups, guard.Changed(existing, updated)...); err != nil {
		return domain.Specialty{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Specialty{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entitySpecialty, domain.ActionUpdated, updated.ID, map[string]string{
		"slug": updated.Slug,
	}))

	return updated, nil
}

// Delete removes a specialty. The usage check runs before the allow-list check and
// both must pass.
func (s *SpecialtyService) Delete(ctx context.Context, id string) error {
	specialty, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := guard.Referenced(ctx, entitySpecialty, id, s.usage); err != nil {
		return err
	}

	if err := s.policy.Guard(specialty); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	notify(ctx, s.publisher, domain.NewChange(entitySpecialty, domain.ActionDeleted, id, map[string]string{
		"slug": specialty.Slug,
	}))
	return nil
}

func (s *SpecialtyService) usage(ctx context.Context, id string) (map[string]int, error) {
	u, err := s.repo.Usage(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.References(), nil
}
