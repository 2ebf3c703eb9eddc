package app

import (
	"context"

	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

const entityBusinessModel = "business model"

// BusinessModelService orchestrates business model operations.
type BusinessModelService struct {
	repo      domain.BusinessModelRepository
	publisher domain.EventPublisher
	policy    guard.Policy
	lookups   guard.Lookups
}

// NewBusinessModelService creates a service with the given adapters. Business models
// whose internal code is in protected cannot be deleted.
func NewBusinessModelService(repo domain.BusinessModelRepository, publisher domain.EventPublisher, protected guard.Set) *BusinessModelService {
	modelID := func(m domain.BusinessModel) string { return m.ID }
	return &BusinessModelService{
		repo:      repo,
		publisher: publisher,
		policy: guard.Policy{
			Entity:      entityBusinessModel,
			Alternative: "isActive=false",
			Protected:   protected,
		},
		lookups: guard.Lookups{
			"internalCode": guard.OwnerID(repo.GetByInternalCode, modelID),
			"slug":         guard.OwnerID(repo.GetBySlug, modelID),
		},
	}
}

// Create persists a new business model. internalCode is checked before slug.
func (s *BusinessModelService) Create(ctx context.Context, in domain.NewBusinessModelInput) (domain.BusinessModel, error) {
	if err := validate(in); err != nil {
		return domain.BusinessModel{}, err
	}

	model := domain.NewBusinessModel(generateID(), in)

	if err := guard.Unique(ctx, entityBusinessModel, "", s.lookups, model.UniqueFields()...); err != nil {
		return domain.BusinessModel{}, err
	}

	if err := s.repo.Create(ctx, model); err != nil {
		return domain.BusinessModel{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityBusinessModel, domain.ActionCreated, model.ID, map[string]string{
		"internal_code": model.InternalCode,
	}))

	return model, nil
}

// Get returns a business model by id.
func (s *BusinessModelService) Get(ctx context.Context, id string) (domain.BusinessModel, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns business models matching the given filter.
func (s *BusinessModelService) List(ctx context.Context, filter domain.BusinessModelFilter) (domain.ListResult[domain.BusinessModel], error) {
	return s.repo.List(ctx, filter)
}

// ListPublic returns the active business models shown on the public site.
func (s *BusinessModelService) ListPublic(ctx context.Context) ([]domain.BusinessModel, error) {
	yes := true
	res, err := s.repo.List(ctx, domain.BusinessModelFilter{IsActive: &yes, ShowOnWeb: &yes})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Update applies a partial update, re-checking only the guarded keys that change.
func (s *BusinessModelService) Update(ctx context.Context, id string, patch domain.BusinessModelPatch) (domain.BusinessModel, error) {
	if err := validate(patch); err != nil {
		return domain.BusinessModel{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.BusinessModel{}, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated := existing
	updated.ApplyPatch(patch, now())

	if err := guard.Unique(ctx, entityBusinessModel, id, s.lookups, guard.Changed(existing, updated)...); err != nil {
		return domain.BusinessModel{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.BusinessModel{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityBusinessModel, domain.ActionUpdated, updated.ID, map[string]string{
		"internal_code": updated.InternalCode,
	}))

	return updated, nil
}

// Delete removes a business model unless its internal code is protected.
func (s *BusinessModelService) Delete(ctx context.Context, id string) error {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.Guard(model); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	notify(ctx, s.publisher, domain.NewChange(entityBusinessModel, domain.ActionDeleted, id, map[string]string{
		"internal_code": model.InternalCode,
	}))
	return nil
}
