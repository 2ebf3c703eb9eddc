package app

import (
	"context"

	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

const entityLegalPage = "legal page"

// LegalPageService orchestrates legal page operations and keeps one current
// record per page type.
type LegalPageService struct {
	repo      domain.LegalPageRepository
	publisher domain.EventPublisher
	policy    guard.Policy
}

// NewLegalPageService creates a service with the given adapters. Legal pages whose
// type is in protected cannot be deleted.
func NewLegalPageService(repo domain.LegalPageRepository, publisher domain.EventPublisher, protected guard.Set) *LegalPageService {
	return &LegalPageService{
		repo:      repo,
		publisher: publisher,
		policy: guard.Policy{
			Entity:      entityLegalPage,
			Alternative: "isActive=false",
			Protected:   protected,
		},
	}
}

// Create persists a new legal page. When it is created as current, the previous
// current page of the same type is demoted in the same transaction.
func (s *LegalPageService) Create(ctx context.Context, in domain.NewLegalPageInput) (domain.LegalPage, error) {
	if err := validate(in); err != nil {
		return domain.LegalPage{}, err
	}

	page := domain.NewLegalPage(generateID(), in)

	promote := guard.NeedsPromotion(nil, page)

	var err error
	if promote {
		err = s.repo.WithinTx(ctx, func(tx domain.LegalPageRepository) error {
			if _, err := guard.Promote(ctx, tx, page.ID, page); err != nil {
				return err
			}
			return tx.Create(ctx, page)
		})
	} else {
		err = s.repo.Create(ctx, page)
	}
	if err != nil {
		return domain.LegalPage{}, err
	}

	action := domain.ActionCreated
	if promote {
		action = domain.ActionPromoted
	}
	notify(ctx, s.publisher, domain.NewChange(entityLegalPage, action, page.ID, map[string]string{
		"page_type": page.PageType,
		"version":   page.Version,
	}))

	return page, nil
}

// Get returns a legal page by id.
func (s *LegalPageService) Get(ctx context.Context, id string) (domain.LegalPage, error) {
	return s.repo.GetByID(ctx, id)
}

// GetCurrent returns the current legal page of the given type.
func (s *LegalPageService) GetCurrent(ctx context.Context, pageType string) (domain.LegalPage, error) {
	return s.repo.GetCurrent(ctx, pageType)
}

// List returns legal pages matching the given filter.
func (s *LegalPageService) List(ctx context.Context, filter domain.LegalPageFilter) (domain.ListResult[domain.LegalPage], error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update. Setting isCurrent to true demotes the other
// current page of the same type in the same transaction; the demotion is skipped
// when the page already is the current one.
func (s *LegalPageService) Update(ctx context.Context, id string, patch domain.LegalPagePatch) (domain.LegalPage, error) {
	if err := validate(patch); err != nil {
		return domain.LegalPage{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.LegalPage{}, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	updated := existing
	updated.ApplyPatch(patch, now())

	promote := guard.NeedsPromotion(existing, updated)
	if promote {
		err = s.repo.WithinTx(ctx, func(tx domain.LegalPageRepository) error {
			if _, err := guard.Promote(ctx, tx, updated.ID, updated); err != nil {
				return err
			}
			return tx.Update(ctx, updated)
		})
	} else {
		err = s.repo.Update(ctx, updated)
	}
	if err != nil {
		return domain.LegalPage{}, err
	}

	action := domain.ActionUpdated
	if promote {
		action = domain.ActionPromoted
	}
	notify(ctx, s.publisher, domain.NewChange(entityLegalPage, action, updated.ID, map[string]string{
		"page_type": updated.PageType,
		"version":   updated.Version,
	}))

	return updated, nil
}

// Delete removes a legal page unless its type is protected.
func (s *LegalPageService) Delete(ctx context.Context, id string) error {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.Guard(page); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	notify(ctx, s.publisher, domain.NewChange(entityLegalPage, domain.ActionDeleted, id, map[string]string{
		"page_type": page.PageType,
	}))
	return nil
}
