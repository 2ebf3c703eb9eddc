package app

import (
	"context"
	"strconv"

	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

const entityPage = "page"

// PageService orchestrates content page operations.
type PageService struct {
	repo      domain.PageRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator[domain.PageStatus, domain.PageEvent]
	policy    guard.Policy
	lookups   guard.Lookups
}

// NewPageService creates a service with the given adapters. Pages whose key is in
// protected cannot be deleted.
func NewPageService(
	repo domain.PageRepository,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator[domain.PageStatus, domain.PageEvent],
	protected guard.Set,
) *PageService {
	pageID := func(p domain.Page) string { return p.ID }
	return &PageService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		policy: guard.Policy{
			Entity:      entityPage,
			Alternative: "status=archived",
			Protected:   protected,
		},
		lookups: guard.Lookups{
			"pageKey": guard.OwnerID(repo.GetByPageKey, pageID),
			"slug":    guard.OwnerID(repo.GetBySlug, pageID),
		},
	}
}

// Create persists a new draft page after checking pageKey and slug uniqueness.
func (s *PageService) Create(ctx context.Context, in domain.NewPageInput) (domain.Page, error) {
	if err := validate(in); err != nil {
		return domain.Page{}, err
	}

	page := domain.NewPage(generateID(), in)

	if err := guard.Unique(ctx, entityPage, "", s.lookups, page.UniqueFields()...); err != nil {
		return domain.Page{}, err
	}

	if err := s.repo.Create(ctx, page); err != nil {
		return domain.Page{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityPage, domain.ActionCreated, page.ID, map[string]string{
		"page_key": page.PageKey,
		"slug":     page.Slug,
	}))

	return page, nil
}

// Get returns a page by id regardless of status.
func (s *PageService) Get(ctx context.Context, id string) (domain.Page, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPublished returns the published page with the given slug. Draft and archived
// pages are reported as not found.
func (s *PageService) GetPublished(ctx context.Context, slug string) (domain.Page, error) {
	page, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Page{}, err
	}
	if page.Status != domain.PageStatusPublished {
		return domain.Page{}, domain.ErrPageNotFound
	}
	return page, nil
}

// List returns pages matching the given filter.
func (s *PageService) List(ctx context.Context, filter domain.PageFilter) (domain.ListResult[domain.Page], error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update. An empty patch returns the stored page unchanged;
// any other patch bumps the version by one and, when entering published, records
// the publish snapshot in the same write.
func (s *PageService) Update(ctx context.Context, id string, patch domain.PagePatch) (domain.Page, error) {
	if err := validate(patch); err != nil {
		return domain.Page{}, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Page{}, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	if patch.Status != nil && *patch.Status != existing.PublicationStatus() {
		if _, err := s.validator.Apply(ctx, existing.PublicationStatus(), domain.PageEventFor(*patch.Status)); err != nil {
			return domain.Page{}, err
		}
	}

	updated := existing
	updated.ApplyPatch(patch, now())

	if err := guard.Unique(ctx, entityPage, id, s.lookups, guard.Changed(existing, updated)...); err != nil {
		return domain.Page{}, err
	}

	if err := s.repo.Update(ctx, updated, existing.DraftVersion()); err != nil {
		return domain.Page{}, err
	}

	action := domain.ActionUpdated
	if domain.EntersPublished(existing, updated) {
		action = domain.ActionPublished
	}
	notify(ctx, s.publisher, domain.NewChange(entityPage, action, updated.ID, map[string]string{
		"slug":    updated.Slug,
		"status":  string(updated.Status),
		"version": strconv.Itoa(updated.Version),
	}))

	return updated, nil
}

// Delete removes a page unless its key is protected.
func (s *PageService) Delete(ctx context.Context, id string) error {
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

	notify(ctx, s.publisher, domain.NewChange(entityPage, domain.ActionDeleted, id, map[string]string{
		"page_key": page.PageKey,
	}))
	return nil
}
