package app

import (
	"context"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const entityLead = "lead"

// LeadService orchestrates lead intake and funnel progression.
type LeadService struct {
	repo      domain.LeadRepository
	programs  domain.ProgramRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator[domain.LeadStatus, domain.LeadEvent]
}

// NewLeadService creates a service with the given adapters. The program repository
// is read to validate the optional program a lead is interested in.
func NewLeadService(
	repo domain.LeadRepository,
	programs domain.ProgramRepository,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator[domain.LeadStatus, domain.LeadEvent],
) *LeadService {
	return &LeadService{
		repo:      repo,
		programs:  programs,
		publisher: publisher,
		validator: validator,
	}
}

// Create persists a public submission. The lead always starts at status new.
func (s *LeadService) Create(ctx context.Context, in domain.NewLeadInput) (domain.Lead, error) {
	if err := validate(in); err != nil {
		return domain.Lead{}, err
	}

	if err := checkReference(ctx, "programId", in.ProgramID, s.programs.GetByID); err != nil {
		return domain.Lead{}, err
	}

	lead := domain.NewLead(generateID(), in)

	if err := s.repo.Create(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityLead, domain.ActionCreated, lead.ID, map[string]string{
		"lead_type": string(lead.LeadType),
		"source":    lead.Source,
	}))

	return lead, nil
}

// Get returns a lead by id.
func (s *LeadService) Get(ctx context.Context, id string) (domain.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns leads matching the given filter.
func (s *LeadService) List(ctx context.Context, filter domain.LeadFilter) (domain.ListResult[domain.Lead], error) {
	return s.repo.List(ctx, filter)
}

// Update corrects contact details. Lead type and status have no update path here.
func (s *LeadService) Update(ctx context.Context, id string, patch domain.LeadPatch) (domain.Lead, error) {
	if err := validate(patch); err != nil {
		return domain.Lead{}, err
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	if !lead.ApplyPatch(patch, now()) {
		return lead, nil
	}

	if err := s.repo.Update(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityLead, domain.ActionUpdated, lead.ID, nil))
	return lead, nil
}

// TransitionStatus moves a lead to status, stamping contactedAt/contactedBy or
// conversionDate as side effects. Notes, when given, replace the stored notes.
func (s *LeadService) TransitionStatus(ctx context.Context, id string, status domain.LeadStatus, notes *string, actor string) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	from := lead.FunnelStatus()
	if domain.FunnelMoves(lead, status) {
		if _, err := s.validator.Apply(ctx, from, domain.LeadEventFor(status)); err != nil {
			return domain.Lead{}, err
		}
	}

	lead.Advance(status, notes, actor, now())

	if err := s.repo.Update(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityLead, domain.ActionStatusChanged, lead.ID, map[string]string{
		"from": string(from),
		"to":   string(status),
	}))

	return lead, nil
}

// UpdateNotes replaces the stored notes without touching the status.
func (s *LeadService) UpdateNotes(ctx context.Context, id, notes string) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	lead.Notes = notes
	lead.UpdatedAt = now()

	if err := s.repo.Update(ctx, lead); err != nil {
		return domain.Lead{}, err
	}

	notify(ctx, s.publisher, domain.NewChange(entityLead, domain.ActionUpdated, lead.ID, map[string]string{
		"field": "notes",
	}))

	return lead, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	notify(ctx, s.publisher, domain.NewChange(entityLead, domain.ActionDeleted, id, nil))
	return nil
}
