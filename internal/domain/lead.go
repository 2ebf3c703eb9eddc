package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// LeadType classifies how a lead entered the funnel. It never changes after creation.
type LeadType string

const (
	LeadTypeContact       LeadType = "contact"
	LeadTypePreEnrollment LeadType = "pre_enrollment"
	LeadTypeEliteBooking  LeadType = "elite_booking"
	LeadTypeNewsletter    LeadType = "newsletter"
)

// LeadStatus represents the position of a lead in the sales funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// LeadStatuses lists the funnel in order, with the lost side-branch last.
var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost,
}

// LeadEvent represents an action that moves a lead through the funnel.
type LeadEvent string

const (
	LeadEventReopen  LeadEvent = "reopen"
	LeadEventContact LeadEvent = "contact"
	LeadEventQualify LeadEvent = "qualify"
	LeadEventConvert LeadEvent = "convert"
	LeadEventLose    LeadEvent = "lose"
)

var leadEventTargets = map[LeadEvent]LeadStatus{
	LeadEventReopen:  LeadStatusNew,
	LeadEventContact: LeadStatusContacted,
	LeadEventQualify: LeadStatusQualified,
	LeadEventConvert: LeadStatusConverted,
	LeadEventLose:    LeadStatusLost,
}

// LeadTransitions defines the funnel. Skips and lateral moves are accepted; stricter
// policy belongs to the admin application.
var LeadTransitions = fanIn(LeadStatuses, leadEventTargets)

// LeadEventFor returns the event that enters the given status.
func LeadEventFor(status LeadStatus) LeadEvent {
	for e, dst := range leadEventTargets {
		if dst == status {
			return e
		}
	}
	return LeadEvent(status)
}

// Lead is an inbound enquiry from the public site.
type Lead struct {
	ID               string
	LeadType         LeadType
	LeadStatus       LeadStatus
	FullName         string
	Email            string
	Phone            string
	Message          string
	ProgramID        string
	Source           string
	AcceptsTerms     bool
	AcceptsMarketing bool
	ContactedAt      *time.Time
	ContactedBy      string
	ConversionDate   *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewLeadInput carries a public submission. It has no status field: every lead
// starts at LeadStatusNew.
type NewLeadInput struct {
	LeadType         LeadType
	FullName         string
	Email            string
	Phone            string
	Message          string
	ProgramID        string
	Source           string
	AcceptsTerms     *bool
	AcceptsMarketing *bool
}

// Validate checks a public submission. Every type but newsletter needs a name.
func (in NewLeadInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.LeadType, validation.Required,
			validation.In(LeadTypeContact, LeadTypePreEnrollment, LeadTypeEliteBooking, LeadTypeNewsletter)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.FullName, validation.When(in.LeadType != LeadTypeNewsletter, validation.Required)),
	)
}

// LeadPatch holds contact-detail corrections. Type and status are not patchable.
type LeadPatch struct {
	FullName *string
	Email    *string
	Phone    *string
	Message  *string
}

// IsEmpty reports whether the patch carries no recognized field.
func (p LeadPatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.Phone == nil && p.Message == nil
}

// Validate checks the email format when the patch corrects it.
func (p LeadPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.NilOrNotEmpty, is.EmailFormat),
	)
}

// NewLead creates a lead at the top of the funnel. AcceptsTerms defaults to true and
// AcceptsMarketing to false when the caller does not say otherwise.
func NewLead(id string, in NewLeadInput) Lead {
	now := time.Now().UTC()
	lead := Lead{
		ID:           id,
		LeadType:     in.LeadType,
		LeadStatus:   LeadStatusNew,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Message:      in.Message,
		ProgramID:    in.ProgramID,
		Source:       in.Source,
		AcceptsTerms: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.AcceptsTerms != nil {
		lead.AcceptsTerms = *in.AcceptsTerms
	}
	if in.AcceptsMarketing != nil {
		lead.AcceptsMarketing = *in.AcceptsMarketing
	}
	return lead
}

// ApplyPatch applies the present contact fields. It returns false, leaving the lead
// untouched, when the patch is empty.
func (l *Lead) ApplyPatch(patch LeadPatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}
	if patch.FullName != nil {
		l.FullName = *patch.FullName
	}
	if patch.Email != nil {
		l.Email = *patch.Email
	}
	if patch.Phone != nil {
		l.Phone = *patch.Phone
	}
	if patch.Message != nil {
		l.Message = *patch.Message
	}
	l.UpdatedAt = now
	return true
}

// Advance moves the lead to status and records the audit side effects. The status
// must already be validated against LeadTransitions. Notes, when given, replace the
// stored notes.
func (l *Lead) Advance(status LeadStatus, notes *string, actor string, now time.Time) {
	switch status {
	case LeadStatusContacted:
		if l.ContactedAt == nil {
			at := now
			l.ContactedAt = &at
		}
		if actor != "" {
			l.ContactedBy = actor
		}
	case LeadStatusConverted:
		if l.LeadStatus != LeadStatusConverted || l.ConversionDate == nil {
			at := now
			l.ConversionDate = &at
		}
	}
	if notes != nil {
		l.Notes = *notes
	}
	l.LeadStatus = status
	l.UpdatedAt = now
}

// FunnelStatus is the lead's position in the funnel.
func (l Lead) FunnelStatus() LeadStatus { return l.LeadStatus }
