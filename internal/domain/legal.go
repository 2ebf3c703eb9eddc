package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LegalPage is a versioned legal text. Exactly one record per PageType may be current.
type LegalPage struct {
	ID            string
	PageType      string
	Title         string
	Content       string
	Version       string
	EffectiveDate time.Time
	IsCurrent     bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLegalPageInput carries the fields of a new legal page.
type NewLegalPageInput struct {
	PageType      string
	Title         string
	Content       string
	Version       string
	EffectiveDate time.Time
	IsCurrent     bool
}

// Validate checks the shape of a new legal page.
func (in NewLegalPageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageType, validation.Required, validation.Match(keyPattern)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Version, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.EffectiveDate, validation.Required),
	)
}

// LegalPagePatch holds the fields of a partial legal page update.
type LegalPagePatch struct {
	Title         *string
	Content       *string
	Version       *string
	EffectiveDate *time.Time
	IsCurrent     *bool
	IsActive      *bool
}

// IsEmpty reports whether the patch carries no recognized field.
func (p LegalPagePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Version == nil &&
		p.EffectiveDate == nil && p.IsCurrent == nil && p.IsActive == nil
}

// Validate checks the shape of the fields present in the patch.
func (p LegalPagePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty),
		validation.Field(&p.Version, validation.NilOrNotEmpty),
	)
}

// NewLegalPage creates an active legal page.
func NewLegalPage(id string, in NewLegalPageInput) LegalPage {
	now := time.Now().UTC()
	return LegalPage{
		ID:            id,
		PageType:      in.PageType,
		Title:         in.Title,
		Content:       in.Content,
		Version:       in.Version,
		EffectiveDate: in.EffectiveDate.UTC(),
		IsCurrent:     in.IsCurrent,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApplyPatch applies the present fields. PageType is the category and is not patchable.
func (l *LegalPage) ApplyPatch(patch LegalPagePatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}
	if patch.Title != nil {
		l.Title = *patch.Title
	}
	if patch.Content != nil {
		l.Content = *patch.Content
	}
	if patch.Version != nil {
		l.Version = *patch.Version
	}
	if patch.EffectiveDate != nil {
		l.EffectiveDate = patch.EffectiveDate.UTC()
	}
	if patch.IsCurrent != nil {
		l.IsCurrent = *patch.IsCurrent
	}
	if patch.IsActive != nil {
		l.IsActive = *patch.IsActive
	}
	l.UpdatedAt = now
	return true
}

// ProtectedIdentity is the page type, checked before deletion.
func (l LegalPage) ProtectedIdentity() Field {
	return Field{Name: "pageType", Value: l.PageType}
}

// SingletonCategory is the page type; one page per type is current.
func (l LegalPage) SingletonCategory() string { return l.PageType }

// IsCurrentRecord reports whether this is the current page of its type.
func (l LegalPage) IsCurrentRecord() bool { return l.IsCurrent }
