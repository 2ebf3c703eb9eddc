package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PageStatus represents the publication state of a content page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
	PageStatusArchived  PageStatus = "archived"
)

// PageStatuses lists every valid publication state.
var PageStatuses = []PageStatus{PageStatusDraft, PageStatusPublished, PageStatusArchived}

// PageEvent represents an action that moves a page between publication states.
type PageEvent string

const (
	PageEventPublish   PageEvent = "publish"
	PageEventUnpublish PageEvent = "unpublish"
	PageEventArchive   PageEvent = "archive"
)

// pageEventTargets maps each publication event to the state it enters.
var pageEventTargets = map[PageEvent]PageStatus{
	PageEventPublish:   PageStatusPublished,
	PageEventUnpublish: PageStatusDraft,
	PageEventArchive:   PageStatusArchived,
}

// PageTransitions defines the publication lifecycle. Every state may move to every
// other state; the machine carries side effects, not restrictions.
var PageTransitions = fanIn(PageStatuses, pageEventTargets)

// PageEventFor returns the event that enters the given status.
func PageEventFor(status PageStatus) PageEvent {
	for e, dst := range pageEventTargets {
		if dst == status {
			return e
		}
	}
	return PageEvent(status)
}

// Page is a versioned content entity of the public site.
type Page struct {
	ID               string
	PageKey          string
	Slug             string
	Title            string
	Content          string
	MetaTitle        string
	MetaDescription  string
	Status           PageStatus
	Version          int
	PublishedVersion *int
	PublishedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPageInput carries the caller-chosen fields of a new page.
type NewPageInput struct {
	PageKey         string
	Slug            string
	Title           string
	Content         string
	MetaTitle       string
	MetaDescription string
}

// Validate checks the shape of a new page.
func (in NewPageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PageKey, validation.Required, validation.Length(1, 100), validation.Match(keyPattern)),
		validation.Field(&in.Slug, validation.Required, validation.Length(1, 150), validation.Match(slugPattern)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
	)
}

// PagePatch holds the fields of a partial page update; nil means "not present".
type PagePatch struct {
	PageKey         *string
	Slug            *string
	Title           *string
	Content         *string
	MetaTitle       *string
	MetaDescription *string
	Status          *PageStatus
}

// IsEmpty reports whether the patch carries no recognized field.
func (p PagePatch) IsEmpty() bool {
	return p.PageKey == nil && p.Slug == nil && p.Title == nil && p.Content == nil &&
		p.MetaTitle == nil && p.MetaDescription == nil && p.Status == nil
}

// Validate checks the shape of the fields present in the patch.
func (p PagePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.PageKey, validation.NilOrNotEmpty, validation.Match(keyPattern)),
		validation.Field(&p.Slug, validation.NilOrNotEmpty, validation.Match(slugPattern)),
		validation.Field(&p.Title, validation.NilOrNotEmpty),
		validation.Field(&p.Status, validation.In(PageStatusDraft, PageStatusPublished, PageStatusArchived)),
	)
}

// NewPage creates a page in the initial draft state at version 1.
func NewPage(id string, in NewPageInput) Page {
	now := time.Now().UTC()
	return Page{
		ID:              id,
		PageKey:         in.PageKey,
		Slug:            in.Slug,
		Title:           in.Title,
		Content:         in.Content,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		Status:          PageStatusDraft,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApplyPatch applies the present fields of the patch and the publication side effects.
// The status in the patch must already be validated against PageTransitions.
// It returns false, leaving the page untouched, when the patch is empty.
func (p *Page) ApplyPatch(patch PagePatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}

	if patch.PageKey != nil {
		p.PageKey = *patch.PageKey
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.MetaTitle != nil {
		p.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		p.MetaDescription = *patch.MetaDescription
	}

	p.Version++

	if patch.Status != nil && *patch.Status != p.Status {
		if *patch.Status == PageStatusPublished {
			published := p.Version
			at := now
			p.PublishedVersion = &published
			p.PublishedAt = &at
		}
		p.Status = *patch.Status
	}

	p.UpdatedAt = now
	return true
}

// UniqueFields returns the page key and slug, in that order.
func (p Page) UniqueFields() []Field {
	return []Field{
		{Name: "pageKey", Value: p.PageKey},
		{Name: "slug", Value: p.Slug},
	}
}

// ProtectedIdentity is the page key, checked before deletion.
func (p Page) ProtectedIdentity() Field {
	return Field{Name: "pageKey", Value: p.PageKey}
}

// PublicationStatus is the page's position in the publication lifecycle.
func (p Page) PublicationStatus() PageStatus { return p.Status }

// DraftVersion is the working version, used as the optimistic lock.
func (p Page) DraftVersion() int { return p.Version }
