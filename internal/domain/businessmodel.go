package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BusinessModel is a commercial offering. InternalCode is the stable business key,
// Slug the public one.
type BusinessModel struct {
	ID           string
	InternalCode string
	Slug         string
	Name         string
	Description  string
	IsActive     bool
	ShowOnWeb    bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewBusinessModelInput struct {
	InternalCode string
	Slug         string
	Name         string
	Description  string
	ShowOnWeb    bool
	DisplayOrder int
}

func (in NewBusinessModelInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.InternalCode, validation.Required, validation.Length(1, 100), validation.Match(keyPattern)),
		validation.Field(&in.Slug, validation.Required, validation.Length(1, 150), validation.Match(slugPattern)),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.DisplayOrder, validation.Min(0)),
	)
}

type BusinessModelPatch struct {
	InternalCode *string
	Slug         *string
	Name         *string
	Description  *string
	IsActive     *bool
	ShowOnWeb    *bool
	DisplayOrder *int
}

func (p BusinessModelPatch) IsEmpty() bool {
	return p.InternalCode == nil && p.Slug == nil && p.Name == nil && p.Description == nil &&
		p.IsActive == nil && p.ShowOnWeb == nil && p.DisplayOrder == nil
}

func (p BusinessModelPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.InternalCode, validation.NilOrNotEmpty, validation.Match(keyPattern)),
		validation.Field(&p.Slug, validation.NilOrNotEmpty, validation.Match(slugPattern)),
		validation.Field(&p.Name, validation.NilOrNotEmpty),
		validation.Field(&p.DisplayOrder, validation.Min(0)),
	)
}

// NewBusinessModel creates an active business model.
func NewBusinessModel(id string, in NewBusinessModelInput) BusinessModel {
	now := time.Now().UTC()
	return BusinessModel{
		ID:           id,
		InternalCode: in.InternalCode,
		Slug:         in.Slug,
		Name:         in.Name,
		Description:  in.Description,
		IsActive:     true,
		ShowOnWeb:    in.ShowOnWeb,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *BusinessModel) ApplyPatch(patch BusinessModelPatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}
	if patch.InternalCode != nil {
		b.InternalCode = *patch.InternalCode
	}
	if patch.Slug != nil {
		b.Slug = *patch.Slug
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.IsActive != nil {
		b.IsActive = *patch.IsActive
	}
	if patch.ShowOnWeb != nil {
		b.ShowOnWeb = *patch.ShowOnWeb
	}
	if patch.DisplayOrder != nil {
		b.DisplayOrder = *patch.DisplayOrder
	}
	b.UpdatedAt = now
	return true
}

func (b BusinessModel) UniqueFields() []Field {
	return []Field{
		{Name: "internalCode", Value: b.InternalCode},
		{Name: "slug", Value: b.Slug},
	}
}

func (b BusinessModel) ProtectedIdentity() Field {
	return Field{Name: "internalCode", Value: b.InternalCode}
}
