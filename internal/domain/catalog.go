package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Specialty is a training discipline referenced by programs and instructors.
type Specialty struct {
	ID          string
	Slug        string
	Name        string
	Description string
	IsActive    bool
	ShowOnWeb   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewSpecialtyInput struct {
	Slug        string
	Name        string
	Description string
	ShowOnWeb   bool
}

func (in NewSpecialtyInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Slug, validation.Required, validation.Length(1, 150), validation.Match(slugPattern)),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
	)
}

type SpecialtyPatch struct {
	Slug        *string
	Name        *string
	Description *string
	IsActive    *bool
	ShowOnWeb   *bool
}

func (p SpecialtyPatch) IsEmpty() bool {
	return p.Slug == nil && p.Name == nil && p.Description == nil && p.IsActive == nil && p.ShowOnWeb == nil
}

func (p SpecialtyPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.NilOrNotEmpty, validation.Match(slugPattern)),
		validation.Field(&p.Name, validation.NilOrNotEmpty),
	)
}

func NewSpecialty(id string, in NewSpecialtyInput) Specialty {
	now := time.Now().UTC()
	return Specialty{
		ID:          id,
		Slug:        in.Slug,
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
		ShowOnWeb:   in.ShowOnWeb,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Specialty) ApplyPatch(patch SpecialtyPatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}
	if patch.Slug != nil {
		s.Slug = *patch.Slug
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.IsActive != nil {
		s.IsActive = *patch.IsActive
	}
	if patch.ShowOnWeb != nil {
		s.ShowOnWeb = *patch.ShowOnWeb
	}
	s.UpdatedAt = now
	return true
}

func (s Specialty) UniqueFields() []Field {
	return []Field{{Name: "slug", Value: s.Slug}}
}

func (s Specialty) ProtectedIdentity() Field {
	return Field{Name: "slug", Value: s.Slug}
}

// SpecialtyUsage counts the live references to a specialty.
type SpecialtyUsage struct {
	Programs    int
	Instructors int
}

// InUse reports whether any other family still references the specialty.
func (u SpecialtyUsage) InUse() bool {
	return u.Programs > 0 || u.Instructors > 0
}

// References keys the counts by referring family.
func (u SpecialtyUsage) References() map[string]int {
	return map[string]int{"programs": u.Programs, "instructors": u.Instructors}
}

// Program is a training program offered under a specialty and business model.
type Program struct {
	ID              string
	Slug            string
	Title           string
	Summary         string
	SpecialtyID     string
	BusinessModelID string
	IsActive        bool
	DisplayOrder    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewProgramInput struct {
	Slug            string
	Title           string
	Summary         string
	SpecialtyID     string
	BusinessModelID string
	DisplayOrder    int
}

func (in NewProgramInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Slug, validation.Required, validation.Length(1, 150), validation.Match(slugPattern)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.DisplayOrder, validation.Min(0)),
	)
}

type ProgramPatch struct {
	Slug            *string
	Title           *string
	Summary         *string
	SpecialtyID     *string
	BusinessModelID *string
	IsActive        *bool
	DisplayOrder    *int
}

func (p ProgramPatch) IsEmpty() bool {
	return p.Slug == nil && p.Title == nil && p.Summary == nil && p.SpecialtyID == nil &&
		p.BusinessModelID == nil && p.IsActive == nil && p.DisplayOrder == nil
}

func (p ProgramPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.NilOrNotEmpty, validation.Match(slugPattern)),
		validation.Field(&p.Title, validation.NilOrNotEmpty),
		validation.Field(&p.DisplayOrder, validation.Min(0)),
	)
}

func NewProgram(id string, in NewProgramInput) Program {
	now := time.Now().UTC()
	return Program{
		ID:              id,
		Slug:            in.Slug,
		Title:           in.Title,
		Summary:         in.Summary,
		SpecialtyID:     in.SpecialtyID,
		BusinessModelID: in.BusinessModelID,
		IsActive:        true,
		DisplayOrder:    in.DisplayOrder,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (p *Program) ApplyPatch(patch ProgramPatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Summary != nil {
		p.Summary = *patch.Summary
	}
	if patch.SpecialtyID != nil {
		p.SpecialtyID = *patch.SpecialtyID
	}
	if patch.BusinessModelID != nil {
		p.BusinessModelID = *patch.BusinessModelID
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.DisplayOrder != nil {
		p.DisplayOrder = *patch.DisplayOrder
	}
	p.UpdatedAt = now
	return true
}

func (p Program) UniqueFields() []Field {
	return []Field{{Name: "slug", Value: p.Slug}}
}

// Instructor is a coach assigned to one or more specialties.
type Instructor struct {
	ID           string
	Slug         string
	FullName     string
	Bio          string
	SpecialtyIDs []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewInstructorInput struct {
	Slug         string
	FullName     string
	Bio          string
	SpecialtyIDs []string
}

func (in NewInstructorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Slug, validation.Required, validation.Length(1, 150), validation.Match(slugPattern)),
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.SpecialtyIDs, validation.Each(validation.Required)),
	)
}

type InstructorPatch struct {
	Slug         *string
	FullName     *string
	Bio          *string
	SpecialtyIDs *[]string
	IsActive     *bool
}

func (p InstructorPatch) IsEmpty() bool {
	return p.Slug == nil && p.FullName == nil && p.Bio == nil && p.SpecialtyIDs == nil && p.IsActive == nil
}

func (p InstructorPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.NilOrNotEmpty, validation.Match(slugPattern)),
		validation.Field(&p.FullName, validation.NilOrNotEmpty),
	)
}

func NewInstructor(id string, in NewInstructorInput) Instructor {
	now := time.Now().UTC()
	return Instructor{
		ID:           id,
		Slug:         in.Slug,
		FullName:     in.FullName,
		Bio:          in.Bio,
		SpecialtyIDs: append([]string(nil), in.SpecialtyIDs...),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (i *Instructor) ApplyPatch(patch InstructorPatch, now time.Time) bool {
	if patch.IsEmpty() {
		return false
	}
	if patch.Slug != nil {
		i.Slug = *patch.Slug
	}
	if patch.FullName != nil {
		i.FullName = *patch.FullName
	}
	if patch.Bio != nil {
		i.Bio = *patch.Bio
	}
	if patch.SpecialtyIDs != nil {
		i.SpecialtyIDs = append([]string(nil), (*patch.SpecialtyIDs)...)
	}
	if patch.IsActive != nil {
		i.IsActive = *patch.IsActive
	}
	i.UpdatedAt = now
	return true
}

func (i Instructor) UniqueFields() []Field {
	return []Field{{Name: "slug", Value: i.Slug}}
}
