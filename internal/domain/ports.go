package domain

import (
	"context"
	"time"
)

// ListFilter holds the pagination shared by every list query.
type ListFilter struct {
	Limit  int
	Offset int
}

// ListResult is one page of a list query plus the unpaginated total.
type ListResult[T any] struct {
	Items []T
	Total int
}

// PageFilter holds optional criteria for listing pages.
type PageFilter struct {
	ListFilter
	Status  *PageStatus
	PageKey string
}

// PageRepository defines the persistence contract for content pages.
type PageRepository interface {
	Create(ctx context.Context, page Page) error
	GetByID(ctx context.Context, id string) (Page, error)
	GetBySlug(ctx context.Context, slug string) (Page, error)
	GetByPageKey(ctx context.Context, pageKey string) (Page, error)
	List(ctx context.Context, filter PageFilter) (ListResult[Page], error)
	// Update writes page only if the stored version still equals expectedVersion.
	Update(ctx context.Context, page Page, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

// LegalPageFilter holds optional criteria for listing legal pages.
type LegalPageFilter struct {
	ListFilter
	PageType  string
	IsCurrent *bool
}

// LegalPageRepository defines the persistence contract for legal pages.
type LegalPageRepository interface {
	Create(ctx context.Context, page LegalPage) error
	GetByID(ctx context.Context, id string) (LegalPage, error)
	GetCurrent(ctx context.Context, pageType string) (LegalPage, error)
	List(ctx context.Context, filter LegalPageFilter) (ListResult[LegalPage], error)
	Update(ctx context.Context, page LegalPage) error
	Delete(ctx context.Context, id string) error
	// DemoteCurrent clears IsCurrent on every record of pageType except exceptID.
	DemoteCurrent(ctx context.Context, pageType, exceptID string) (int64, error)
	// WithinTx runs fn against a repository bound to a single transaction.
	WithinTx(ctx context.Context, fn func(LegalPageRepository) error) error
}

// BusinessModelFilter holds optional criteria for listing business models.
type BusinessModelFilter struct {
	ListFilter
	IsActive  *bool
	ShowOnWeb *bool
}

// BusinessModelRepository defines the persistence contract for business models.
type BusinessModelRepository interface {
	Create(ctx context.Context, model BusinessModel) error
	GetByID(ctx context.Context, id string) (BusinessModel, error)
	GetByInternalCode(ctx context.Context, code string) (BusinessModel, error)
	GetBySlug(ctx context.Context, slug string) (BusinessModel, error)
	List(ctx context.Context, filter BusinessModelFilter) (ListResult[BusinessModel], error)
	Update(ctx context.Context, model BusinessModel) error
	Delete(ctx context.Context, id string) error
}

// SpecialtyFilter holds optional criteria for listing specialties.
type SpecialtyFilter struct {
	ListFilter
	IsActive  *bool
	ShowOnWeb *bool
}

// SpecialtyRepository defines the persistence contract for specialties.
type SpecialtyRepository interface {
	Create(ctx context.Context, specialty Specialty) error
	GetByID(ctx context.Context, id string) (Specialty, error)
	GetBySlug(ctx context.Context, slug string) (Specialty, error)
	List(ctx context.Context, filter SpecialtyFilter) (ListResult[Specialty], error)
	Update(ctx context.Context, specialty Specialty) error
	Delete(ctx context.Context, id string) error
	// Usage counts programs and instructors that reference the specialty.
	Usage(ctx context.Context, id string) (SpecialtyUsage, error)
}

// ProgramFilter holds optional criteria for listing programs.
type ProgramFilter struct {
	ListFilter
	SpecialtyID     string
	BusinessModelID string
	IsActive        *bool
}

// ProgramRepository defines the persistence contract for programs.
type ProgramRepository interface {
	Create(ctx context.Context, program Program) error
	GetByID(ctx context.Context, id string) (Program, error)
	GetBySlug(ctx context.Context, slug string) (Program, error)
	List(ctx context.Context, filter ProgramFilter) (ListResult[Program], error)
	Update(ctx context.Context, program Program) error
	Delete(ctx context.Context, id string) error
}

// InstructorFilter holds optional criteria for listing instructors.
type InstructorFilter struct {
	ListFilter
	SpecialtyID string
	IsActive    *bool
}

// InstructorRepository defines the persistence contract for instructors.
type InstructorRepository interface {
	Create(ctx context.Context, instructor Instructor) error
	GetByID(ctx context.Context, id string) (Instructor, error)
	GetBySlug(ctx context.Context, slug string) (Instructor, error)
	List(ctx context.Context, filter InstructorFilter) (ListResult[Instructor], error)
	Update(ctx context.Context, instructor Instructor) error
	Delete(ctx context.Context, id string) error
}

// LeadFilter holds optional criteria for listing leads.
type LeadFilter struct {
	ListFilter
	LeadType    *LeadType
	LeadStatus  *LeadStatus
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// LeadRepository defines the persistence contract for leads.
type LeadRepository interface {
	Create(ctx context.Context, lead Lead) error
	GetByID(ctx context.Context, id string) (Lead, error)
	List(ctx context.Context, filter LeadFilter) (ListResult[Lead], error)
	Update(ctx context.Context, lead Lead) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher defines the contract for emitting change notifications.
type EventPublisher interface {
	Publish(ctx context.Context, change Change) error
}
