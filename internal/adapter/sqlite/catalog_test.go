package sqlite_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

func TestBusinessModel_CRUD(t *testing.T) {
	repo := newTestStore(t).BusinessModels()
	ctx := context.Background()

	m := domain.NewBusinessModel("b-1", domain.NewBusinessModelInput{
		InternalCode: "elite_on_demand", Slug: "elite", Name: "Elite", ShowOnWeb: true,
	})
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByInternalCode(ctx, "elite_on_demand")
	if err != nil {
		t.Fatalf("GetByInternalCode: %v", err)
	}
	if got.ID != "b-1" || !got.IsActive || !got.ShowOnWeb {
		t.Errorf("got %+v", got)
	}

	dup := domain.NewBusinessModel("b-2", domain.NewBusinessModelInput{InternalCode: "elite_on_demand", Slug: "other", Name: "X"})
	var conflict *domain.ConflictError
	if err := repo.Create(ctx, dup); !errors.As(err, &conflict) || conflict.Field != "internalCode" {
		t.Errorf("expected internalCode ConflictError, got %v", err)
	}

	got.IsActive = false
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	active := true
	res, err := repo.List(ctx, domain.BusinessModelFilter{IsActive: &active})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("active Total = %d, want 0", res.Total)
	}
}

func TestSpecialty_Usage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	specialties := store.Specialties()
	programs := store.Programs()
	instructors := store.Instructors()

	yoga := domain.NewSpecialty("s-1", domain.NewSpecialtyInput{Slug: "yoga", Name: "Yoga"})
	if err := specialties.Create(ctx, yoga); err != nil {
		t.Fatalf("create specialty: %v", err)
	}

	u, err := specialties.Usage(ctx, "s-1")
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if u.InUse() {
		t.Errorf("fresh specialty in use: %+v", u)
	}

	if err := programs.Create(ctx, domain.NewProgram("p-1", domain.NewProgramInput{Slug: "intro", Title: "Intro", SpecialtyID: "s-1"})); err != nil {
		t.Fatalf("create program: %v", err)
	}
	if err := instructors.Create(ctx, domain.NewInstructor("i-1", domain.NewInstructorInput{Slug: "ana", FullName: "Ana", SpecialtyIDs: []string{"s-1"}})); err != nil {
		t.Fatalf("create instructor: %v", err)
	}

	u, err = specialties.Usage(ctx, "s-1")
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if u.Programs != 1 || u.Instructors != 1 {
		t.Errorf("Usage = %+v, want 1/1", u)
	}

	// The foreign key backs up the usage guard and reports the same error.
	err = specialties.Delete(ctx, "s-1")
	var refErr *domain.ReferentialError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferentialError, got %v", err)
	}
	if refErr.ID != "s-1" || refErr.References["programs"] != 1 || refErr.References["instructors"] != 1 {
		t.Errorf("ReferentialError = %+v", refErr)
	}
	if _, err := specialties.GetByID(ctx, "s-1"); err != nil {
		t.Errorf("specialty should survive the rejected delete: %v", err)
	}
}

func TestProgram_NullableReferences(t *testing.T) {
	repo := newTestStore(t).Programs()
	ctx := context.Background()

	if err := repo.Create(ctx, domain.NewProgram("p-1", domain.NewProgramInput{Slug: "open", Title: "Open"})); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetBySlug(ctx, "open")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.SpecialtyID != "" || got.BusinessModelID != "" {
		t.Errorf("references = %q/%q, want empty", got.SpecialtyID, got.BusinessModelID)
	}
}

func TestInstructor_SpecialtiesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, s := range []domain.Specialty{
		domain.NewSpecialty("s-1", domain.NewSpecialtyInput{Slug: "yoga", Name: "Yoga"}),
		domain.NewSpecialty("s-2", domain.NewSpecialtyInput{Slug: "pilates", Name: "Pilates"}),
	} {
		if err := store.Specialties().Create(ctx, s); err != nil {
			t.Fatalf("create specialty: %v", err)
		}
	}
	repo := store.Instructors()

	in := domain.NewInstructor("i-1", domain.NewInstructorInput{Slug: "ana", FullName: "Ana", SpecialtyIDs: []string{"s-2", "s-1"}})
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "i-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !slices.Equal(got.SpecialtyIDs, []string{"s-2", "s-1"}) {
		t.Errorf("SpecialtyIDs = %v, want [s-2 s-1]", got.SpecialtyIDs)
	}

	got.SpecialtyIDs = []string{"s-1"}
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	res, err := repo.List(ctx, domain.InstructorFilter{SpecialtyID: "s-2"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("instructors with s-2 = %d, want 0", res.Total)
	}
	res, _ = repo.List(ctx, domain.InstructorFilter{SpecialtyID: "s-1"})
	if res.Total != 1 || !slices.Equal(res.Items[0].SpecialtyIDs, []string{"s-1"}) {
		t.Errorf("instructors with s-1 = %+v", res.Items)
	}

	if err := repo.Delete(ctx, "i-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	u, _ := store.Specialties().Usage(ctx, "s-1")
	if u.Instructors != 0 {
		t.Errorf("assignments should cascade on delete, got %d", u.Instructors)
	}
}

func TestInstructor_DuplicateSlugRollsBack(t *testing.T) {
	repo := newTestStore(t).Instructors()
	ctx := context.Background()

	if err := repo.Create(ctx, domain.NewInstructor("i-1", domain.NewInstructorInput{Slug: "ana", FullName: "Ana"})); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, domain.NewInstructor("i-2", domain.NewInstructorInput{Slug: "ana", FullName: "Ana B"}))
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "i-2"); !errors.Is(err, domain.ErrInstructorNotFound) {
		t.Errorf("expected ErrInstructorNotFound, got %v", err)
	}
}
