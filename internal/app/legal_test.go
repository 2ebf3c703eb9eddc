package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

func newLegalService(repo *mockLegalRepo, pub *mockPublisher) *app.LegalPageService {
	return app.NewLegalPageService(repo, pub, guard.NewSet(domain.DefaultProtectedLegalPageTypes...))
}

func legalInput(pageType, version string, current bool) domain.NewLegalPageInput {
	return domain.NewLegalPageInput{
		PageType:      pageType,
		Title:         "Policy " + version,
		Content:       "text",
		Version:       version,
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		IsCurrent:     current,
	}
}

func TestLegalCreate_CurrencySwitch(t *testing.T) {
	repo := newMockLegalRepo()
	pub := &mockPublisher{}
	svc := newLegalService(repo, pub)
	ctx := context.Background()

	p1, err := svc.Create(ctx, legalInput("privacy", "1.0", true))
	if err != nil {
		t.Fatalf("create P1: %v", err)
	}
	p2, err := svc.Create(ctx, legalInput("privacy", "2.0", true))
	if err != nil {
		t.Fatalf("create P2: %v", err)
	}

	got, err := svc.Get(ctx, p1.ID)
	if err != nil {
		t.Fatalf("read P1: %v", err)
	}
	if got.IsCurrent {
		t.Error("P1 should no longer be current")
	}

	current, err := svc.GetCurrent(ctx, "privacy")
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if current.ID != p2.ID {
		t.Errorf("current = %q, want %q", current.ID, p2.ID)
	}
	if repo.txCount != 2 {
		t.Errorf("txCount = %d, want 2", repo.txCount)
	}
	if pub.last().Action != domain.ActionPromoted {
		t.Errorf("action = %q, want promoted", pub.last().Action)
	}
}

func TestLegalCreate_CategoriesAreIndependent(t *testing.T) {
	repo := newMockLegalRepo()
	svc := newLegalService(repo, &mockPublisher{})
	ctx := context.Background()

	privacy, _ := svc.Create(ctx, legalInput("privacy", "1.0", true))
	if _, err := svc.Create(ctx, legalInput("cookies", "1.0", true)); err != nil {
		t.Fatalf("create cookies: %v", err)
	}

	got, _ := svc.Get(ctx, privacy.ID)
	if !got.IsCurrent {
		t.Error("promoting cookies should not demote privacy")
	}
}

func TestLegalCreate_NotCurrentSkipsTransaction(t *testing.T) {
	repo := newMockLegalRepo()
	svc := newLegalService(repo, &mockPublisher{})

	if _, err := svc.Create(context.Background(), legalInput("terms", "draft", false)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.txCount != 0 {
		t.Errorf("txCount = %d, want 0", repo.txCount)
	}
}

func TestLegalUpdate_Promote(t *testing.T) {
	repo := newMockLegalRepo()
	svc := newLegalService(repo, &mockPublisher{})
	ctx := context.Background()

	old, _ := svc.Create(ctx, legalInput("terms", "1.0", true))
	next, _ := svc.Create(ctx, legalInput("terms", "2.0", false))

	promoted, err := svc.Update(ctx, next.ID, domain.LegalPagePatch{IsCurrent: ptr(true)})
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !promoted.IsCurrent {
		t.Error("promoted page should be current")
	}

	res, err := svc.List(ctx, domain.LegalPageFilter{PageType: "terms", IsCurrent: ptr(true)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != next.ID {
		t.Errorf("current terms = %+v, want only %s", res.Items, next.ID)
	}
	if got, _ := svc.Get(ctx, old.ID); got.IsCurrent {
		t.Error("old terms should be demoted")
	}
}

func TestLegalUpdate_AlreadyCurrentSkipsDemotion(t *testing.T) {
	repo := newMockLegalRepo()
	svc := newLegalService(repo, &mockPublisher{})
	ctx := context.Background()

	page, _ := svc.Create(ctx, legalInput("cookies", "1.0", true))
	before := repo.txCount

	if _, err := svc.Update(ctx, page.ID, domain.LegalPagePatch{IsCurrent: ptr(true), Title: ptr("Cookies")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.txCount != before {
		t.Errorf("demotion ran for a page that was already current")
	}
}

func TestLegalDelete_ProtectedType(t *testing.T) {
	repo := newMockLegalRepo()
	svc := newLegalService(repo, &mockPublisher{})
	ctx := context.Background()

	page, _ := svc.Create(ctx, legalInput("privacy", "1.0", true))

	err := svc.Delete(ctx, page.ID)
	var protected *domain.ProtectedError
	if !errors.As(err, &protected) {
		t.Fatalf("expected ProtectedError, got %v", err)
	}
	if protected.Value != "privacy" || protected.Alternative != "isActive=false" {
		t.Errorf("protected = %+v", protected)
	}
	if _, err := svc.Get(ctx, page.ID); err != nil {
		t.Errorf("protected page should remain: %v", err)
	}
}

func TestLegalDelete_UnprotectedType(t *testing.T) {
	repo := newMockLegalRepo()
	svc := newLegalService(repo, &mockPublisher{})
	ctx := context.Background()

	page, _ := svc.Create(ctx, legalInput("refunds", "1.0", false))

	if err := svc.Delete(ctx, page.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, page.ID); !errors.Is(err, domain.ErrLegalPageNotFound) {
		t.Errorf("expected ErrLegalPageNotFound, got %v", err)
	}
}
