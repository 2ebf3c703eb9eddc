package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neomorfeo/siteadmin/internal/adapter/sqlite"
	"github.com/neomorfeo/siteadmin/internal/domain"
	"github.com/neomorfeo/siteadmin/internal/guard"
)

func newLegal(id, pageType string, current bool) domain.LegalPage {
	return domain.NewLegalPage(id, domain.NewLegalPageInput{
		PageType:      pageType,
		Title:         "Policy",
		Version:       id,
		EffectiveDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		IsCurrent:     current,
	})
}

func TestLegal_PromoteWithinTx(t *testing.T) {
	repo := newTestStore(t).LegalPages()
	ctx := context.Background()

	if err := repo.Create(ctx, newLegal("l-1", "privacy", true)); err != nil {
		t.Fatalf("create l-1: %v", err)
	}
	if err := repo.Create(ctx, newLegal("c-1", "cookies", true)); err != nil {
		t.Fatalf("create c-1: %v", err)
	}

	next := newLegal("l-2", "privacy", true)
	err := repo.WithinTx(ctx, func(tx domain.LegalPageRepository) error {
		n, err := guard.PromoteToCurrent(ctx, tx, next.PageType, next.ID)
		if err != nil {
			return err
		}
		if n != 1 {
			t.Errorf("demoted %d, want 1", n)
		}
		return tx.Create(ctx, next)
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	current, err := repo.GetCurrent(ctx, "privacy")
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if current.ID != "l-2" {
		t.Errorf("current = %q, want l-2", current.ID)
	}
	old, _ := repo.GetByID(ctx, "l-1")
	if old.IsCurrent {
		t.Error("l-1 should be demoted")
	}
	cookies, _ := repo.GetCurrent(ctx, "cookies")
	if cookies.ID != "c-1" {
		t.Error("cookies should be untouched")
	}
}

func TestLegal_TxRollsBackOnError(t *testing.T) {
	repo := newTestStore(t).LegalPages()
	ctx := context.Background()

	if err := repo.Create(ctx, newLegal("l-1", "terms", true)); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := repo.WithinTx(ctx, func(tx domain.LegalPageRepository) error {
		if _, err := tx.DemoteCurrent(ctx, "terms", "l-2"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx error = %v, want boom", err)
	}

	got, _ := repo.GetByID(ctx, "l-1")
	if !got.IsCurrent {
		t.Error("demotion should have been rolled back")
	}
}

func TestLegal_SecondCurrentRejectedByIndex(t *testing.T) {
	repo := newTestStore(t).LegalPages()
	ctx := context.Background()

	if err := repo.Create(ctx, newLegal("l-1", "privacy", true)); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(ctx, newLegal("l-2", "privacy", true))
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "isCurrent" || conflict.Value != "privacy" {
		t.Errorf("conflict = %s/%s", conflict.Field, conflict.Value)
	}

	if err := repo.Create(ctx, newLegal("l-3", "privacy", false)); err != nil {
		t.Errorf("non-current record should be accepted: %v", err)
	}
}

func TestLegal_ListAndDelete(t *testing.T) {
	repo := newTestStore(t).LegalPages()
	ctx := context.Background()

	for _, l := range []domain.LegalPage{
		newLegal("l-1", "privacy", true),
		newLegal("l-2", "privacy", false),
		newLegal("t-1", "terms", true),
	} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create %s: %v", l.ID, err)
		}
	}

	current := true
	res, err := repo.List(ctx, domain.LegalPageFilter{IsCurrent: &current})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("current Total = %d, want 2", res.Total)
	}

	res, _ = repo.List(ctx, domain.LegalPageFilter{PageType: "privacy"})
	if res.Total != 2 {
		t.Errorf("privacy Total = %d, want 2", res.Total)
	}

	if err := repo.Delete(ctx, "l-2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "l-2"); !errors.Is(err, domain.ErrLegalPageNotFound) {
		t.Errorf("expected ErrLegalPageNotFound, got %v", err)
	}
}

var _ domain.LegalPageRepository = (*sqlite.LegalPageRepository)(nil)
