package fsm_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/neomorfeo/siteadmin/internal/adapter/fsm"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

func TestPublication_AllTransitions(t *testing.T) {
	v := adapter.NewPublication()
	ctx := context.Background()

	for _, tr := range domain.PageTransitions {
		dst, err := v.Apply(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("Apply(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("Apply(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestPublication_EveryStateReachesEveryOther(t *testing.T) {
	v := adapter.NewPublication()
	ctx := context.Background()

	for _, from := range domain.PageStatuses {
		for _, to := range domain.PageStatuses {
			if from == to {
				continue
			}
			got, err := v.Apply(ctx, from, domain.PageEventFor(to))
			if err != nil {
				t.Errorf("%q -> %q: unexpected error: %v", from, to, err)
				continue
			}
			if got != to {
				t.Errorf("%q -> %q: got %q", from, to, got)
			}
		}
	}
}

func TestPublication_UnknownStatus(t *testing.T) {
	v := adapter.NewPublication()

	_, err := v.Apply(context.Background(), domain.PageStatusDraft, domain.PageEventFor("deleted"))
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Current != "draft" {
		t.Errorf("current = %q, want %q", trErr.Current, "draft")
	}
}

func TestPublication_SameStateIsRejected(t *testing.T) {
	v := adapter.NewPublication()

	_, err := v.Apply(context.Background(), domain.PageStatusPublished, domain.PageEventPublish)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestFunnel_FullPath(t *testing.T) {
	v := adapter.NewFunnel()
	ctx := context.Background()

	steps := []struct {
		from  domain.LeadStatus
		event domain.LeadEvent
		want  domain.LeadStatus
	}{
		{domain.LeadStatusNew, domain.LeadEventContact, domain.LeadStatusContacted},
		{domain.LeadStatusContacted, domain.LeadEventQualify, domain.LeadStatusQualified},
		{domain.LeadStatusQualified, domain.LeadEventConvert, domain.LeadStatusConverted},
	}

	for _, step := range steps {
		got, err := v.Apply(ctx, step.from, step.event)
		if err != nil {
			t.Fatalf("Apply(%q, %q) error: %v", step.from, step.event, err)
		}
		if got != step.want {
			t.Errorf("Apply(%q, %q) = %q, want %q", step.from, step.event, got, step.want)
		}
	}
}

func TestFunnel_SkipsAndLostBranch(t *testing.T) {
	v := adapter.NewFunnel()
	ctx := context.Background()

	// Skipping straight to converted is accepted.
	got, err := v.Apply(ctx, domain.LeadStatusNew, domain.LeadEventConvert)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.LeadStatusConverted {
		t.Errorf("got %q, want %q", got, domain.LeadStatusConverted)
	}

	for _, from := range []domain.LeadStatus{domain.LeadStatusNew, domain.LeadStatusContacted, domain.LeadStatusQualified} {
		got, err := v.Apply(ctx, from, domain.LeadEventLose)
		if err != nil {
			t.Fatalf("lose from %q: %v", from, err)
		}
		if got != domain.LeadStatusLost {
			t.Errorf("lose from %q = %q, want %q", from, got, domain.LeadStatusLost)
		}
	}
}

func TestFunnel_UnknownStatus(t *testing.T) {
	v := adapter.NewFunnel()

	_, err := v.Apply(context.Background(), domain.LeadStatusNew, domain.LeadEventFor("archived"))
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}
