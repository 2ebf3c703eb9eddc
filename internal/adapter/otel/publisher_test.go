package otel_test

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	adapter "github.com/neomorfeo/siteadmin/internal/adapter/otel"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// --- Mock publisher ---

type mockPublisher struct {
	changes []domain.Change
}

func (m *mockPublisher) Publish(_ context.Context, c domain.Change) error {
	m.changes = append(m.changes, c)
	return nil
}

type failingPublisher struct{}

func (p *failingPublisher) Publish(_ context.Context, _ domain.Change) error {
	return fmt.Errorf("publish failed")
}

// --- Tests ---

func TestTracingPublisher_Publish_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := &mockPublisher{}
	pub := adapter.NewTracingPublisher(inner)

	change := domain.NewChange("page", domain.ActionPublished, "p-1", nil)
	if err := pub.Publish(context.Background(), change); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "EventPublisher.Publish" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "EventPublisher.Publish")
	}

	if spans[0].SpanKind != trace.SpanKindProducer {
		t.Errorf("span kind = %v, want %v", spans[0].SpanKind, trace.SpanKindProducer)
	}
	assertAttribute(t, spans[0], "change.entity", "page")
	assertAttribute(t, spans[0], "change.action", "published")
	assertAttribute(t, spans[0], "change.entity_id", "p-1")

	if len(inner.changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(inner.changes))
	}
}

func TestTracingPublisher_Publish_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	pub := adapter.NewTracingPublisher(&failingPublisher{})

	err := pub.Publish(context.Background(), domain.NewChange("lead", domain.ActionCreated, "l-1", nil))
	if err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}
