package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/neomorfeo/siteadmin/internal/adapter/otel"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

// --- Mock repositories ---

type mockPageRepo struct {
	pages map[string]domain.Page
}

func newMockPageRepo() *mockPageRepo {
	return &mockPageRepo{pages: make(map[string]domain.Page)}
}

func (m *mockPageRepo) Create(_ context.Context, p domain.Page) error {
	m.pages[p.ID] = p
	return nil
}

func (m *mockPageRepo) GetByID(_ context.Context, id string) (domain.Page, error) {
	p, ok := m.pages[id]
	if !ok {
		return domain.Page{}, domain.ErrPageNotFound
	}
	return p, nil
}

func (m *mockPageRepo) GetBySlug(_ context.Context, slug string) (domain.Page, error) {
	for _, p := range m.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Page{}, domain.ErrPageNotFound
}

func (m *mockPageRepo) GetByPageKey(_ context.Context, key string) (domain.Page, error) {
	for _, p := range m.pages {
		if p.PageKey == key {
			return p, nil
		}
	}
	return domain.Page{}, domain.ErrPageNotFound
}

func (m *mockPageRepo) List(_ context.Context, _ domain.PageFilter) (domain.ListResult[domain.Page], error) {
	out := make([]domain.Page, 0, len(m.pages))
	for _, p := range m.pages {
		out = append(out, p)
	}
	return domain.ListResult[domain.Page]{Items: out, Total: len(out)}, nil
}

func (m *mockPageRepo) Update(_ context.Context, p domain.Page, expectedVersion int) error {
	stored, ok := m.pages[p.ID]
	if !ok {
		return domain.ErrPageNotFound
	}
	if stored.Version != expectedVersion {
		return &domain.ConflictError{Entity: "page", Field: "version"}
	}
	m.pages[p.ID] = p
	return nil
}

func (m *mockPageRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.pages[id]; !ok {
		return domain.ErrPageNotFound
	}
	delete(m.pages, id)
	return nil
}

type mockLeadRepo struct {
	leads map[string]domain.Lead
}

func (m *mockLeadRepo) Create(_ context.Context, l domain.Lead) error {
	m.leads[l.ID] = l
	return nil
}

func (m *mockLeadRepo) GetByID(_ context.Context, id string) (domain.Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return l, nil
}

func (m *mockLeadRepo) List(_ context.Context, _ domain.LeadFilter) (domain.ListResult[domain.Lead], error) {
	out := make([]domain.Lead, 0, len(m.leads))
	for _, l := range m.leads {
		out = append(out, l)
	}
	return domain.ListResult[domain.Lead]{Items: out, Total: len(out)}, nil
}

func (m *mockLeadRepo) Update(_ context.Context, l domain.Lead) error {
	m.leads[l.ID] = l
	return nil
}

func (m *mockLeadRepo) Delete(_ context.Context, id string) error {
	delete(m.leads, id)
	return nil
}

func testPage() domain.Page {
	return domain.NewPage("p-1", domain.NewPageInput{PageKey: "home", Slug: "home", Title: "Home"})
}

// --- Tests ---

func TestTracingPageRepository_Create_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingPageRepository(newMockPageRepo())

	if err := repo.Create(context.Background(), testPage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "PageRepository.Create" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "PageRepository.Create")
	}

	assertAttribute(t, spans[0], "page.id", "p-1")
	assertAttribute(t, spans[0], "page.key", "home")
	assertAttribute(t, spans[0], "page.slug", "home")
}

func TestTracingPageRepository_GetByID_NotFound_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingPageRepository(newMockPageRepo())

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected error event on span")
	}
}

func TestTracingPageRepository_GetBySlug_RecordsSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockPageRepo()
	inner.pages["p-1"] = testPage()
	repo := adapter.NewTracingPageRepository(inner)

	got, err := repo.GetBySlug(context.Background(), "home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "p-1" {
		t.Errorf("ID = %q, want %q", got.ID, "p-1")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	assertAttribute(t, spans[0], "page.slug", "home")
}

func TestTracingPageRepository_List_RecordsTotal(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockPageRepo()
	inner.pages["p-1"] = testPage()
	inner.pages["p-2"] = domain.NewPage("p-2", domain.NewPageInput{PageKey: "about", Slug: "about", Title: "About"})
	repo := adapter.NewTracingPageRepository(inner)

	status := domain.PageStatusDraft
	res, err := repo.List(context.Background(), domain.PageFilter{
		ListFilter: domain.ListFilter{Limit: 10},
		Status:     &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	assertAttribute(t, spans[0], "filter.limit", "10")
	assertAttribute(t, spans[0], "filter.status", "draft")
	assertAttribute(t, spans[0], "result.total", "2")
}

func TestTracingPageRepository_Update_VersionConflict(t *testing.T) {
	exporter := setupTestTracer(t)
	inner := newMockPageRepo()
	page := testPage()
	inner.pages[page.ID] = page
	repo := adapter.NewTracingPageRepository(inner)

	page.Version = 2
	err := repo.Update(context.Background(), page, 5)
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "PageRepository.Update" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "PageRepository.Update")
	}
	assertAttribute(t, spans[0], "page.expected_version", "5")
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want %v", spans[0].Status.Code, codes.Error)
	}
}

func TestTracingLeadRepository_OmitsContactDetails(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingLeadRepository(&mockLeadRepo{leads: make(map[string]domain.Lead)})

	lead := domain.NewLead("l-1", domain.NewLeadInput{
		LeadType: domain.LeadTypeContact,
		FullName: "Jane Roe",
		Email:    "jane@example.com",
	})
	if err := repo.Create(context.Background(), lead); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	assertAttribute(t, spans[0], "lead.id", "l-1")
	assertAttribute(t, spans[0], "lead.type", "contact")
	for _, attr := range spans[0].Attributes {
		if attr.Value.Emit() == "jane@example.com" {
			t.Errorf("attribute %q leaks the email address", attr.Key)
		}
	}
}

// assertAttribute checks that a span has an attribute with the given key and string value.
func assertAttribute(t *testing.T, span tracetest.SpanStub, key, want string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			got := attr.Value.Emit()
			if got != want {
				t.Errorf("attribute %q = %q, want %q", key, got, want)
			}
			return
		}
	}
	t.Errorf("attribute %q not found on span %q", key, span.Name)
}
