package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

const tracerName = "github.com/neomorfeo/siteadmin/internal/adapter/otel"

// record marks span as failed when err is non-nil.
func record(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func listAttributes(lf domain.ListFilter) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("filter.limit", lf.Limit),
		attribute.Int("filter.offset", lf.Offset),
	}
}

// TracingPageRepository wraps a domain.PageRepository with OpenTelemetry tracing.
type TracingPageRepository struct {
	next   domain.PageRepository
	tracer trace.Tracer
}

var _ domain.PageRepository = (*TracingPageRepository)(nil)

// NewTracingPageRepository creates a tracing decorator around the given repository.
func NewTracingPageRepository(next domain.PageRepository) *TracingPageRepository {
	return &TracingPageRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingPageRepository) Create(ctx context.Context, page domain.Page) error {
	ctx, span := r.tracer.Start(ctx, "PageRepository.Create",
		trace.WithAttributes(
			attribute.String("page.id", page.ID),
			attribute.String("page.key", page.PageKey),
			attribute.String("page.slug", page.Slug),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, page)
	record(span, err)
	return err
}

func (r *TracingPageRepository) GetByID(ctx context.Context, id string) (domain.Page, error) {
	ctx, span := r.tracer.Start(ctx, "PageRepository.GetByID",
		trace.WithAttributes(attribute.String("page.id", id)),
	)
	defer span.End()

	page, err := r.next.GetByID(ctx, id)
	record(span, err)
	return page, err
}

func (r *TracingPageRepository) GetBySlug(ctx context.Context, slug string) (domain.Page, error) {
	ctx, span := r.tracer.Start(ctx, "PageRepository.GetBySlug",
		trace.WithAttributes(attribute.String("page.slug", slug)),
	)
	defer span.End()

	page, err := r.next.GetBySlug(ctx, slug)
	record(span, err)
	return page, err
}

func (r *TracingPageRepository) GetByPageKey(ctx context.Context, pageKey string) (domain.Page, error) {
	ctx, span := r.tracer.Start(ctx, "PageRepository.GetByPageKey",
		trace.WithAttributes(attribute.String("page.key", pageKey)),
	)
	defer span.End()

	page, err := r.next.GetByPageKey(ctx, pageKey)
	record(span, err)
	return page, err
}

func (r *TracingPageRepository) List(ctx context.Context, filter domain.PageFilter) (domain.ListResult[domain.Page], error) {
	attrs := listAttributes(filter.ListFilter)
	if filter.Status != nil {
		attrs = append(attrs, attribute.String("filter.status", string(*filter.Status)))
	}
	ctx, span := r.tracer.Start(ctx, "PageRepository.List", trace.WithAttributes(attrs...))
	defer span.End()

	res, err := r.next.List(ctx, filter)
	record(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.total", res.Total))
	}
	return res, err
}

func (r *TracingPageRepository) Update(ctx context.Context, page domain.Page, expectedVersion int) error {
	ctx, span := r.tracer.Start(ctx, "PageRepository.Update",
		trace.WithAttributes(
			attribute.String("page.id", page.ID),
			attribute.String("page.status", string(page.Status)),
			attribute.Int("page.version", page.Version),
			attribute.Int("page.expected_version", expectedVersion),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, page, expectedVersion)
	record(span, err)
	return err
}

func (r *TracingPageRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "PageRepository.Delete",
		trace.WithAttributes(attribute.String("page.id", id)),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	record(span, err)
	return err
}

// TracingLeadRepository wraps a domain.LeadRepository with OpenTelemetry tracing.
// Contact details are never recorded as span attributes.
type TracingLeadRepository struct {
	next   domain.LeadRepository
	tracer trace.Tracer
}

var _ domain.LeadRepository = (*TracingLeadRepository)(nil)

// NewTracingLeadRepository creates a tracing decorator around the given repository.
func NewTracingLeadRepository(next domain.LeadRepository) *TracingLeadRepository {
	return &TracingLeadRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingLeadRepository) Create(ctx context.Context, lead domain.Lead) error {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Create",
		trace.WithAttributes(
			attribute.String("lead.id", lead.ID),
			attribute.String("lead.type", string(lead.LeadType)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, lead)
	record(span, err)
	return err
}

func (r *TracingLeadRepository) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.GetByID",
		trace.WithAttributes(attribute.String("lead.id", id)),
	)
	defer span.End()

	lead, err := r.next.GetByID(ctx, id)
	record(span, err)
	return lead, err
}

func (r *TracingLeadRepository) List(ctx context.Context, filter domain.LeadFilter) (domain.ListResult[domain.Lead], error) {
	attrs := listAttributes(filter.ListFilter)
	if filter.LeadType != nil {
		attrs = append(attrs, attribute.String("filter.lead_type", string(*filter.LeadType)))
	}
	if filter.LeadStatus != nil {
		attrs = append(attrs, attribute.String("filter.lead_status", string(*filter.LeadStatus)))
	}
	ctx, span := r.tracer.Start(ctx, "LeadRepository.List", trace.WithAttributes(attrs...))
	defer span.End()

	res, err := r.next.List(ctx, filter)
	record(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.total", res.Total))
	}
	return res, err
}

func (r *TracingLeadRepository) Update(ctx context.Context, lead domain.Lead) error {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Update",
		trace.WithAttributes(
			attribute.String("lead.id", lead.ID),
			attribute.String("lead.status", string(lead.LeadStatus)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, lead)
	record(span, err)
	return err
}

func (r *TracingLeadRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "LeadRepository.Delete",
		trace.WithAttributes(attribute.String("lead.id", id)),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	record(span, err)
	return err
}
