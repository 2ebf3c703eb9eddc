package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

const (
	adminPrefix  = "/api/v1/admin"
	publicPrefix = "/api/v1/public"
)

// Services bundles the application services exposed over HTTP.
type Services struct {
	Pages          *app.PageService
	LegalPages     *app.LegalPageService
	BusinessModels *app.BusinessModelService
	Specialties    *app.SpecialtyService
	Programs       *app.ProgramService
	Instructors    *app.InstructorService
	Leads          *app.LeadService
}

// Register adds the admin and public API routes to the Huma API.
func Register(api huma.API, svc Services) {
	registerPages(api, svc.Pages)
	registerLegalPages(api, svc.LegalPages)
	registerBusinessModels(api, svc.BusinessModels)
	registerSpecialties(api, svc.Specialties)
	registerPrograms(api, svc.Programs)
	registerInstructors(api, svc.Instructors)
	registerLeads(api, svc.Leads)
	registerPublic(api, svc)
}

// --- Shared inputs and outputs ---

// IDInput addresses a single record.
type IDInput struct {
	ID string `path:"id" doc:"Record ID"`
}

// PaginationParams are embedded in every list input.
type PaginationParams struct {
	Limit  int `query:"limit" required:"false" default:"50" minimum:"0" doc:"Max results"`
	Offset int `query:"offset" required:"false" default:"0" minimum:"0" doc:"Pagination offset"`
}

func (p PaginationParams) filter() domain.ListFilter {
	return domain.ListFilter{Limit: p.Limit, Offset: p.Offset}
}

// ListBody is one page of results plus the unpaginated total.
type ListBody[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total" doc:"Matches before pagination"`
}

// ListOutput wraps a ListBody as a response.
type ListOutput[T any] struct {
	Body ListBody[T]
}

func toList[E, R any](res domain.ListResult[E], conv func(E) R) *ListOutput[R] {
	items := make([]R, len(res.Items))
	for i, e := range res.Items {
		items[i] = conv(e)
	}
	return &ListOutput[R]{Body: ListBody[R]{Items: items, Total: res.Total}}
}

// Output wraps a single response body.
type Output[T any] struct {
	Body T
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// boolParam parses an optional boolean query parameter.
func boolParam(name, v string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("%s must be true or false", name))
	}
	return &b, nil
}

// timeParam parses an optional RFC 3339 query parameter.
func timeParam(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(fmt.Sprintf("%s must be an RFC 3339 timestamp", name))
	}
	return &t, nil
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound(err.Error())
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(conflictErr.Error())
	}

	var protectedErr *domain.ProtectedError
	if errors.As(err, &protectedErr) {
		return huma.Error409Conflict(protectedErr.Error())
	}

	var refErr *domain.ReferentialError
	if errors.As(err, &refErr) {
		return huma.Error409Conflict(refErr.Error())
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return huma.Error422UnprocessableEntity(vErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	slog.ErrorContext(ctx, "request failed", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
