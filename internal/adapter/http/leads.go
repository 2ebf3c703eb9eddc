package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// LeadResponse is the admin representation of a lead.
type LeadResponse struct {
	ID               string  `json:"id"`
	LeadType         string  `json:"leadType"`
	LeadStatus       string  `json:"leadStatus" doc:"Funnel position"`
	FullName         string  `json:"fullName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Message          string  `json:"message"`
	ProgramID        string  `json:"programId,omitempty"`
	Source           string  `json:"source"`
	AcceptsTerms     bool    `json:"acceptsTerms"`
	AcceptsMarketing bool    `json:"acceptsMarketing"`
	ContactedAt      *string `json:"contactedAt,omitempty"`
	ContactedBy      string  `json:"contactedBy,omitempty"`
	ConversionDate   *string `json:"conversionDate,omitempty"`
	Notes            string  `json:"notes"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

func toLeadResponse(l domain.Lead) LeadResponse {
	return LeadResponse{
		ID:               l.ID,
		LeadType:         string(l.LeadType),
		LeadStatus:       string(l.LeadStatus),
		FullName:         l.FullName,
		Email:            l.Email,
		Phone:            l.Phone,
		Message:          l.Message,
		ProgramID:        l.ProgramID,
		Source:           l.Source,
		AcceptsTerms:     l.AcceptsTerms,
		AcceptsMarketing: l.AcceptsMarketing,
		ContactedAt:      formatTimePtr(l.ContactedAt),
		ContactedBy:      l.ContactedBy,
		ConversionDate:   formatTimePtr(l.ConversionDate),
		Notes:            l.Notes,
		CreatedAt:        formatTime(l.CreatedAt),
		UpdatedAt:        formatTime(l.UpdatedAt),
	}
}

type ListLeadsInput struct {
	PaginationParams
	LeadType    string `query:"leadType" required:"false"`
	LeadStatus  string `query:"leadStatus" required:"false"`
	Email       string `query:"email" required:"false" doc:"Exact match, case-insensitive"`
	CreatedFrom string `query:"createdFrom" required:"false" doc:"Inclusive lower bound (RFC 3339)"`
	CreatedTo   string `query:"createdTo" required:"false" doc:"Exclusive upper bound (RFC 3339)"`
}

type UpdateLeadInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body struct {
		FullName *string `json:"fullName,omitempty"`
		Email    *string `json:"email,omitempty"`
		Phone    *string `json:"phone,omitempty"`
		Message  *string `json:"message,omitempty"`
	}
}

type TransitionLeadInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body struct {
		Status string  `json:"status" doc:"Target funnel state"`
		Notes  *string `json:"notes,omitempty" doc:"Replaces the stored notes when present"`
		Actor  string  `json:"actor,omitempty" doc:"Recorded as contactedBy when moving to contacted"`
	}
}

type UpdateLeadNotesInput struct {
	ID   string `path:"id" doc:"Lead ID"`
	Body struct {
		Notes string `json:"notes"`
	}
}

func registerLeads(api huma.API, svc *app.LeadService) {
	tags := []string{"Leads"}

	huma.Register(api, huma.Operation{
		OperationID: "get-lead",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/leads/{id}",
		Summary:     "Get a lead by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[LeadResponse], error) {
		lead, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LeadResponse]{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-leads",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/leads",
		Summary:     "List leads, newest first",
		Tags:        tags,
	}, func(ctx context.Context, input *ListLeadsInput) (*ListOutput[LeadResponse], error) {
		from, err := timeParam("createdFrom", input.CreatedFrom)
		if err != nil {
			return nil, err
		}
		to, err := timeParam("createdTo", input.CreatedTo)
		if err != nil {
			return nil, err
		}
		filter := domain.LeadFilter{
			ListFilter:  input.filter(),
			Email:       input.Email,
			CreatedFrom: from,
			CreatedTo:   to,
		}
		if input.LeadType != "" {
			lt := domain.LeadType(input.LeadType)
			filter.LeadType = &lt
		}
		if input.LeadStatus != "" {
			ls := domain.LeadStatus(input.LeadStatus)
			filter.LeadStatus = &ls
		}
		res, err := svc.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toLeadResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/leads/{id}",
		Summary:     "Correct a lead's contact details",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateLeadInput) (*Output[LeadResponse], error) {
		b := input.Body
		lead, err := svc.Update(ctx, input.ID, domain.LeadPatch{
			FullName: b.FullName,
			Email:    b.Email,
			Phone:    b.Phone,
			Message:  b.Message,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LeadResponse]{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-lead",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/leads/{id}/status",
		Summary:     "Move a lead through the funnel",
		Tags:        tags,
	}, func(ctx context.Context, input *TransitionLeadInput) (*Output[LeadResponse], error) {
		lead, err := svc.TransitionStatus(ctx, input.ID, domain.LeadStatus(input.Body.Status), input.Body.Notes, input.Body.Actor)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LeadResponse]{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead-notes",
		Method:      http.MethodPut,
		Path:        adminPrefix + "/leads/{id}/notes",
		Summary:     "Replace a lead's notes",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateLeadNotesInput) (*Output[LeadResponse], error) {
		lead, err := svc.UpdateNotes(ctx, input.ID, input.Body.Notes)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LeadResponse]{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-lead",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/leads/{id}",
		Summary:       "Delete a lead",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}
