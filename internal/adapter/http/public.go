package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// PublicPageResponse is what the public site renders for a published page.
type PublicPageResponse struct {
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	MetaTitle       string  `json:"metaTitle"`
	MetaDescription string  `json:"metaDescription"`
	PublishedAt     *string `json:"publishedAt,omitempty"`
}

// PublicLegalPageResponse is the current version of a legal page.
type PublicLegalPageResponse struct {
	PageType      string `json:"pageType"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Version       string `json:"version"`
	EffectiveDate string `json:"effectiveDate"`
}

// PublicBusinessModelResponse is a business model as listed on the site.
type PublicBusinessModelResponse struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

// LeadReceipt acknowledges a lead submission.
type LeadReceipt struct {
	ID         string `json:"id"`
	ReceivedAt string `json:"receivedAt"`
}

type PublicPageInput struct {
	Slug string `path:"slug" doc:"Page slug"`
}

type PublicLegalPageInput struct {
	PageType string `path:"pageType" doc:"Legal category"`
}

type SubmitLeadInput struct {
	Body struct {
		LeadType         string `json:"leadType" doc:"contact, pre_enrollment, elite_booking or newsletter"`
		FullName         string `json:"fullName,omitempty" doc:"Required for every type but newsletter"`
		Email            string `json:"email"`
		Phone            string `json:"phone,omitempty"`
		Message          string `json:"message,omitempty"`
		ProgramID        string `json:"programId,omitempty"`
		Source           string `json:"source,omitempty"`
		AcceptsTerms     *bool  `json:"acceptsTerms,omitempty" doc:"Defaults to true"`
		AcceptsMarketing *bool  `json:"acceptsMarketing,omitempty" doc:"Defaults to false"`
	}
}

func registerPublic(api huma.API, svc Services) {
	tags := []string{"Public"}

	huma.Register(api, huma.Operation{
		OperationID: "get-published-page",
		Method:      http.MethodGet,
		Path:        publicPrefix + "/pages/{slug}",
		Summary:     "Get a published page by slug",
		Tags:        tags,
	}, func(ctx context.Context, input *PublicPageInput) (*Output[PublicPageResponse], error) {
		page, err := svc.Pages.GetPublished(ctx, input.Slug)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[PublicPageResponse]{Body: PublicPageResponse{
			Slug:            page.Slug,
			Title:           page.Title,
			Content:         page.Content,
			MetaTitle:       page.MetaTitle,
			MetaDescription: page.MetaDescription,
			PublishedAt:     formatTimePtr(page.PublishedAt),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-current-legal-page",
		Method:      http.MethodGet,
		Path:        publicPrefix + "/legal/{pageType}",
		Summary:     "Get the current version of a legal page",
		Tags:        tags,
	}, func(ctx context.Context, input *PublicLegalPageInput) (*Output[PublicLegalPageResponse], error) {
		page, err := svc.LegalPages.GetCurrent(ctx, input.PageType)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[PublicLegalPageResponse]{Body: PublicLegalPageResponse{
			PageType:      page.PageType,
			Title:         page.Title,
			Content:       page.Content,
			Version:       page.Version,
			EffectiveDate: formatTime(page.EffectiveDate),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-public-business-models",
		Method:      http.MethodGet,
		Path:        publicPrefix + "/business-models",
		Summary:     "List active business models shown on the site",
		Tags:        tags,
	}, func(ctx context.Context, _ *struct{}) (*Output[[]PublicBusinessModelResponse], error) {
		models, err := svc.BusinessModels.ListPublic(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		resp := make([]PublicBusinessModelResponse, len(models))
		for i, m := range models {
			resp[i] = PublicBusinessModelResponse{
				Slug:         m.Slug,
				Name:         m.Name,
				Description:  m.Description,
				DisplayOrder: m.DisplayOrder,
			}
		}
		return &Output[[]PublicBusinessModelResponse]{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-lead",
		Method:      http.MethodPost,
		Path:        publicPrefix + "/leads",
		Summary:     "Submit a lead from the public site",
		Tags:        tags,
	}, func(ctx context.Context, input *SubmitLeadInput) (*Output[LeadReceipt], error) {
		b := input.Body
		lead, err := svc.Leads.Create(ctx, domain.NewLeadInput{
			LeadType:         domain.LeadType(b.LeadType),
			FullName:         b.FullName,
			Email:            b.Email,
			Phone:            b.Phone,
			Message:          b.Message,
			ProgramID:        b.ProgramID,
			Source:           b.Source,
			AcceptsTerms:     b.AcceptsTerms,
			AcceptsMarketing: b.AcceptsMarketing,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LeadReceipt]{Body: LeadReceipt{ID: lead.ID, ReceivedAt: formatTime(lead.CreatedAt)}}, nil
	})
}
