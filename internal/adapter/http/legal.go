package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// LegalPageResponse is the API representation of a legal page version.
type LegalPageResponse struct {
	ID            string `json:"id"`
	PageType      string `json:"pageType" doc:"Legal category, e.g. privacy or terms"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Version       string `json:"version" doc:"Human-readable version label"`
	EffectiveDate string `json:"effectiveDate"`
	IsCurrent     bool   `json:"isCurrent" doc:"At most one current record per pageType"`
	IsActive      bool   `json:"isActive"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toLegalPageResponse(l domain.LegalPage) LegalPageResponse {
	return LegalPageResponse{
		ID:            l.ID,
		PageType:      l.PageType,
		Title:         l.Title,
		Content:       l.Content,
		Version:       l.Version,
		EffectiveDate: formatTime(l.EffectiveDate),
		IsCurrent:     l.IsCurrent,
		IsActive:      l.IsActive,
		CreatedAt:     formatTime(l.CreatedAt),
		UpdatedAt:     formatTime(l.UpdatedAt),
	}
}

type CreateLegalPageInput struct {
	Body struct {
		PageType      string    `json:"pageType"`
		Title         string    `json:"title"`
		Content       string    `json:"content,omitempty"`
		Version       string    `json:"version"`
		EffectiveDate time.Time `json:"effectiveDate"`
		IsCurrent     bool      `json:"isCurrent,omitempty" doc:"Promote this version, demoting the previous current one"`
	}
}

type ListLegalPagesInput struct {
	PaginationParams
	PageType  string `query:"pageType" required:"false"`
	IsCurrent string `query:"isCurrent" required:"false" doc:"true or false"`
}

type UpdateLegalPageInput struct {
	ID   string `path:"id" doc:"Legal page ID"`
	Body struct {
		Title         *string    `json:"title,omitempty"`
		Content       *string    `json:"content,omitempty"`
		Version       *string    `json:"version,omitempty"`
		EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
		IsCurrent     *bool      `json:"isCurrent,omitempty"`
		IsActive      *bool      `json:"isActive,omitempty"`
	}
}

func registerLegalPages(api huma.API, svc *app.LegalPageService) {
	tags := []string{"Legal pages"}

	huma.Register(api, huma.Operation{
		OperationID: "create-legal-page",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/legal-pages",
		Summary:     "Create a legal page version",
		Tags:        tags,
	}, func(ctx context.Context, input *CreateLegalPageInput) (*Output[LegalPageResponse], error) {
		page, err := svc.Create(ctx, domain.NewLegalPageInput{
			PageType:      input.Body.PageType,
			Title:         input.Body.Title,
			Content:       input.Body.Content,
			Version:       input.Body.Version,
			EffectiveDate: input.Body.EffectiveDate,
			IsCurrent:     input.Body.IsCurrent,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LegalPageResponse]{Body: toLegalPageResponse(page)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-legal-page",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/legal-pages/{id}",
		Summary:     "Get a legal page by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[LegalPageResponse], error) {
		page, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LegalPageResponse]{Body: toLegalPageResponse(page)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-legal-pages",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/legal-pages",
		Summary:     "List legal pages",
		Tags:        tags,
	}, func(ctx context.Context, input *ListLegalPagesInput) (*ListOutput[LegalPageResponse], error) {
		isCurrent, err := boolParam("isCurrent", input.IsCurrent)
		if err != nil {
			return nil, err
		}
		res, err := svc.List(ctx, domain.LegalPageFilter{
			ListFilter: input.filter(),
			PageType:   input.PageType,
			IsCurrent:  isCurrent,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toLegalPageResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-legal-page",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/legal-pages/{id}",
		Summary:     "Update a legal page",
		Description: "Setting isCurrent=true demotes the current version of the same pageType atomically.",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateLegalPageInput) (*Output[LegalPageResponse], error) {
		b := input.Body
		page, err := svc.Update(ctx, input.ID, domain.LegalPagePatch{
			Title:         b.Title,
			Content:       b.Content,
			Version:       b.Version,
			EffectiveDate: b.EffectiveDate,
			IsCurrent:     b.IsCurrent,
			IsActive:      b.IsActive,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[LegalPageResponse]{Body: toLegalPageResponse(page)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-legal-page",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/legal-pages/{id}",
		Summary:       "Delete a legal page",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}
