package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// PageResponse is the API representation of a content page.
type PageResponse struct {
	ID               string  `json:"id" doc:"Unique identifier"`
	PageKey          string  `json:"pageKey" doc:"Stable internal key"`
	Slug             string  `json:"slug" doc:"URL path segment"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	MetaTitle        string  `json:"metaTitle"`
	MetaDescription  string  `json:"metaDescription"`
	Status           string  `json:"status" doc:"Publication state"`
	Version          int     `json:"version" doc:"Draft version, bumped on every write"`
	PublishedVersion *int    `json:"publishedVersion,omitempty" doc:"Version captured at the last publish"`
	PublishedAt      *string `json:"publishedAt,omitempty" doc:"Last publish timestamp (RFC 3339)"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

func toPageResponse(p domain.Page) PageResponse {
	return PageResponse{
		ID:               p.ID,
		PageKey:          p.PageKey,
		Slug:             p.Slug,
		Title:            p.Title,
		Content:          p.Content,
		MetaTitle:        p.MetaTitle,
		MetaDescription:  p.MetaDescription,
		Status:           string(p.Status),
		Version:          p.Version,
		PublishedVersion: p.PublishedVersion,
		PublishedAt:      formatTimePtr(p.PublishedAt),
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}

type CreatePageInput struct {
	Body struct {
		PageKey         string `json:"pageKey" doc:"Stable internal key (lowercase, underscores)"`
		Slug            string `json:"slug" doc:"URL path segment (lowercase, hyphens)"`
		Title           string `json:"title"`
		Content         string `json:"content,omitempty"`
		MetaTitle       string `json:"metaTitle,omitempty"`
		MetaDescription string `json:"metaDescription,omitempty"`
	}
}

type ListPagesInput struct {
	PaginationParams
	Status  string `query:"status" required:"false" doc:"Filter by publication state"`
	PageKey string `query:"pageKey" required:"false" doc:"Filter by page key"`
}

type UpdatePageInput struct {
	ID   string `path:"id" doc:"Page ID"`
	Body struct {
		PageKey         *string `json:"pageKey,omitempty"`
		Slug            *string `json:"slug,omitempty"`
		Title           *string `json:"title,omitempty"`
		Content         *string `json:"content,omitempty"`
		MetaTitle       *string `json:"metaTitle,omitempty"`
		MetaDescription *string `json:"metaDescription,omitempty"`
		Status          *string `json:"status,omitempty" doc:"draft, published or archived"`
	}
}

func registerPages(api huma.API, svc *app.PageService) {
	tags := []string{"Pages"}

	huma.Register(api, huma.Operation{
		OperationID: "create-page",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/pages",
		Summary:     "Create a draft page",
		Tags:        tags,
	}, func(ctx context.Context, input *CreatePageInput) (*Output[PageResponse], error) {
		page, err := svc.Create(ctx, domain.NewPageInput{
			PageKey:         input.Body.PageKey,
			Slug:            input.Body.Slug,
			Title:           input.Body.Title,
			Content:         input.Body.Content,
			MetaTitle:       input.Body.MetaTitle,
			MetaDescription: input.Body.MetaDescription,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[PageResponse]{Body: toPageResponse(page)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-page",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/pages/{id}",
		Summary:     "Get a page by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[PageResponse], error) {
		page, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[PageResponse]{Body: toPageResponse(page)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-pages",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/pages",
		Summary:     "List pages",
		Tags:        tags,
	}, func(ctx context.Context, input *ListPagesInput) (*ListOutput[PageResponse], error) {
		filter := domain.PageFilter{ListFilter: input.filter(), PageKey: input.PageKey}
		if input.Status != "" {
			s := domain.PageStatus(input.Status)
			filter.Status = &s
		}
		res, err := svc.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toPageResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-page",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/pages/{id}",
		Summary:     "Update a page",
		Description: "Absent fields are left unchanged. Moving to published captures the publish snapshot.",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdatePageInput) (*Output[PageResponse], error) {
		b := input.Body
		patch := domain.PagePatch{
			PageKey:         b.PageKey,
			Slug:            b.Slug,
			Title:           b.Title,
			Content:         b.Content,
			MetaTitle:       b.MetaTitle,
			MetaDescription: b.MetaDescription,
		}
		if b.Status != nil {
			s := domain.PageStatus(*b.Status)
			patch.Status = &s
		}
		page, err := svc.Update(ctx, input.ID, patch)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[PageResponse]{Body: toPageResponse(page)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-page",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/pages/{id}",
		Summary:       "Delete a page",
		Description:   "Protected pages cannot be deleted; archive them instead.",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}
