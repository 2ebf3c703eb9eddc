package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// BusinessModelResponse is the API representation of a business model.
type BusinessModelResponse struct {
	ID           string `json:"id"`
	InternalCode string `json:"internalCode" doc:"Stable code used by integrations"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsActive     bool   `json:"isActive"`
	ShowOnWeb    bool   `json:"showOnWeb"`
	DisplayOrder int    `json:"displayOrder"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func toBusinessModelResponse(b domain.BusinessModel) BusinessModelResponse {
	return BusinessModelResponse{
		ID:           b.ID,
		InternalCode: b.InternalCode,
		Slug:         b.Slug,
		Name:         b.Name,
		Description:  b.Description,
		IsActive:     b.IsActive,
		ShowOnWeb:    b.ShowOnWeb,
		DisplayOrder: b.DisplayOrder,
		CreatedAt:    formatTime(b.CreatedAt),
		UpdatedAt:    formatTime(b.UpdatedAt),
	}
}

type CreateBusinessModelInput struct {
	Body struct {
		InternalCode string `json:"internalCode"`
		Slug         string `json:"slug"`
		Name         string `json:"name"`
		Description  string `json:"description,omitempty"`
		ShowOnWeb    bool   `json:"showOnWeb,omitempty"`
		DisplayOrder int    `json:"displayOrder,omitempty"`
	}
}

type ListBusinessModelsInput struct {
	PaginationParams
	IsActive  string `query:"isActive" required:"false" doc:"true or false"`
	ShowOnWeb string `query:"showOnWeb" required:"false" doc:"true or false"`
}

type UpdateBusinessModelInput struct {
	ID   string `path:"id" doc:"Business model ID"`
	Body struct {
		InternalCode *string `json:"internalCode,omitempty"`
		Slug         *string `json:"slug,omitempty"`
		Name         *string `json:"name,omitempty"`
		Description  *string `json:"description,omitempty"`
		IsActive     *bool   `json:"isActive,omitempty"`
		ShowOnWeb    *bool   `json:"showOnWeb,omitempty"`
		DisplayOrder *int    `json:"displayOrder,omitempty"`
	}
}

func registerBusinessModels(api huma.API, svc *app.BusinessModelService) {
	tags := []string{"Business models"}

	huma.Register(api, huma.Operation{
		OperationID: "create-business-model",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/business-models",
		Summary:     "Create a business model",
		Tags:        tags,
	}, func(ctx context.Context, input *CreateBusinessModelInput) (*Output[BusinessModelResponse], error) {
		model, err := svc.Create(ctx, domain.NewBusinessModelInput{
			InternalCode: input.Body.InternalCode,
			Slug:         input.Body.Slug,
			Name:         input.Body.Name,
			Description:  input.Body.Description,
			ShowOnWeb:    input.Body.ShowOnWeb,
			DisplayOrder: input.Body.DisplayOrder,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[BusinessModelResponse]{Body: toBusinessModelResponse(model)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-business-model",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/business-models/{id}",
		Summary:     "Get a business model by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[BusinessModelResponse], error) {
		model, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[BusinessModelResponse]{Body: toBusinessModelResponse(model)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-business-models",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/business-models",
		Summary:     "List business models",
		Tags:        tags,
	}, func(ctx context.Context, input *ListBusinessModelsInput) (*ListOutput[BusinessModelResponse], error) {
		isActive, err := boolParam("isActive", input.IsActive)
		if err != nil {
			return nil, err
		}
		showOnWeb, err := boolParam("showOnWeb", input.ShowOnWeb)
		if err != nil {
			return nil, err
		}
		res, err := svc.List(ctx, domain.BusinessModelFilter{
			ListFilter: input.filter(),
			IsActive:   isActive,
			ShowOnWeb:  showOnWeb,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toBusinessModelResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-business-model",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/business-models/{id}",
		Summary:     "Update a business model",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateBusinessModelInput) (*Output[BusinessModelResponse], error) {
		b := input.Body
		model, err := svc.Update(ctx, input.ID, domain.BusinessModelPatch{
			InternalCode: b.InternalCode,
			Slug:         b.Slug,
			Name:         b.Name,
			Description:  b.Description,
			IsActive:     b.IsActive,
			ShowOnWeb:    b.ShowOnWeb,
			DisplayOrder: b.DisplayOrder,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[BusinessModelResponse]{Body: toBusinessModelResponse(model)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-business-model",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/business-models/{id}",
		Summary:       "Delete a business model",
		Description:   "Protected models cannot be deleted; set isActive=false instead.",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}
