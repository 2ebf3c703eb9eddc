package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

// --- Specialties ---

// SpecialtyResponse is the API representation of a specialty.
type SpecialtyResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	ShowOnWeb   bool   `json:"showOnWeb"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toSpecialtyResponse(s domain.Specialty) SpecialtyResponse {
	return SpecialtyResponse{
		ID:          s.ID,
		Slug:        s.Slug,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		ShowOnWeb:   s.ShowOnWeb,
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

type CreateSpecialtyInput struct {
	Body struct {
		Slug        string `json:"slug"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		ShowOnWeb   bool   `json:"showOnWeb,omitempty"`
	}
}

type ListSpecialtiesInput struct {
	PaginationParams
	IsActive  string `query:"isActive" required:"false" doc:"true or false"`
	ShowOnWeb string `query:"showOnWeb" required:"false" doc:"true or false"`
}

type UpdateSpecialtyInput struct {
	ID   string `path:"id" doc:"Specialty ID"`
	Body struct {
		Slug        *string `json:"slug,omitempty"`
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
		IsActive    *bool   `json:"isActive,omitempty"`
		ShowOnWeb   *bool   `json:"showOnWeb,omitempty"`
	}
}

func registerSpecialties(api huma.API, svc *app.SpecialtyService) {
	tags := []string{"Specialties"}

	huma.Register(api, huma.Operation{
		OperationID: "create-specialty",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/specialties",
		Summary:     "Create a specialty",
		Tags:        tags,
	}, func(ctx context.Context, input *CreateSpecialtyInput) (*Output[SpecialtyResponse], error) {
		s, err := svc.Create(ctx, domain.NewSpecialtyInput{
			Slug:        input.Body.Slug,
			Name:        input.Body.Name,
			Description: input.Body.Description,
			ShowOnWeb:   input.Body.ShowOnWeb,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[SpecialtyResponse]{Body: toSpecialtyResponse(s)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-specialty",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/specialties/{id}",
		Summary:     "Get a specialty by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[SpecialtyResponse], error) {
		s, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[SpecialtyResponse]{Body: toSpecialtyResponse(s)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-specialties",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/specialties",
		Summary:     "List specialties",
		Tags:        tags,
	}, func(ctx context.Context, input *ListSpecialtiesInput) (*ListOutput[SpecialtyResponse], error) {
		isActive, err := boolParam("isActive", input.IsActive)
		if err != nil {
			return nil, err
		}
		showOnWeb, err := boolParam("showOnWeb", input.ShowOnWeb)
		if err != nil {
			return nil, err
		}
		res, err := svc.List(ctx, domain.SpecialtyFilter{
			ListFilter: input.filter(),
			IsActive:   isActive,
			ShowOnWeb:  showOnWeb,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toSpecialtyResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-specialty",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/specialties/{id}",
		Summary:     "Update a specialty",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateSpecialtyInput) (*Output[SpecialtyResponse], error) {
		b := input.Body
		s, err := svc.Update(ctx, input.ID, domain.SpecialtyPatch{
			Slug:        b.Slug,
			Name:        b.Name,
			Description: b.Description,
			IsActive:    b.IsActive,
			ShowOnWeb:   b.ShowOnWeb,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[SpecialtyResponse]{Body: toSpecialtyResponse(s)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-specialty",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/specialties/{id}",
		Summary:       "Delete a specialty",
		Description:   "Fails while programs or instructors still reference the specialty.",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}

// --- Programs ---

// ProgramResponse is the API representation of a program.
type ProgramResponse struct {
	ID              string `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	SpecialtyID     string `json:"specialtyId,omitempty"`
	BusinessModelID string `json:"businessModelId,omitempty"`
	IsActive        bool   `json:"isActive"`
	DisplayOrder    int    `json:"displayOrder"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toProgramResponse(p domain.Program) ProgramResponse {
	return ProgramResponse{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Summary:         p.Summary,
		SpecialtyID:     p.SpecialtyID,
		BusinessModelID: p.BusinessModelID,
		IsActive:        p.IsActive,
		DisplayOrder:    p.DisplayOrder,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

type CreateProgramInput struct {
	Body struct {
		Slug            string `json:"slug"`
		Title           string `json:"title"`
		Summary         string `json:"summary,omitempty"`
		SpecialtyID     string `json:"specialtyId,omitempty"`
		BusinessModelID string `json:"businessModelId,omitempty"`
		DisplayOrder    int    `json:"displayOrder,omitempty"`
	}
}

type ListProgramsInput struct {
	PaginationParams
	SpecialtyID     string `query:"specialtyId" required:"false"`
	BusinessModelID string `query:"businessModelId" required:"false"`
	IsActive        string `query:"isActive" required:"false" doc:"true or false"`
}

type UpdateProgramInput struct {
	ID   string `path:"id" doc:"Program ID"`
	Body struct {
		Slug            *string `json:"slug,omitempty"`
		Title           *string `json:"title,omitempty"`
		Summary         *string `json:"summary,omitempty"`
		SpecialtyID     *string `json:"specialtyId,omitempty" doc:"Empty string clears the reference"`
		BusinessModelID *string `json:"businessModelId,omitempty" doc:"Empty string clears the reference"`
		IsActive        *bool   `json:"isActive,omitempty"`
		DisplayOrder    *int    `json:"displayOrder,omitempty"`
	}
}

func registerPrograms(api huma.API, svc *app.ProgramService) {
	tags := []string{"Programs"}

	huma.Register(api, huma.Operation{
		OperationID: "create-program",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/programs",
		Summary:     "Create a program",
		Tags:        tags,
	}, func(ctx context.Context, input *CreateProgramInput) (*Output[ProgramResponse], error) {
		p, err := svc.Create(ctx, domain.NewProgramInput{
			Slug:            input.Body.Slug,
			Title:           input.Body.Title,
			Summary:         input.Body.Summary,
			SpecialtyID:     input.Body.SpecialtyID,
			BusinessModelID: input.Body.BusinessModelID,
			DisplayOrder:    input.Body.DisplayOrder,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[ProgramResponse]{Body: toProgramResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-program",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/programs/{id}",
		Summary:     "Get a program by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[ProgramResponse], error) {
		p, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[ProgramResponse]{Body: toProgramResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-programs",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/programs",
		Summary:     "List programs",
		Tags:        tags,
	}, func(ctx context.Context, input *ListProgramsInput) (*ListOutput[ProgramResponse], error) {
		isActive, err := boolParam("isActive", input.IsActive)
		if err != nil {
			return nil, err
		}
		res, err := svc.List(ctx, domain.ProgramFilter{
			ListFilter:      input.filter(),
			SpecialtyID:     input.SpecialtyID,
			BusinessModelID: input.BusinessModelID,
			IsActive:        isActive,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toProgramResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-program",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/programs/{id}",
		Summary:     "Update a program",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateProgramInput) (*Output[ProgramResponse], error) {
		b := input.Body
		p, err := svc.Update(ctx, input.ID, domain.ProgramPatch{
			Slug:            b.Slug,
			Title:           b.Title,
			Summary:         b.Summary,
			SpecialtyID:     b.SpecialtyID,
			BusinessModelID: b.BusinessModelID,
			IsActive:        b.IsActive,
			DisplayOrder:    b.DisplayOrder,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[ProgramResponse]{Body: toProgramResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-program",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/programs/{id}",
		Summary:       "Delete a program",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}

// --- Instructors ---

// InstructorResponse is the API representation of an instructor.
type InstructorResponse struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	FullName     string   `json:"fullName"`
	Bio          string   `json:"bio"`
	SpecialtyIDs []string `json:"specialtyIds"`
	IsActive     bool     `json:"isActive"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toInstructorResponse(i domain.Instructor) InstructorResponse {
	ids := i.SpecialtyIDs
	if ids == nil {
		ids = []string{}
	}
	return InstructorResponse{
		ID:           i.ID,
		Slug:         i.Slug,
		FullName:     i.FullName,
		Bio:          i.Bio,
		SpecialtyIDs: ids,
		IsActive:     i.IsActive,
		CreatedAt:    formatTime(i.CreatedAt),
		UpdatedAt:    formatTime(i.UpdatedAt),
	}
}

type CreateInstructorInput struct {
	Body struct {
		Slug         string   `json:"slug"`
		FullName     string   `json:"fullName"`
		Bio          string   `json:"bio,omitempty"`
		SpecialtyIDs []string `json:"specialtyIds,omitempty"`
	}
}

type ListInstructorsInput struct {
	PaginationParams
	SpecialtyID string `query:"specialtyId" required:"false"`
	IsActive    string `query:"isActive" required:"false" doc:"true or false"`
}

type UpdateInstructorInput struct {
	ID   string `path:"id" doc:"Instructor ID"`
	Body struct {
		Slug         *string   `json:"slug,omitempty"`
		FullName     *string   `json:"fullName,omitempty"`
		Bio          *string   `json:"bio,omitempty"`
		SpecialtyIDs *[]string `json:"specialtyIds,omitempty" doc:"Replaces the full specialty list"`
		IsActive     *bool     `json:"isActive,omitempty"`
	}
}

func registerInstructors(api huma.API, svc *app.InstructorService) {
	tags := []string{"Instructors"}

	huma.Register(api, huma.Operation{
		OperationID: "create-instructor",
		Method:      http.MethodPost,
		Path:        adminPrefix + "/instructors",
		Summary:     "Create an instructor",
		Tags:        tags,
	}, func(ctx context.Context, input *CreateInstructorInput) (*Output[InstructorResponse], error) {
		in, err := svc.Create(ctx, domain.NewInstructorInput{
			Slug:         input.Body.Slug,
			FullName:     input.Body.FullName,
			Bio:          input.Body.Bio,
			SpecialtyIDs: input.Body.SpecialtyIDs,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[InstructorResponse]{Body: toInstructorResponse(in)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-instructor",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/instructors/{id}",
		Summary:     "Get an instructor by ID",
		Tags:        tags,
	}, func(ctx context.Context, input *IDInput) (*Output[InstructorResponse], error) {
		in, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[InstructorResponse]{Body: toInstructorResponse(in)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-instructors",
		Method:      http.MethodGet,
		Path:        adminPrefix + "/instructors",
		Summary:     "List instructors",
		Tags:        tags,
	}, func(ctx context.Context, input *ListInstructorsInput) (*ListOutput[InstructorResponse], error) {
		isActive, err := boolParam("isActive", input.IsActive)
		if err != nil {
			return nil, err
		}
		res, err := svc.List(ctx, domain.InstructorFilter{
			ListFilter:  input.filter(),
			SpecialtyID: input.SpecialtyID,
			IsActive:    isActive,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return toList(res, toInstructorResponse), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-instructor",
		Method:      http.MethodPatch,
		Path:        adminPrefix + "/instructors/{id}",
		Summary:     "Update an instructor",
		Tags:        tags,
	}, func(ctx context.Context, input *UpdateInstructorInput) (*Output[InstructorResponse], error) {
		b := input.Body
		in, err := svc.Update(ctx, input.ID, domain.InstructorPatch{
			Slug:         b.Slug,
			FullName:     b.FullName,
			Bio:          b.Bio,
			SpecialtyIDs: b.SpecialtyIDs,
			IsActive:     b.IsActive,
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &Output[InstructorResponse]{Body: toInstructorResponse(in)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-instructor",
		Method:        http.MethodDelete,
		Path:          adminPrefix + "/instructors/{id}",
		Summary:       "Delete an instructor",
		Tags:          tags,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &struct{}{}, nil
	})
}
