// AngelaMos | 2026
// dto.go

package form

import (
	"time"
)

type CreateFormRequest struct {
	Name   string `json:"name"   validate:"required,min=1,max=100"`
	Code   string `json:"code"   validate:"required,min=1,max=50,uppercase"`
	Active *bool  `json:"active" validate:"omitempty"`
}

type UpdateFormRequest struct {
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=1,max=100"`
	Code   *string `json:"code,omitempty"   validate:"omitempty,min=1,max=50,uppercase"`
	Active *bool   `json:"active,omitempty"`
}

type CreateModuleRequest struct {
	Code   string `json:"code"   validate:"required,min=1,max=50,uppercase"`
	Active *bool  `json:"active" validate:"omitempty"`
}

type UpdateModuleRequest struct {
	Code   *string `json:"code,omitempty" validate:"omitempty,min=1,max=50,uppercase"`
	Active *bool   `json:"active,omitempty"`
}

type AssignFormRequest struct {
	FormID   int64 `json:"form_id"   validate:"required,gt=0"`
	ModuleID int64 `json:"module_id" validate:"required,gt=0"`
}

type FormResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type ModuleResponse struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type FormModuleResponse struct {
	ID        int64     `json:"id"`
	FormID    int64     `json:"form_id"`
	ModuleID  int64     `json:"module_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ListParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToFormResponse(f *Form) FormResponse {
	return FormResponse{
		ID:        f.ID,
		Name:      f.Name,
		Code:      f.Code,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		DeletedAt: f.DeletedAt,
	}
}

func ToFormResponseList(forms []Form) []FormResponse {
	responses := make([]FormResponse, 0, len(forms))
	for _, f := range forms {
		responses = append(responses, ToFormResponse(&f))
	}
	return responses
}

func ToModuleResponse(m *Module) ModuleResponse {
	return ModuleResponse{
		ID:        m.ID,
		Code:      m.Code,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		DeletedAt: m.DeletedAt,
	}
}

func ToModuleResponseList(modules []Module) []ModuleResponse {
	responses := make([]ModuleResponse, 0, len(modules))
	for _, m := range modules {
		responses = append(responses, ToModuleResponse(&m))
	}
	return responses
}

func ToFormModuleResponse(fm *FormModule) FormModuleResponse {
	return FormModuleResponse{
		ID:        fm.ID,
		FormID:    fm.FormID,
		ModuleID:  fm.ModuleID,
		CreatedAt: fm.CreatedAt,
	}
}
