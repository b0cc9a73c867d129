// AngelaMos | 2026
// service.go

package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateForm(
	ctx context.Context,
	req CreateFormRequest,
) (*Form, error) {
	form := &Form{
		Name:   req.Name,
		Code:   strings.ToUpper(req.Code),
		Active: true,
	}
	if req.Active != nil {
		form.Active = *req.Active
	}

	if err := s.repo.CreateForm(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

func (s *Service) GetForm(ctx context.Context, id int64) (*Form, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get form: %w", core.ErrInvalidInput)
	}
	return s.repo.GetFormByID(ctx, id)
}

func (s *Service) GetFormByCode(
	ctx context.Context,
	code string,
) (*Form, error) {
	if code == "" {
		return nil, fmt.Errorf("get form by code: %w", core.ErrInvalidInput)
	}
	return s.repo.GetFormByCode(ctx, code)
}

func (s *Service) ListForms(
	ctx context.Context,
	params ListParams,
) ([]Form, int, error) {
	return s.repo.ListForms(ctx, params)
}

func (s *Service) UpdateForm(
	ctx context.Context,
	id int64,
	req UpdateFormRequest,
) (*Form, error) {
	form, err := s.GetForm(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		form.Name = *req.Name
	}
	if req.Code != nil {
		form.Code = strings.ToUpper(*req.Code)
	}
	if req.Active != nil {
		form.Active = *req.Active
	}

	if err := s.repo.UpdateForm(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

func (s *Service) DeleteForm(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete form: %w", core.ErrInvalidInput)
	}
	return s.repo.SoftDeleteForm(ctx, id)
}

func (s *Service) HardDeleteForm(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("hard delete form: %w", core.ErrInvalidInput)
	}
	return s.repo.HardDeleteForm(ctx, id)
}

func (s *Service) CreateModule(
	ctx context.Context,
	req CreateModuleRequest,
) (*Module, error) {
	module := &Module{
		Code:   strings.ToUpper(req.Code),
		Active: true,
	}
	if req.Active != nil {
		module.Active = *req.Active
	}

	if err := s.repo.CreateModule(ctx, module); err != nil {
		return nil, err
	}

	return module, nil
}

func (s *Service) GetModule(ctx context.Context, id int64) (*Module, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get module: %w", core.ErrInvalidInput)
	}
	return s.repo.GetModuleByID(ctx, id)
}

func (s *Service) ListModules(
	ctx context.Context,
	params ListParams,
) ([]Module, int, error) {
	return s.repo.ListModules(ctx, params)
}

func (s *Service) UpdateModule(
	ctx context.Context,
	id int64,
	req UpdateModuleRequest,
) (*Module, error) {
	module, err := s.GetModule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		module.Code = strings.ToUpper(*req.Code)
	}
	if req.Active != nil {
		module.Active = *req.Active
	}

	if err := s.repo.UpdateModule(ctx, module); err != nil {
		return nil, err
	}

	return module, nil
}

func (s *Service) DeleteModule(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete module: %w", core.ErrInvalidInput)
	}
	return s.repo.SoftDeleteModule(ctx, id)
}

func (s *Service) HardDeleteModule(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("hard delete module: %w", core.ErrInvalidInput)
	}
	return s.repo.HardDeleteModule(ctx, id)
}

func (s *Service) AssignFormToModule(
	ctx context.Context,
	req AssignFormRequest,
) (*FormModule, error) {
	if _, err := s.repo.GetFormByID(ctx, req.FormID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetModuleByID(ctx, req.ModuleID); err != nil {
		return nil, err
	}

	link := &FormModule{
		FormID:   req.FormID,
		ModuleID: req.ModuleID,
	}

	if err := s.repo.AssignFormToModule(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *Service) FormsInModule(
	ctx context.Context,
	moduleID int64,
) ([]Form, error) {
	if moduleID <= 0 {
		return nil, fmt.Errorf("forms in module: %w", core.ErrInvalidInput)
	}
	return s.repo.FormsInModule(ctx, moduleID)
}

func (s *Service) RemoveFormFromModule(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("remove form from module: %w", core.ErrInvalidInput)
	}
	return s.repo.RemoveFormFromModule(ctx, id)
}
