// AngelaMos | 2026
// service.go

package permission

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePermission(
	ctx context.Context,
	req CreatePermissionRequest,
) (*Permission, error) {
	perm := &Permission{
		CanRead:   req.CanRead,
		CanCreate: req.CanCreate,
		CanUpdate: req.CanUpdate,
		CanDelete: req.CanDelete,
	}

	if err := s.repo.CreatePermission(ctx, perm); err != nil {
		return nil, err
	}

	return perm, nil
}

func (s *Service) GetPermission(
	ctx context.Context,
	id int64,
) (*Permission, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get permission: %w", core.ErrInvalidInput)
	}
	return s.repo.GetPermissionByID(ctx, id)
}

func (s *Service) ListPermissions(
	ctx context.Context,
	params ListParams,
) ([]Permission, int, error) {
	return s.repo.ListPermissions(ctx, params)
}

func (s *Service) UpdatePermission(
	ctx context.Context,
	id int64,
	req UpdatePermissionRequest,
) (*Permission, error) {
	perm, err := s.GetPermission(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CanRead != nil {
		perm.CanRead = *req.CanRead
	}
	if req.CanCreate != nil {
		perm.CanCreate = *req.CanCreate
	}
	if req.CanUpdate != nil {
		perm.CanUpdate = *req.CanUpdate
	}
	if req.CanDelete != nil {
		perm.CanDelete = *req.CanDelete
	}

	if err := s.repo.UpdatePermission(ctx, perm); err != nil {
		return nil, err
	}

	return perm, nil
}

func (s *Service) DeletePermission(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete permission: %w", core.ErrInvalidInput)
	}
	return s.repo.SoftDeletePermission(ctx, id)
}

func (s *Service) HardDeletePermission(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("hard delete permission: %w", core.ErrInvalidInput)
	}
	return s.repo.HardDeletePermission(ctx, id)
}

// AssignPermission binds a role, a form, and a permission bundle. A second
// active assignment for the same (rol, form) pair is rejected here so the
// anomaly the resolver tolerates never originates from this path.
func (s *Service) AssignPermission(
	ctx context.Context,
	req AssignPermissionRequest,
) (*RolFormPermission, error) {
	exists, err := s.repo.ActiveAssignmentExists(ctx, req.RolID, req.FormID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf(
			"assignment for rol %d form %d: %w",
			req.RolID, req.FormID, core.ErrDuplicateKey)
	}

	rfp := &RolFormPermission{
		RolID:        req.RolID,
		FormID:       req.FormID,
		PermissionID: req.PermissionID,
	}

	if err := s.repo.CreateAssignment(ctx, rfp); err != nil {
		return nil, err
	}

	return rfp, nil
}

func (s *Service) GetAssignment(
	ctx context.Context,
	id int64,
) (*RolFormPermission, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get assignment: %w", core.ErrInvalidInput)
	}
	return s.repo.GetAssignmentByID(ctx, id)
}

func (s *Service) AssignmentsByRol(
	ctx context.Context,
	rolID int64,
) ([]AssignmentDetailResponse, error) {
	if rolID <= 0 {
		return nil, fmt.Errorf("assignments by rol: %w", core.ErrInvalidInput)
	}

	rows, err := s.repo.AssignmentsByRolID(ctx, rolID)
	if err != nil {
		return nil, err
	}

	return ToAssignmentDetailResponseList(rows), nil
}

func (s *Service) DeleteAssignment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete assignment: %w", core.ErrInvalidInput)
	}
	return s.repo.SoftDeleteAssignment(ctx, id)
}

func (s *Service) HardDeleteAssignment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("hard delete assignment: %w", core.ErrInvalidInput)
	}
	return s.repo.HardDeleteAssignment(ctx, id)
}
