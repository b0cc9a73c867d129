// AngelaMos | 2026
// service.go

package role

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

func (s *Service) Create(
	ctx context.Context,
	req CreateRoleRequest,
) (*Role, error) {
	// Name uniqueness is scoped to non-deleted roles; a soft-deleted role
	// does not block reuse of its name.
	exists, err := s.repo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create role: %w", core.ErrDuplicateKey)
	}

	role := &Role{
		Name:            req.Name,
		Description:     req.Description,
		IsAdministrator: req.IsAdministrator,
	}

	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Role, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get role: %w", core.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListRolesParams,
) ([]Role, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateRoleRequest,
) (*Role, error) {
	role, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != role.Name {
		exists, err := s.repo.ExistsByName(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("update role: %w", core.ErrDuplicateKey)
		}
		role.Name = *req.Name
	}

	if req.Description != nil {
		role.Description = req.Description
	}

	if req.IsAdministrator != nil {
		role.IsAdministrator = *req.IsAdministrator
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete role: %w", core.ErrInvalidInput)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) HardDelete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("hard delete role: %w", core.ErrInvalidInput)
	}
	return s.repo.HardDelete(ctx, id)
}

func (s *Service) AssignUser(
	ctx context.Context,
	rolID int64,
	req AssignUserRequest,
) (*RolUser, error) {
	if rolID <= 0 {
		return nil, fmt.Errorf("assign user: %w", core.ErrInvalidInput)
	}

	if _, err := s.repo.GetByID(ctx, rolID); err != nil {
		return nil, err
	}

	membership := &RolUser{
		UserID: req.UserID,
		RolID:  rolID,
	}

	if err := s.repo.AssignUser(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

func (s *Service) RolesForUser(
	ctx context.Context,
	userID int64,
) ([]Role, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("roles for user: %w", core.ErrInvalidInput)
	}
	return s.repo.RolesForUser(ctx, userID)
}

func (s *Service) RemoveUser(ctx context.Context, rolID, userID int64) error {
	if rolID <= 0 || userID <= 0 {
		return fmt.Errorf("remove user: %w", core.ErrInvalidInput)
	}
	return s.repo.RemoveUser(ctx, rolID, userID)
}
