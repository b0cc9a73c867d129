// AngelaMos | 2026
// service.go

package user

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

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	email := strings.ToLower(req.Email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create user %q: %w", email, core.ErrDuplicateKey)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get user: %w", core.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, fmt.Errorf("get user by email: %w", core.ErrInvalidInput)
	}
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != user.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf(
					"update user %q: %w", email, core.ErrDuplicateKey)
			}
		}
		user.Email = email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	req UpdatePasswordRequest,
) error {
	if id <= 0 {
		return fmt.Errorf("update password: %w", core.ErrInvalidInput)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete user: %w", core.ErrInvalidInput)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) HardDelete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("hard delete user: %w", core.ErrInvalidInput)
	}
	return s.repo.HardDelete(ctx, id)
}

// VerifyPassword checks a candidate password against the stored hash.
// Kept on the service so callers never touch the hash directly.
func (s *Service) VerifyPassword(
	ctx context.Context,
	id int64,
	password string,
) (bool, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	return core.VerifyPassword(password, user.PasswordHash)
}
