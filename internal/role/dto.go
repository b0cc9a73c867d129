// AngelaMos | 2026
// dto.go

package role

import (
	"time"
)

type CreateRoleRequest struct {
	Name            string  `json:"name"        validate:"required,min=1,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=255"`
	IsAdministrator bool    `json:"is_administrator"`
}

type UpdateRoleRequest struct {
	Name            *string `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=255"`
	IsAdministrator *bool   `json:"is_administrator,omitempty"`
}

type AssignUserRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

type RoleResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description,omitempty"`
	IsAdministrator bool       `json:"is_administrator"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

type MembershipResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	RolID     int64     `json:"rol_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRolesParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListRolesParams) Normalize() {
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

func (p *ListRolesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToRoleResponse(r *Role) RoleResponse {
	return RoleResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		IsAdministrator: r.IsAdministrator,
		CreatedAt:       r.CreatedAt,
		DeletedAt:       r.DeletedAt,
	}
}

func ToRoleResponseList(roles []Role) []RoleResponse {
	responses := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, ToRoleResponse(&r))
	}
	return responses
}

func ToMembershipResponse(m *RolUser) MembershipResponse {
	return MembershipResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		RolID:     m.RolID,
		CreatedAt: m.CreatedAt,
	}
}
