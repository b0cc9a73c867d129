// AngelaMos | 2026
// dto.go

package permission

import (
	"time"
)

type CreatePermissionRequest struct {
	CanRead   bool `json:"can_read"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

type UpdatePermissionRequest struct {
	CanRead   *bool `json:"can_read,omitempty"`
	CanCreate *bool `json:"can_create,omitempty"`
	CanUpdate *bool `json:"can_update,omitempty"`
	CanDelete *bool `json:"can_delete,omitempty"`
}

type AssignPermissionRequest struct {
	RolID        int64 `json:"rol_id"        validate:"required,gt=0"`
	FormID       int64 `json:"form_id"       validate:"required,gt=0"`
	PermissionID int64 `json:"permission_id" validate:"required,gt=0"`
}

type PermissionResponse struct {
	ID        int64      `json:"id"`
	CanRead   bool       `json:"can_read"`
	CanCreate bool       `json:"can_create"`
	CanUpdate bool       `json:"can_update"`
	CanDelete bool       `json:"can_delete"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type AssignmentResponse struct {
	ID           int64     `json:"id"`
	RolID        int64     `json:"rol_id"`
	FormID       int64     `json:"form_id"`
	PermissionID int64     `json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// assignmentDetailRow is the flat projection of the three-way join used
// by the by-role listing.
type assignmentDetailRow struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	RolID   int64   `db:"rol_id"`
	RolName string  `db:"rol_name"`
	RolDesc *string `db:"rol_description"`

	FormID     int64  `db:"form_id"`
	FormName   string `db:"form_name"`
	FormCode   string `db:"form_code"`
	FormActive bool   `db:"form_active"`

	PermissionID int64 `db:"permission_id"`
	CanRead      bool  `db:"can_read"`
	CanCreate    bool  `db:"can_create"`
	CanUpdate    bool  `db:"can_update"`
	CanDelete    bool  `db:"can_delete"`
}

type AssignmentDetailResponse struct {
	ID         int64                `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	Role       RoleProjection       `json:"role"`
	Form       FormProjection       `json:"form"`
	Permission PermissionProjection `json:"permission"`
}

type RoleProjection struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type FormProjection struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Active bool   `json:"active"`
}

type PermissionProjection struct {
	ID        int64 `json:"id"`
	CanRead   bool  `json:"can_read"`
	CanCreate bool  `json:"can_create"`
	CanUpdate bool  `json:"can_update"`
	CanDelete bool  `json:"can_delete"`
}

type ListParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
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

func ToPermissionResponse(p *Permission) PermissionResponse {
	return PermissionResponse{
		ID:        p.ID,
		CanRead:   p.CanRead,
		CanCreate: p.CanCreate,
		CanUpdate: p.CanUpdate,
		CanDelete: p.CanDelete,
		CreatedAt: p.CreatedAt,
		DeletedAt: p.DeletedAt,
	}
}

func ToPermissionResponseList(perms []Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		responses = append(responses, ToPermissionResponse(&p))
	}
	return responses
}

func ToAssignmentResponse(rfp *RolFormPermission) AssignmentResponse {
	return AssignmentResponse{
		ID:           rfp.ID,
		RolID:        rfp.RolID,
		FormID:       rfp.FormID,
		PermissionID: rfp.PermissionID,
		CreatedAt:    rfp.CreatedAt,
	}
}

func toAssignmentDetailResponse(row *assignmentDetailRow) AssignmentDetailResponse {
	return AssignmentDetailResponse{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Role: RoleProjection{
			ID:          row.RolID,
			Name:        row.RolName,
			Description: row.RolDesc,
		},
		Form: FormProjection{
			ID:     row.FormID,
			Name:   row.FormName,
			Code:   row.FormCode,
			Active: row.FormActive,
		},
		Permission: PermissionProjection{
			ID:        row.PermissionID,
			CanRead:   row.CanRead,
			CanCreate: row.CanCreate,
			CanUpdate: row.CanUpdate,
			CanDelete: row.CanDelete,
		},
	}
}

func ToAssignmentDetailResponseList(rows []assignmentDetailRow) []AssignmentDetailResponse {
	responses := make([]AssignmentDetailResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toAssignmentDetailResponse(&row))
	}
	return responses
}
