// AngelaMos | 2026
// entity.go

package permission

import (
	"github.com/carterperez-dev/backoffice/internal/core"
)

// Permission is a reusable bundle of four independent capability flags.
// No flag implies another: canDelete does not grant canRead.
type Permission struct {
	ID        int64 `db:"id"`
	CanRead   bool  `db:"can_read"`
	CanCreate bool  `db:"can_create"`
	CanUpdate bool  `db:"can_update"`
	CanDelete bool  `db:"can_delete"`
	core.Timestamps
}

// RolFormPermission is the authorization edge binding a role, a form,
// and a permission bundle. At most one active row should exist per
// (rol_id, form_id) pair; writes enforce this, and the resolver
// tolerates violations deterministically.
type RolFormPermission struct {
	ID           int64 `db:"id"`
	RolID        int64 `db:"rol_id"`
	FormID       int64 `db:"form_id"`
	PermissionID int64 `db:"permission_id"`
	core.Timestamps
}
