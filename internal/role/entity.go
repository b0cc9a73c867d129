// AngelaMos | 2026
// entity.go

package role

import (
	"github.com/carterperez-dev/backoffice/internal/core"
)

// Role is a named permission holder. IsAdministrator marks the reserved
// capability that grants the full back-office menu; it is a flag, never a
// well-known id.
type Role struct {
	ID              int64   `db:"id"`
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	IsAdministrator bool    `db:"is_administrator"`
	core.Timestamps
}

// RolUser links a user to a role. A user may hold any number of roles;
// membership is revoked by soft delete.
type RolUser struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`
	RolID  int64 `db:"rol_id"`
	core.Timestamps
}
