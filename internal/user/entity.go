// AngelaMos | 2026
// entity.go

package user

import (
	"github.com/carterperez-dev/backoffice/internal/core"
)

// User is a back-office account. Email is unique among non-deleted users;
// a soft-deleted account frees its address for reuse.
type User struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	core.Timestamps
}
