// AngelaMos | 2026
// entity.go

package form

import (
	"github.com/carterperez-dev/backoffice/internal/core"
)

// Form is a protected resource: a screen or capability that permission
// checks and the navigation menu are built around. Code is the stable
// identifier used for icon lookup and URLs; Active only affects how a menu
// item is displayed, not whether a read permission includes it.
type Form struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Code   string `db:"code"`
	Active bool   `db:"active"`
	core.Timestamps
}

// Module is a top-level grouping of forms.
type Module struct {
	ID     int64  `db:"id"`
	Code   string `db:"code"`
	Active bool   `db:"active"`
	core.Timestamps
}

// FormModule assigns a form to a module.
type FormModule struct {
	ID       int64 `db:"id"`
	FormID   int64 `db:"form_id"`
	ModuleID int64 `db:"module_id"`
	core.Timestamps
}
