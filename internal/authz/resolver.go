// AngelaMos | 2026
// resolver.go

package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/backoffice/internal/core"
	"github.com/carterperez-dev/backoffice/internal/form"
	"github.com/carterperez-dev/backoffice/internal/permission"
	"github.com/carterperez-dev/backoffice/internal/role"
)

// Store is the read surface resolution runs over. Lookups return
// core.ErrNotFound for absent ids; form and permission lookups return
// soft-deleted records as-is so the resolver can apply its own filtering.
type Store interface {
	GetRoleByID(ctx context.Context, id int64) (*role.Role, error)
	GetRolFormPermissionsByRolID(ctx context.Context, rolID int64) ([]permission.RolFormPermission, error)
	GetFormByID(ctx context.Context, id int64) (*form.Form, error)
	GetPermissionByID(ctx context.Context, id int64) (*permission.Permission, error)
}

// ResolvedPermission is one form the role can act on, with the four
// capability flags in effect. FormActive is carried through so consumers
// can render an inactive form differently; it never gates inclusion —
// only a read flag does that, at the consumer's discretion.
type ResolvedPermission struct {
	FormID     int64  `json:"form_id"`
	FormName   string `json:"form_name"`
	FormCode   string `json:"form_code"`
	FormActive bool   `json:"form_active"`
	CanRead    bool   `json:"can_read"`
	CanCreate  bool   `json:"can_create"`
	CanUpdate  bool   `json:"can_update"`
	CanDelete  bool   `json:"can_delete"`
}

// Resolver maps a role to its effective per-form capability set. It is a
// pure read path: no in-process state, safe for any number of concurrent
// invocations.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger,
	}
}

// ResolveRolePermissions returns one entry per (form, permission) pair in
// effect for the role. An unknown role yields an empty result, not an
// error: the caller sees "no permissions assigned", and existence checks
// belong to whoever needs them. Storage failures propagate unchanged.
//
// Rows whose linked form or permission is soft-deleted are dropped. A
// linked record that has vanished entirely mid-iteration is skipped so one
// broken row cannot take down the whole resolution.
func (r *Resolver) ResolveRolePermissions(
	ctx context.Context,
	rolID int64,
) ([]ResolvedPermission, error) {
	if rolID <= 0 {
		return nil, fmt.Errorf("resolve role permissions: %w", core.ErrInvalidInput)
	}

	rows, err := r.store.GetRolFormPermissionsByRolID(ctx, rolID)
	if err != nil {
		return nil, fmt.Errorf("resolve role permissions: %w", err)
	}

	winners := r.dedupeByForm(ctx, rolID, rows)

	resolved := make([]ResolvedPermission, 0, len(winners))
	for _, row := range winners {
		f, err := r.store.GetFormByID(ctx, row.FormID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve form %d: %w", row.FormID, err)
		}
		if f.IsDeleted() {
			continue
		}

		p, err := r.store.GetPermissionByID(ctx, row.PermissionID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve permission %d: %w", row.PermissionID, err)
		}
		if p.IsDeleted() {
			continue
		}

		resolved = append(resolved, ResolvedPermission{
			FormID:     f.ID,
			FormName:   f.Name,
			FormCode:   f.Code,
			FormActive: f.Active,
			CanRead:    p.CanRead,
			CanCreate:  p.CanCreate,
			CanUpdate:  p.CanUpdate,
			CanDelete:  p.CanDelete,
		})
	}

	return resolved, nil
}

// dedupeByForm drops soft-deleted rows and collapses duplicate active rows
// for the same form down to the latest-created one. Duplicates are a
// write-path integrity violation; resolution tolerates them
// deterministically and logs rather than failing. First-seen order per
// form is preserved so output is stable across calls.
func (r *Resolver) dedupeByForm(
	ctx context.Context,
	rolID int64,
	rows []permission.RolFormPermission,
) []permission.RolFormPermission {
	winners := make([]permission.RolFormPermission, 0, len(rows))
	seen := make(map[int64]int, len(rows))

	for _, row := range rows {
		if row.IsDeleted() {
			continue
		}

		idx, dup := seen[row.FormID]
		if !dup {
			seen[row.FormID] = len(winners)
			winners = append(winners, row)
			continue
		}

		dropped := row
		if row.CreatedAt.After(winners[idx].CreatedAt) {
			dropped = winners[idx]
			winners[idx] = row
		}

		r.logger.WarnContext(ctx, "duplicate active rol-form-permission rows",
			"rol_id", rolID,
			"form_id", row.FormID,
			"kept_id", winners[idx].ID,
			"dropped_id", dropped.ID,
		)
		core.AddSpanEvent(ctx, "authz.duplicate_assignment",
			attribute.Int64("rol_id", rolID),
			attribute.Int64("form_id", row.FormID),
		)
	}

	return winners
}

// HasPermission reports whether the role may perform action on the form
// with the given code. Form codes match case-insensitively; an unmatched
// code or unrecognized action is false, never an error. Default-deny.
func (r *Resolver) HasPermission(
	ctx context.Context,
	rolID int64,
	formCode, action string,
) (bool, error) {
	resolved, err := r.ResolveRolePermissions(ctx, rolID)
	if err != nil {
		return false, err
	}

	for _, entry := range resolved {
		if !strings.EqualFold(entry.FormCode, formCode) {
			continue
		}

		switch strings.ToLower(action) {
		case "read":
			return entry.CanRead, nil
		case "create":
			return entry.CanCreate, nil
		case "update":
			return entry.CanUpdate, nil
		case "delete":
			return entry.CanDelete, nil
		default:
			return false, nil
		}
	}

	return false, nil
}

// IsAdministrator reports whether the role carries the administrator
// capability flag. An unknown or soft-deleted role is not an
// administrator.
func (r *Resolver) IsAdministrator(
	ctx context.Context,
	rolID int64,
) (bool, error) {
	if rolID <= 0 {
		return false, fmt.Errorf("is administrator: %w", core.ErrInvalidInput)
	}

	rl, err := r.store.GetRoleByID(ctx, rolID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("is administrator: %w", err)
	}

	return rl.IsAdministrator, nil
}
