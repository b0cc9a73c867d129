// AngelaMos | 2026
// store.go

package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/backoffice/internal/core"
	"github.com/carterperez-dev/backoffice/internal/form"
	"github.com/carterperez-dev/backoffice/internal/permission"
	"github.com/carterperez-dev/backoffice/internal/role"
)

// sqlStore backs the resolver with direct reads. Each call is an
// independent read-committed query; resolution never wraps its lookups in
// a transaction, so a result reflects rows as they existed at each
// individual read.
type sqlStore struct {
	db core.DBTX
}

func NewStore(db core.DBTX) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) GetRoleByID(
	ctx context.Context,
	id int64,
) (*role.Role, error) {
	query := `
		SELECT id, name, description, is_administrator, created_at, deleted_at
		FROM roles
		WHERE id = $1 AND deleted_at IS NULL`

	var r role.Role
	err := s.db.GetContext(ctx, &r, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}

	return &r, nil
}

// GetRolFormPermissionsByRolID returns every assignment row for the role,
// soft-deleted included. Filtering belongs to the resolver. Ordered by
// creation time so resolution output is stable.
func (s *sqlStore) GetRolFormPermissionsByRolID(
	ctx context.Context,
	rolID int64,
) ([]permission.RolFormPermission, error) {
	query := `
		SELECT id, rol_id, form_id, permission_id, created_at, deleted_at
		FROM rol_form_permissions
		WHERE rol_id = $1
		ORDER BY created_at ASC, id ASC`

	var rows []permission.RolFormPermission
	if err := s.db.SelectContext(ctx, &rows, query, rolID); err != nil {
		return nil, fmt.Errorf("get rol form permissions: %w", err)
	}

	return rows, nil
}

func (s *sqlStore) GetFormByID(
	ctx context.Context,
	id int64,
) (*form.Form, error) {
	query := `
		SELECT id, name, code, active, created_at, deleted_at
		FROM forms
		WHERE id = $1`

	var f form.Form
	err := s.db.GetContext(ctx, &f, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get form: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get form: %w", err)
	}

	return &f, nil
}

func (s *sqlStore) GetPermissionByID(
	ctx context.Context,
	id int64,
) (*permission.Permission, error) {
	query := `
		SELECT id, can_read, can_create, can_update, can_delete,
			created_at, deleted_at
		FROM permissions
		WHERE id = $1`

	var p permission.Permission
	err := s.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get permission: %w", err)
	}

	return &p, nil
}
