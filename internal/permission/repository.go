// AngelaMos | 2026
// repository.go

package permission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type Repository interface {
	CreatePermission(ctx context.Context, perm *Permission) error
	GetPermissionByID(ctx context.Context, id int64) (*Permission, error)
	ListPermissions(ctx context.Context, params ListParams) ([]Permission, int, error)
	UpdatePermission(ctx context.Context, perm *Permission) error
	SoftDeletePermission(ctx context.Context, id int64) error
	HardDeletePermission(ctx context.Context, id int64) error

	CreateAssignment(ctx context.Context, rfp *RolFormPermission) error
	GetAssignmentByID(ctx context.Context, id int64) (*RolFormPermission, error)
	ActiveAssignmentExists(ctx context.Context, rolID, formID int64) (bool, error)
	AssignmentsByRolID(ctx context.Context, rolID int64) ([]assignmentDetailRow, error)
	SoftDeleteAssignment(ctx context.Context, id int64) error
	HardDeleteAssignment(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePermission(
	ctx context.Context,
	perm *Permission,
) error {
	perm.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO permissions (can_read, can_create, can_update, can_delete, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.GetContext(ctx, &perm.ID, query,
		perm.CanRead,
		perm.CanCreate,
		perm.CanUpdate,
		perm.CanDelete,
		perm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create permission: %w", err)
	}

	return nil
}

func (r *repository) GetPermissionByID(
	ctx context.Context,
	id int64,
) (*Permission, error) {
	query := `
		SELECT id, can_read, can_create, can_update, can_delete,
			created_at, deleted_at
		FROM permissions
		WHERE id = $1 AND deleted_at IS NULL`

	var perm Permission
	err := r.db.GetContext(ctx, &perm, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get permission: %w", err)
	}

	return &perm, nil
}

func (r *repository) ListPermissions(
	ctx context.Context,
	params ListParams,
) ([]Permission, int, error) {
	params.Normalize()

	var total int
	countQuery := "SELECT COUNT(*) FROM permissions WHERE deleted_at IS NULL"
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count permissions: %w", err)
	}

	query := `
		SELECT id, can_read, can_create, can_update, can_delete,
			created_at, deleted_at
		FROM permissions
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var perms []Permission
	err := r.db.SelectContext(ctx, &perms, query,
		params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list permissions: %w", err)
	}

	return perms, total, nil
}

func (r *repository) UpdatePermission(
	ctx context.Context,
	perm *Permission,
) error {
	query := `
		UPDATE permissions
		SET can_read = $2, can_create = $3, can_update = $4, can_delete = $5
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		perm.ID,
		perm.CanRead,
		perm.CanCreate,
		perm.CanUpdate,
		perm.CanDelete,
	)
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update permission: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDeletePermission(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "permissions", "delete permission", id)
}

func (r *repository) HardDeletePermission(ctx context.Context, id int64) error {
	return r.hardDelete(ctx, "permissions", "hard delete permission", id)
}

func (r *repository) CreateAssignment(
	ctx context.Context,
	rfp *RolFormPermission,
) error {
	rfp.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO rol_form_permissions (rol_id, form_id, permission_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.GetContext(ctx, &rfp.ID, query,
		rfp.RolID,
		rfp.FormID,
		rfp.PermissionID,
		rfp.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create assignment: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create assignment: %w", err)
	}

	return nil
}

func (r *repository) GetAssignmentByID(
	ctx context.Context,
	id int64,
) (*RolFormPermission, error) {
	query := `
		SELECT id, rol_id, form_id, permission_id, created_at, deleted_at
		FROM rol_form_permissions
		WHERE id = $1 AND deleted_at IS NULL`

	var rfp RolFormPermission
	err := r.db.GetContext(ctx, &rfp, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &rfp, nil
}

func (r *repository) ActiveAssignmentExists(
	ctx context.Context,
	rolID, formID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rol_form_permissions
			WHERE rol_id = $1 AND form_id = $2 AND deleted_at IS NULL
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, rolID, formID)
	if err != nil {
		return false, fmt.Errorf("check assignment exists: %w", err)
	}

	return exists, nil
}

// AssignmentsByRolID returns the role's active assignments joined to their
// role, form, and permission records. Soft-deleted forms and permissions
// drop the row here; this listing mirrors what resolution will consider.
func (r *repository) AssignmentsByRolID(
	ctx context.Context,
	rolID int64,
) ([]assignmentDetailRow, error) {
	query := `
		SELECT
			rfp.id, rfp.created_at,
			r.id AS rol_id, r.name AS rol_name, r.description AS rol_description,
			f.id AS form_id, f.name AS form_name, f.code AS form_code,
			f.active AS form_active,
			p.id AS permission_id, p.can_read, p.can_create, p.can_update,
			p.can_delete
		FROM rol_form_permissions rfp
		JOIN roles r ON r.id = rfp.rol_id AND r.deleted_at IS NULL
		JOIN forms f ON f.id = rfp.form_id AND f.deleted_at IS NULL
		JOIN permissions p ON p.id = rfp.permission_id AND p.deleted_at IS NULL
		WHERE rfp.rol_id = $1 AND rfp.deleted_at IS NULL
		ORDER BY rfp.created_at ASC, rfp.id ASC`

	var rows []assignmentDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, rolID); err != nil {
		return nil, fmt.Errorf("assignments by rol: %w", err)
	}

	return rows, nil
}

func (r *repository) SoftDeleteAssignment(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "rol_form_permissions", "delete assignment", id)
}

func (r *repository) HardDeleteAssignment(ctx context.Context, id int64) error {
	return r.hardDelete(ctx, "rol_form_permissions", "hard delete assignment", id)
}

func (r *repository) softDelete(
	ctx context.Context,
	table, op string,
	id int64,
) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL`, table)

	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func (r *repository) hardDelete(
	ctx context.Context,
	table, op string,
	id int64,
) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
