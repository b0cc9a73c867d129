// AngelaMos | 2026
// repository.go

package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id int64) (*Role, error)
	List(ctx context.Context, params ListRolesParams) ([]Role, int, error)
	Update(ctx context.Context, role *Role) error
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	AssignUser(ctx context.Context, membership *RolUser) error
	RolesForUser(ctx context.Context, userID int64) ([]Role, error)
	RemoveUser(ctx context.Context, rolID, userID int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, role *Role) error {
	role.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO roles (name, description, is_administrator, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.GetContext(ctx, &role.ID, query,
		role.Name,
		role.Description,
		role.IsAdministrator,
		role.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create role: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create role: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Role, error) {
	query := `
		SELECT id, name, description, is_administrator, created_at, deleted_at
		FROM roles
		WHERE id = $1 AND deleted_at IS NULL`

	var role Role
	err := r.db.GetContext(ctx, &role, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}

	return &role, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListRolesParams,
) ([]Role, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM roles WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, is_administrator, created_at, deleted_at
		FROM roles
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var roles []Role
	if err := r.db.SelectContext(ctx, &roles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}

	return roles, total, nil
}

func (r *repository) Update(ctx context.Context, role *Role) error {
	query := `
		UPDATE roles
		SET name = $2, description = $3, is_administrator = $4
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		role.ID,
		role.Name,
		role.Description,
		role.IsAdministrator,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update role: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE roles
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete role: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) HardDelete(ctx context.Context, id int64) error {
	query := `DELETE FROM roles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("hard delete role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("hard delete role: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("hard delete role: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ExistsByName(
	ctx context.Context,
	name string,
	excludeID int64,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM roles
			WHERE name = $1 AND id <> $2 AND deleted_at IS NULL
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("check role name exists: %w", err)
	}

	return exists, nil
}

func (r *repository) AssignUser(
	ctx context.Context,
	membership *RolUser,
) error {
	membership.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO rol_users (user_id, rol_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.GetContext(ctx, &membership.ID, query,
		membership.UserID,
		membership.RolID,
		membership.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("assign user to role: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("assign user to role: %w", err)
	}

	return nil
}

func (r *repository) RolesForUser(
	ctx context.Context,
	userID int64,
) ([]Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.is_administrator,
		       r.created_at, r.deleted_at
		FROM roles r
		JOIN rol_users ru ON ru.rol_id = r.id
		WHERE ru.user_id = $1
			AND ru.deleted_at IS NULL
			AND r.deleted_at IS NULL
		ORDER BY r.id`

	var roles []Role
	if err := r.db.SelectContext(ctx, &roles, query, userID); err != nil {
		return nil, fmt.Errorf("roles for user: %w", err)
	}

	return roles, nil
}

func (r *repository) RemoveUser(ctx context.Context, rolID, userID int64) error {
	query := `
		UPDATE rol_users
		SET deleted_at = $3
		WHERE rol_id = $1 AND user_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, rolID, userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("remove user from role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove user from role: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("remove user from role: %w", core.ErrNotFound)
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

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
