// AngelaMos | 2026
// repository.go

package form

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
	CreateForm(ctx context.Context, form *Form) error
	GetFormByID(ctx context.Context, id int64) (*Form, error)
	GetFormByCode(ctx context.Context, code string) (*Form, error)
	ListForms(ctx context.Context, params ListParams) ([]Form, int, error)
	UpdateForm(ctx context.Context, form *Form) error
	SoftDeleteForm(ctx context.Context, id int64) error
	HardDeleteForm(ctx context.Context, id int64) error

	CreateModule(ctx context.Context, module *Module) error
	GetModuleByID(ctx context.Context, id int64) (*Module, error)
	ListModules(ctx context.Context, params ListParams) ([]Module, int, error)
	UpdateModule(ctx context.Context, module *Module) error
	SoftDeleteModule(ctx context.Context, id int64) error
	HardDeleteModule(ctx context.Context, id int64) error

	AssignFormToModule(ctx context.Context, link *FormModule) error
	FormsInModule(ctx context.Context, moduleID int64) ([]Form, error)
	RemoveFormFromModule(ctx context.Context, id int64) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateForm(ctx context.Context, form *Form) error {
	form.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO forms (name, code, active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.GetContext(ctx, &form.ID, query,
		form.Name,
		form.Code,
		form.Active,
		form.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create form: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create form: %w", err)
	}

	return nil
}

func (r *repository) GetFormByID(ctx context.Context, id int64) (*Form, error) {
	query := `
		SELECT id, name, code, active, created_at, deleted_at
		FROM forms
		WHERE id = $1 AND deleted_at IS NULL`

	var form Form
	err := r.db.GetContext(ctx, &form, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get form: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get form: %w", err)
	}

	return &form, nil
}

func (r *repository) GetFormByCode(
	ctx context.Context,
	code string,
) (*Form, error) {
	query := `
		SELECT id, name, code, active, created_at, deleted_at
		FROM forms
		WHERE UPPER(code) = UPPER($1) AND deleted_at IS NULL`

	var form Form
	err := r.db.GetContext(ctx, &form, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get form by code: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get form by code: %w", err)
	}

	return &form, nil
}

func (r *repository) ListForms(
	ctx context.Context,
	params ListParams,
) ([]Form, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM forms WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count forms: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, code, active, created_at, deleted_at
		FROM forms
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var forms []Form
	if err := r.db.SelectContext(ctx, &forms, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list forms: %w", err)
	}

	return forms, total, nil
}

func (r *repository) UpdateForm(ctx context.Context, form *Form) error {
	query := `
		UPDATE forms
		SET name = $2, code = $3, active = $4
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		form.ID,
		form.Name,
		form.Code,
		form.Active,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update form: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update form: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update form: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDeleteForm(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "forms", "delete form", id)
}

func (r *repository) HardDeleteForm(ctx context.Context, id int64) error {
	return r.hardDelete(ctx, "forms", "hard delete form", id)
}

func (r *repository) CreateModule(ctx context.Context, module *Module) error {
	module.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO modules (code, active, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.GetContext(ctx, &module.ID, query,
		module.Code,
		module.Active,
		module.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create module: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create module: %w", err)
	}

	return nil
}

func (r *repository) GetModuleByID(
	ctx context.Context,
	id int64,
) (*Module, error) {
	query := `
		SELECT id, code, active, created_at, deleted_at
		FROM modules
		WHERE id = $1 AND deleted_at IS NULL`

	var module Module
	err := r.db.GetContext(ctx, &module, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get module: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}

	return &module, nil
}

func (r *repository) ListModules(
	ctx context.Context,
	params ListParams,
) ([]Module, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("code ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM modules WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count modules: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, code, active, created_at, deleted_at
		FROM modules
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var modules []Module
	if err := r.db.SelectContext(ctx, &modules, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list modules: %w", err)
	}

	return modules, total, nil
}

func (r *repository) UpdateModule(ctx context.Context, module *Module) error {
	query := `
		UPDATE modules
		SET code = $2, active = $3
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		module.ID,
		module.Code,
		module.Active,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update module: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update module: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update module: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDeleteModule(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "modules", "delete module", id)
}

func (r *repository) HardDeleteModule(ctx context.Context, id int64) error {
	return r.hardDelete(ctx, "modules", "hard delete module", id)
}

func (r *repository) AssignFormToModule(
	ctx context.Context,
	link *FormModule,
) error {
	link.StampCreated(time.Now().UTC())

	query := `
		INSERT INTO form_modules (form_id, module_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.GetContext(ctx, &link.ID, query,
		link.FormID,
		link.ModuleID,
		link.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("assign form to module: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("assign form to module: %w", err)
	}

	return nil
}

func (r *repository) FormsInModule(
	ctx context.Context,
	moduleID int64,
) ([]Form, error) {
	query := `
		SELECT f.id, f.name, f.code, f.active, f.created_at, f.deleted_at
		FROM forms f
		JOIN form_modules fm ON fm.form_id = f.id
		WHERE fm.module_id = $1
			AND fm.deleted_at IS NULL
			AND f.deleted_at IS NULL
		ORDER BY f.id`

	var forms []Form
	if err := r.db.SelectContext(ctx, &forms, query, moduleID); err != nil {
		return nil, fmt.Errorf("forms in module: %w", err)
	}

	return forms, nil
}

func (r *repository) RemoveFormFromModule(
	ctx context.Context,
	id int64,
) error {
	return r.softDelete(ctx, "form_modules", "remove form from module", id)
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

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
