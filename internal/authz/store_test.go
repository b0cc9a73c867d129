// AngelaMos | 2026
// store_test.go

package authz

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/backoffice/internal/core"
)

func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStoreGetRoleByID(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM roles")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "is_administrator",
			"created_at", "deleted_at",
		}).AddRow(int64(1), "admin", nil, true, now, nil))

	r, err := store.GetRoleByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "admin", r.Name)
	assert.True(t, r.IsAdministrator)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetRoleByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM roles")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "is_administrator",
			"created_at", "deleted_at",
		}))

	_, err := store.GetRoleByID(context.Background(), 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStoreGetRolFormPermissionsByRolID(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	deletedAt := now.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rol_form_permissions")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "rol_id", "form_id", "permission_id",
			"created_at", "deleted_at",
		}).
			AddRow(int64(1), int64(5), int64(10), int64(100), now, nil).
			AddRow(int64(2), int64(5), int64(11), int64(101), now, deletedAt))

	rows, err := store.GetRolFormPermissionsByRolID(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Soft-deleted rows come back too; the resolver filters them.
	assert.True(t, rows[0].IsActive())
	assert.True(t, rows[1].IsDeleted())
}

func TestStoreGetFormByIDIncludesSoftDeleted(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM forms")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "code", "active", "created_at", "deleted_at",
		}).AddRow(int64(10), "Usuarios", "USUARIOS", true, now, now))

	f, err := store.GetFormByID(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, f.IsDeleted())
}

func TestStoreGetPermissionByID(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM permissions")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "can_read", "can_create", "can_update", "can_delete",
			"created_at", "deleted_at",
		}).AddRow(int64(100), true, false, false, false, now, nil))

	p, err := store.GetPermissionByID(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, p.CanRead)
	assert.False(t, p.CanDelete)
}
