// AngelaMos | 2026
// resolver_test.go

package authz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/backoffice/internal/core"
	"github.com/carterperez-dev/backoffice/internal/form"
	"github.com/carterperez-dev/backoffice/internal/permission"
	"github.com/carterperez-dev/backoffice/internal/role"
)

type fakeStore struct {
	roles       map[int64]*role.Role
	assignments map[int64][]permission.RolFormPermission
	forms       map[int64]*form.Form
	permissions map[int64]*permission.Permission

	failAssignments bool
	failForms       bool
}

var errStorage = errors.New("storage unavailable")

func (s *fakeStore) GetRoleByID(
	_ context.Context,
	id int64,
) (*role.Role, error) {
	r, ok := s.roles[id]
	if !ok {
		return nil, fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	return r, nil
}

func (s *fakeStore) GetRolFormPermissionsByRolID(
	_ context.Context,
	rolID int64,
) ([]permission.RolFormPermission, error) {
	if s.failAssignments {
		return nil, errStorage
	}
	return s.assignments[rolID], nil
}

func (s *fakeStore) GetFormByID(
	_ context.Context,
	id int64,
) (*form.Form, error) {
	if s.failForms {
		return nil, errStorage
	}
	f, ok := s.forms[id]
	if !ok {
		return nil, fmt.Errorf("get form: %w", core.ErrNotFound)
	}
	return f, nil
}

func (s *fakeStore) GetPermissionByID(
	_ context.Context,
	id int64,
) (*permission.Permission, error) {
	p, ok := s.permissions[id]
	if !ok {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	return p, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stamped(t time.Time) core.Timestamps {
	return core.Timestamps{CreatedAt: t}
}

func deleted(created, del time.Time) core.Timestamps {
	return core.Timestamps{CreatedAt: created, DeletedAt: &del}
}

func newFakeStore() *fakeStore {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return &fakeStore{
		roles: map[int64]*role.Role{
			1: {ID: 1, Name: "admin", IsAdministrator: true, Timestamps: stamped(now)},
			5: {ID: 5, Name: "operator", Timestamps: stamped(now)},
		},
		assignments: map[int64][]permission.RolFormPermission{},
		forms: map[int64]*form.Form{
			10: {ID: 10, Name: "Usuarios", Code: "USUARIOS", Active: true, Timestamps: stamped(now)},
			11: {ID: 11, Name: "Roles", Code: "ROLES", Active: true, Timestamps: stamped(now)},
			12: {ID: 12, Name: "Reportes", Code: "REPORTES", Active: false, Timestamps: stamped(now)},
		},
		permissions: map[int64]*permission.Permission{
			100: {ID: 100, CanRead: true, Timestamps: stamped(now)},
			101: {ID: 101, CanRead: true, CanCreate: true, CanUpdate: true, CanDelete: true, Timestamps: stamped(now)},
			102: {ID: 102, CanDelete: true, Timestamps: stamped(now)},
		},
	}
}

func TestResolveRolePermissionsInvalidID(t *testing.T) {
	resolver := NewResolver(newFakeStore(), testLogger())

	_, err := resolver.ResolveRolePermissions(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = resolver.ResolveRolePermissions(context.Background(), -3)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestResolveRolePermissionsUnknownRoleIsEmpty(t *testing.T) {
	resolver := NewResolver(newFakeStore(), testLogger())

	resolved, err := resolver.ResolveRolePermissions(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveRolePermissionsBasic(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(now)},
		{ID: 2, RolID: 5, FormID: 11, PermissionID: 101, Timestamps: stamped(now.Add(time.Minute))},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	assert.Equal(t, "USUARIOS", resolved[0].FormCode)
	assert.Equal(t, "Usuarios", resolved[0].FormName)
	assert.True(t, resolved[0].CanRead)
	assert.False(t, resolved[0].CanDelete)

	assert.Equal(t, "ROLES", resolved[1].FormCode)
	assert.True(t, resolved[1].CanDelete)
}

func TestResolveRolePermissionsSkipsSoftDeletedRows(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: deleted(now, now.Add(time.Hour))},
		{ID: 2, RolID: 5, FormID: 11, PermissionID: 101, Timestamps: stamped(now)},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "ROLES", resolved[0].FormCode)
}

func TestResolveRolePermissionsSkipsSoftDeletedFormAndPermission(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.forms[10].Timestamps = deleted(now, now)
	store.permissions[101].Timestamps = deleted(now, now)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(now)},
		{ID: 2, RolID: 5, FormID: 11, PermissionID: 101, Timestamps: stamped(now)},
		{ID: 3, RolID: 5, FormID: 12, PermissionID: 100, Timestamps: stamped(now)},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "REPORTES", resolved[0].FormCode)
}

func TestResolveRolePermissionsCarriesInactiveForm(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 12, PermissionID: 100, Timestamps: stamped(now)},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.False(t, resolved[0].FormActive)
	assert.True(t, resolved[0].CanRead)
}

func TestResolveRolePermissionsDuplicateKeepsLatest(t *testing.T) {
	store := newFakeStore()
	early := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	late := early.Add(2 * time.Hour)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(early)},
		{ID: 2, RolID: 5, FormID: 10, PermissionID: 101, Timestamps: stamped(late)},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	// The later-created row wins, so permission 101's flags apply.
	assert.True(t, resolved[0].CanDelete)
}

func TestResolveRolePermissionsDuplicateOrderIndependent(t *testing.T) {
	store := newFakeStore()
	early := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	late := early.Add(2 * time.Hour)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 2, RolID: 5, FormID: 10, PermissionID: 101, Timestamps: stamped(late)},
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(early)},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].CanDelete)
}

func TestResolveRolePermissionsIdempotent(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(now)},
		{ID: 2, RolID: 5, FormID: 11, PermissionID: 101, Timestamps: stamped(now.Add(time.Minute))},
		{ID: 3, RolID: 5, FormID: 12, PermissionID: 102, Timestamps: stamped(now.Add(2 * time.Minute))},
	}

	resolver := NewResolver(store, testLogger())
	first, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	second, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveRolePermissionsStorageErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.failAssignments = true

	resolver := NewResolver(store, testLogger())
	_, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
}

func TestResolveRolePermissionsVanishedLinkSkipped(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 777, PermissionID: 100, Timestamps: stamped(now)},
		{ID: 2, RolID: 5, FormID: 11, PermissionID: 888, Timestamps: stamped(now)},
		{ID: 3, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(now)},
	}

	resolver := NewResolver(store, testLogger())
	resolved, err := resolver.ResolveRolePermissions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "USUARIOS", resolved[0].FormCode)
}

func TestHasPermission(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store.assignments[5] = []permission.RolFormPermission{
		{ID: 1, RolID: 5, FormID: 10, PermissionID: 100, Timestamps: stamped(now)},
		{ID: 2, RolID: 5, FormID: 11, PermissionID: 102, Timestamps: stamped(now)},
	}

	resolver := NewResolver(store, testLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		formCode string
		action   string
		want     bool
	}{
		{"read granted", "USUARIOS", "read", true},
		{"case-insensitive code", "usuarios", "read", true},
		{"case-insensitive action", "USUARIOS", "READ", true},
		{"flag not granted", "USUARIOS", "delete", false},
		{"delete without read", "ROLES", "delete", true},
		{"read not implied by delete", "ROLES", "read", false},
		{"unmatched form code", "NOPE", "read", false},
		{"unknown action", "USUARIOS", "drop", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.HasPermission(ctx, 5, tt.formCode, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasPermissionUnknownRoleDenies(t *testing.T) {
	resolver := NewResolver(newFakeStore(), testLogger())

	got, err := resolver.HasPermission(context.Background(), 999, "USUARIOS", "read")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsAdministrator(t *testing.T) {
	resolver := NewResolver(newFakeStore(), testLogger())
	ctx := context.Background()

	isAdmin, err := resolver.IsAdministrator(ctx, 1)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = resolver.IsAdministrator(ctx, 5)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = resolver.IsAdministrator(ctx, 999)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = resolver.IsAdministrator(ctx, 0)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
