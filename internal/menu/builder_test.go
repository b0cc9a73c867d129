// AngelaMos | 2026
// builder_test.go

package menu

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/backoffice/internal/authz"
	"github.com/carterperez-dev/backoffice/internal/config"
	"github.com/carterperez-dev/backoffice/internal/core"
)

type fakeSource struct {
	resolved map[int64][]authz.ResolvedPermission
	admins   map[int64]bool
	err      error
}

func (s *fakeSource) ResolveRolePermissions(
	_ context.Context,
	rolID int64,
) ([]authz.ResolvedPermission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resolved[rolID], nil
}

func (s *fakeSource) IsAdministrator(
	_ context.Context,
	rolID int64,
) (bool, error) {
	return s.admins[rolID], nil
}

func testMenuConfig() config.MenuConfig {
	return config.MenuConfig{
		ProfileName: "Mi Perfil",
		ProfileCode: "PERFIL",
		DefaultIcon: "file-icon",
		IDBase:      1000,
		Icons: map[string]string{
			"DASHBOARD": "dashboard-icon",
			"USUARIOS":  "users-icon",
			"ROLES":     "shield-icon",
			"PERFIL":    "user-icon",
		},
		AdminTemplate: []config.MenuEntry{
			{Name: "Dashboard", Code: "DASHBOARD"},
			{Name: "Usuarios", Code: "USUARIOS"},
			{Name: "Roles", Code: "ROLES"},
			{Name: "Modulos", Code: "MODULOS"},
			{Name: "Formularios", Code: "FORMULARIOS"},
			{Name: "Permisos", Code: "PERMISOS"},
			{Name: "Rol Form Permisos", Code: "ROLFORMPERMISOS"},
			{Name: "Mi Perfil", Code: "PERFIL"},
		},
	}
}

func newBuilder(source *fakeSource) *Builder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBuilder(source, testMenuConfig(), logger)
}

func TestBuildMenuInvalidID(t *testing.T) {
	builder := newBuilder(&fakeSource{})

	_, err := builder.BuildMenu(context.Background(), 0)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestBuildMenuAdministratorTemplate(t *testing.T) {
	source := &fakeSource{
		admins: map[int64]bool{1: true},
		// Assignment rows for an administrator are irrelevant; the
		// template wins regardless.
		resolved: map[int64][]authz.ResolvedPermission{
			1: {{FormCode: "USUARIOS", FormName: "Usuarios", CanRead: true}},
		},
	}
	builder := newBuilder(source)

	items, err := builder.BuildMenu(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 8)

	assert.Equal(t, "Dashboard", items[0].Name)
	assert.Equal(t, "/dashboard", items[0].URL)
	assert.Equal(t, "dashboard-icon", items[0].Icon)
	assert.Equal(t, int64(1000), items[0].ID)
	assert.Equal(t, int64(1007), items[7].ID)
	assert.Equal(t, "Mi Perfil", items[7].Name)

	for _, item := range items {
		assert.True(t, item.Active)
		assert.NotNil(t, item.Children)
		assert.Empty(t, item.Children)
	}
}

func TestBuildMenuNoPermissionsYieldsProfileOnly(t *testing.T) {
	builder := newBuilder(&fakeSource{})

	items, err := builder.BuildMenu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Mi Perfil", items[0].Name)
	assert.Equal(t, "/perfil", items[0].URL)
	assert.Equal(t, "user-icon", items[0].Icon)
	assert.Equal(t, int64(1000), items[0].ID)
	assert.True(t, items[0].Active)
}

func TestBuildMenuRoleWithReadPermission(t *testing.T) {
	source := &fakeSource{
		resolved: map[int64][]authz.ResolvedPermission{
			5: {{
				FormID:     10,
				FormName:   "Usuarios",
				FormCode:   "USUARIOS",
				FormActive: true,
				CanRead:    true,
			}},
		},
	}
	builder := newBuilder(source)

	items, err := builder.BuildMenu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Mi Perfil", items[0].Name)
	assert.Equal(t, "/perfil", items[0].URL)

	assert.Equal(t, "Usuarios", items[1].Name)
	assert.Equal(t, "/usuarios", items[1].URL)
	assert.Equal(t, "users-icon", items[1].Icon)
	assert.True(t, items[1].Active)
	assert.Equal(t, int64(1001), items[1].ID)
}

func TestBuildMenuInactiveFormStillListed(t *testing.T) {
	source := &fakeSource{
		resolved: map[int64][]authz.ResolvedPermission{
			5: {{
				FormID:     10,
				FormName:   "Usuarios",
				FormCode:   "USUARIOS",
				FormActive: false,
				CanRead:    true,
			}},
		},
	}
	builder := newBuilder(source)

	items, err := builder.BuildMenu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Read permission gates inclusion; the form's active flag only
	// drives the displayed state.
	assert.Equal(t, "Usuarios", items[1].Name)
	assert.False(t, items[1].Active)
}

func TestBuildMenuSkipsEntriesWithoutRead(t *testing.T) {
	source := &fakeSource{
		resolved: map[int64][]authz.ResolvedPermission{
			5: {
				{FormName: "Usuarios", FormCode: "USUARIOS", FormActive: true, CanRead: true},
				{FormName: "Roles", FormCode: "ROLES", FormActive: true, CanDelete: true},
				{FormName: "Reportes", FormCode: "REPORTES", FormActive: true, CanRead: true},
			},
		},
	}
	builder := newBuilder(source)

	items, err := builder.BuildMenu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Usuarios", items[1].Name)
	assert.Equal(t, "Reportes", items[2].Name)
	// Unknown form code falls back to the default icon.
	assert.Equal(t, "file-icon", items[2].Icon)
}

func TestBuildMenuExcludesExplicitProfileRow(t *testing.T) {
	source := &fakeSource{
		resolved: map[int64][]authz.ResolvedPermission{
			5: {
				{FormName: "Perfil", FormCode: "perfil", FormActive: true, CanRead: true},
				{FormName: "Usuarios", FormCode: "USUARIOS", FormActive: true, CanRead: true},
			},
		},
	}
	builder := newBuilder(source)

	items, err := builder.BuildMenu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Mi Perfil", items[0].Name)
	assert.Equal(t, "Usuarios", items[1].Name)
}

func TestBuildMenuPreservesResolutionOrder(t *testing.T) {
	source := &fakeSource{
		resolved: map[int64][]authz.ResolvedPermission{
			5: {
				{FormName: "Zebra", FormCode: "ZEBRA", FormActive: true, CanRead: true},
				{FormName: "Alfa", FormCode: "ALFA", FormActive: true, CanRead: true},
			},
		},
	}
	builder := newBuilder(source)

	items, err := builder.BuildMenu(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Not re-sorted: Profile first, then resolution order.
	assert.Equal(t, "Zebra", items[1].Name)
	assert.Equal(t, "Alfa", items[2].Name)
}

func TestBuildMenuResolutionErrorPropagates(t *testing.T) {
	wantErr := errors.New("storage unavailable")
	builder := newBuilder(&fakeSource{err: wantErr})

	_, err := builder.BuildMenu(context.Background(), 5)
	assert.ErrorIs(t, err, wantErr)
}
