// AngelaMos | 2026
// service_test.go

package role

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type fakeRepo struct {
	roles       map[int64]*Role
	memberships []RolUser
	nextID      int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		roles:  make(map[int64]*Role),
		nextID: 1,
	}
}

func (f *fakeRepo) Create(_ context.Context, role *Role) error {
	role.ID = f.nextID
	f.nextID++
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Role, error) {
	role, ok := f.roles[id]
	if !ok || role.IsDeleted() {
		return nil, fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	return role, nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListRolesParams,
) ([]Role, int, error) {
	var out []Role
	for _, r := range f.roles {
		if r.IsActive() {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, role *Role) error {
	if _, ok := f.roles[role.ID]; !ok {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id int64) error {
	role, ok := f.roles[id]
	if !ok || role.IsDeleted() {
		return fmt.Errorf("delete role: %w", core.ErrNotFound)
	}
	now := time.Now().UTC()
	role.DeletedAt = &now
	return nil
}

func (f *fakeRepo) HardDelete(_ context.Context, id int64) error {
	if _, ok := f.roles[id]; !ok {
		return fmt.Errorf("hard delete role: %w", core.ErrNotFound)
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeRepo) ExistsByName(
	_ context.Context,
	name string,
	excludeID int64,
) (bool, error) {
	for _, r := range f.roles {
		if r.IsActive() && r.Name == name && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AssignUser(_ context.Context, membership *RolUser) error {
	membership.ID = f.nextID
	f.nextID++
	f.memberships = append(f.memberships, *membership)
	return nil
}

func (f *fakeRepo) RolesForUser(
	_ context.Context,
	userID int64,
) ([]Role, error) {
	var out []Role
	for _, m := range f.memberships {
		if m.UserID != userID {
			continue
		}
		if r, ok := f.roles[m.RolID]; ok && r.IsActive() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) RemoveUser(_ context.Context, rolID, userID int64) error {
	for i, m := range f.memberships {
		if m.RolID == rolID && m.UserID == userID {
			f.memberships = append(f.memberships[:i], f.memberships[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove user: %w", core.ErrNotFound)
}

func TestCreateRole(t *testing.T) {
	svc := NewService(newFakeRepo())

	role, err := svc.Create(context.Background(), CreateRoleRequest{
		Name: "operator",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), role.ID)
	assert.Equal(t, "operator", role.Name)
	assert.False(t, role.IsAdministrator)
}

func TestCreateRoleDuplicateName(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestCreateRoleNameReuseAfterSoftDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID))

	// Uniqueness is scoped to non-deleted roles.
	_, err = svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	assert.NoError(t, err)
}

func TestGetRoleInvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateRoleNameCollision(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateRoleRequest{Name: "viewer"})
	require.NoError(t, err)

	name := "operator"
	_, err = svc.Update(ctx, second.ID, UpdateRoleRequest{Name: &name})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateRoleAdministratorFlag(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)

	isAdmin := true
	updated, err := svc.Update(ctx, created.ID, UpdateRoleRequest{
		IsAdministrator: &isAdmin,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAdministrator)
}

func TestDeleteRoleTwice(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), core.ErrNotFound)
}

func TestAssignUserToMissingRole(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.AssignUser(context.Background(), 42, AssignUserRequest{
		UserID: 7,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAssignAndRemoveUser(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)

	membership, err := svc.AssignUser(ctx, created.ID, AssignUserRequest{
		UserID: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, membership.RolID)

	roles, err := svc.RolesForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "operator", roles[0].Name)

	require.NoError(t, svc.RemoveUser(ctx, created.ID, 7))

	roles, err = svc.RolesForUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, roles)
}
