// AngelaMos | 2026
// service_test.go

package permission

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type fakeRepo struct {
	permissions map[int64]*Permission
	assignments map[int64]*RolFormPermission
	nextID      int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		permissions: make(map[int64]*Permission),
		assignments: make(map[int64]*RolFormPermission),
		nextID:      1,
	}
}

func (f *fakeRepo) CreatePermission(_ context.Context, perm *Permission) error {
	perm.ID = f.nextID
	f.nextID++
	f.permissions[perm.ID] = perm
	return nil
}

func (f *fakeRepo) GetPermissionByID(
	_ context.Context,
	id int64,
) (*Permission, error) {
	perm, ok := f.permissions[id]
	if !ok || perm.IsDeleted() {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	return perm, nil
}

func (f *fakeRepo) ListPermissions(
	_ context.Context,
	_ ListParams,
) ([]Permission, int, error) {
	var out []Permission
	for _, p := range f.permissions {
		if p.IsActive() {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdatePermission(_ context.Context, perm *Permission) error {
	if _, ok := f.permissions[perm.ID]; !ok {
		return fmt.Errorf("update permission: %w", core.ErrNotFound)
	}
	f.permissions[perm.ID] = perm
	return nil
}

func (f *fakeRepo) SoftDeletePermission(ctx context.Context, id int64) error {
	perm, err := f.GetPermissionByID(ctx, id)
	if err != nil {
		return err
	}
	now := perm.CreatedAt.AddDate(0, 0, 1)
	perm.DeletedAt = &now
	return nil
}

func (f *fakeRepo) HardDeletePermission(_ context.Context, id int64) error {
	if _, ok := f.permissions[id]; !ok {
		return fmt.Errorf("hard delete permission: %w", core.ErrNotFound)
	}
	delete(f.permissions, id)
	return nil
}

func (f *fakeRepo) CreateAssignment(
	_ context.Context,
	rfp *RolFormPermission,
) error {
	rfp.ID = f.nextID
	f.nextID++
	f.assignments[rfp.ID] = rfp
	return nil
}

func (f *fakeRepo) GetAssignmentByID(
	_ context.Context,
	id int64,
) (*RolFormPermission, error) {
	rfp, ok := f.assignments[id]
	if !ok || rfp.IsDeleted() {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	return rfp, nil
}

func (f *fakeRepo) ActiveAssignmentExists(
	_ context.Context,
	rolID, formID int64,
) (bool, error) {
	for _, rfp := range f.assignments {
		if rfp.IsActive() && rfp.RolID == rolID && rfp.FormID == formID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AssignmentsByRolID(
	_ context.Context,
	_ int64,
) ([]assignmentDetailRow, error) {
	return nil, nil
}

func (f *fakeRepo) SoftDeleteAssignment(ctx context.Context, id int64) error {
	rfp, err := f.GetAssignmentByID(ctx, id)
	if err != nil {
		return err
	}
	now := rfp.CreatedAt.AddDate(0, 0, 1)
	rfp.DeletedAt = &now
	return nil
}

func (f *fakeRepo) HardDeleteAssignment(_ context.Context, id int64) error {
	if _, ok := f.assignments[id]; !ok {
		return fmt.Errorf("hard delete assignment: %w", core.ErrNotFound)
	}
	delete(f.assignments, id)
	return nil
}

func TestCreatePermissionFlagsAreIndependent(t *testing.T) {
	svc := NewService(newFakeRepo())

	perm, err := svc.CreatePermission(context.Background(), CreatePermissionRequest{
		CanDelete: true,
	})
	require.NoError(t, err)

	assert.True(t, perm.CanDelete)
	assert.False(t, perm.CanRead)
	assert.False(t, perm.CanCreate)
	assert.False(t, perm.CanUpdate)
}

func TestUpdatePermissionPartial(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreatePermission(ctx, CreatePermissionRequest{
		CanRead: true,
	})
	require.NoError(t, err)

	canCreate := true
	updated, err := svc.UpdatePermission(ctx, created.ID, UpdatePermissionRequest{
		CanCreate: &canCreate,
	})
	require.NoError(t, err)

	assert.True(t, updated.CanRead)
	assert.True(t, updated.CanCreate)
	assert.False(t, updated.CanDelete)
}

func TestGetPermissionInvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.GetPermission(context.Background(), -1)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAssignPermission(t *testing.T) {
	svc := NewService(newFakeRepo())

	rfp, err := svc.AssignPermission(context.Background(), AssignPermissionRequest{
		RolID:        5,
		FormID:       10,
		PermissionID: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), rfp.RolID)
	assert.Equal(t, int64(10), rfp.FormID)
}

func TestAssignPermissionRejectsDuplicatePair(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.AssignPermission(ctx, AssignPermissionRequest{
		RolID: 5, FormID: 10, PermissionID: 100,
	})
	require.NoError(t, err)

	// A second active row for the same (rol, form) pair is refused even
	// with a different permission bundle.
	_, err = svc.AssignPermission(ctx, AssignPermissionRequest{
		RolID: 5, FormID: 10, PermissionID: 101,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestAssignPermissionAllowedAfterSoftDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first, err := svc.AssignPermission(ctx, AssignPermissionRequest{
		RolID: 5, FormID: 10, PermissionID: 100,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAssignment(ctx, first.ID))

	_, err = svc.AssignPermission(ctx, AssignPermissionRequest{
		RolID: 5, FormID: 10, PermissionID: 101,
	})
	assert.NoError(t, err)
}
