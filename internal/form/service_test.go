// AngelaMos | 2026
// service_test.go

package form

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type fakeRepo struct {
	forms   map[int64]*Form
	modules map[int64]*Module
	links   map[int64]*FormModule
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		forms:   make(map[int64]*Form),
		modules: make(map[int64]*Module),
		links:   make(map[int64]*FormModule),
		nextID:  1,
	}
}

func (f *fakeRepo) CreateForm(_ context.Context, form *Form) error {
	for _, existing := range f.forms {
		if existing.IsActive() && existing.Code == form.Code {
			return fmt.Errorf("create form: %w", core.ErrDuplicateKey)
		}
	}
	form.ID = f.nextID
	f.nextID++
	f.forms[form.ID] = form
	return nil
}

func (f *fakeRepo) GetFormByID(_ context.Context, id int64) (*Form, error) {
	form, ok := f.forms[id]
	if !ok || form.IsDeleted() {
		return nil, fmt.Errorf("get form: %w", core.ErrNotFound)
	}
	return form, nil
}

func (f *fakeRepo) GetFormByCode(_ context.Context, code string) (*Form, error) {
	for _, form := range f.forms {
		if form.IsActive() && strings.EqualFold(form.Code, code) {
			return form, nil
		}
	}
	return nil, fmt.Errorf("get form by code: %w", core.ErrNotFound)
}

func (f *fakeRepo) ListForms(
	_ context.Context,
	_ ListParams,
) ([]Form, int, error) {
	var out []Form
	for _, form := range f.forms {
		if form.IsActive() {
			out = append(out, *form)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateForm(_ context.Context, form *Form) error {
	if _, ok := f.forms[form.ID]; !ok {
		return fmt.Errorf("update form: %w", core.ErrNotFound)
	}
	f.forms[form.ID] = form
	return nil
}

func (f *fakeRepo) SoftDeleteForm(ctx context.Context, id int64) error {
	form, err := f.GetFormByID(ctx, id)
	if err != nil {
		return err
	}
	form.StampDeleted(time.Now().UTC())
	return nil
}

func (f *fakeRepo) HardDeleteForm(_ context.Context, id int64) error {
	if _, ok := f.forms[id]; !ok {
		return fmt.Errorf("hard delete form: %w", core.ErrNotFound)
	}
	delete(f.forms, id)
	return nil
}

func (f *fakeRepo) CreateModule(_ context.Context, module *Module) error {
	module.ID = f.nextID
	f.nextID++
	f.modules[module.ID] = module
	return nil
}

func (f *fakeRepo) GetModuleByID(_ context.Context, id int64) (*Module, error) {
	module, ok := f.modules[id]
	if !ok || module.IsDeleted() {
		return nil, fmt.Errorf("get module: %w", core.ErrNotFound)
	}
	return module, nil
}

func (f *fakeRepo) ListModules(
	_ context.Context,
	_ ListParams,
) ([]Module, int, error) {
	var out []Module
	for _, module := range f.modules {
		if module.IsActive() {
			out = append(out, *module)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateModule(_ context.Context, module *Module) error {
	if _, ok := f.modules[module.ID]; !ok {
		return fmt.Errorf("update module: %w", core.ErrNotFound)
	}
	f.modules[module.ID] = module
	return nil
}

func (f *fakeRepo) SoftDeleteModule(ctx context.Context, id int64) error {
	module, err := f.GetModuleByID(ctx, id)
	if err != nil {
		return err
	}
	module.StampDeleted(time.Now().UTC())
	return nil
}

func (f *fakeRepo) HardDeleteModule(_ context.Context, id int64) error {
	if _, ok := f.modules[id]; !ok {
		return fmt.Errorf("hard delete module: %w", core.ErrNotFound)
	}
	delete(f.modules, id)
	return nil
}

func (f *fakeRepo) AssignFormToModule(
	_ context.Context,
	link *FormModule,
) error {
	for _, existing := range f.links {
		if existing.IsActive() &&
			existing.FormID == link.FormID &&
			existing.ModuleID == link.ModuleID {
			return fmt.Errorf("assign form to module: %w", core.ErrDuplicateKey)
		}
	}
	link.ID = f.nextID
	f.nextID++
	f.links[link.ID] = link
	return nil
}

func (f *fakeRepo) FormsInModule(
	ctx context.Context,
	moduleID int64,
) ([]Form, error) {
	var out []Form
	for _, link := range f.links {
		if !link.IsActive() || link.ModuleID != moduleID {
			continue
		}
		form, err := f.GetFormByID(ctx, link.FormID)
		if err != nil {
			continue
		}
		out = append(out, *form)
	}
	return out, nil
}

func (f *fakeRepo) RemoveFormFromModule(_ context.Context, id int64) error {
	link, ok := f.links[id]
	if !ok || link.IsDeleted() {
		return fmt.Errorf("remove form from module: %w", core.ErrNotFound)
	}
	link.StampDeleted(time.Now().UTC())
	return nil
}

func TestCreateFormUppercasesCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	form, err := svc.CreateForm(context.Background(), CreateFormRequest{
		Name: "Usuarios",
		Code: "usuarios",
	})
	require.NoError(t, err)

	assert.Equal(t, "USUARIOS", form.Code)
	assert.True(t, form.Active)
}

func TestCreateFormDuplicateCode(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateForm(ctx, CreateFormRequest{Name: "A", Code: "roles"})
	require.NoError(t, err)

	_, err = svc.CreateForm(ctx, CreateFormRequest{Name: "B", Code: "ROLES"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestCreateFormCodeFreedBySoftDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first, err := svc.CreateForm(ctx, CreateFormRequest{Name: "A", Code: "ROLES"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteForm(ctx, first.ID))

	_, err = svc.CreateForm(ctx, CreateFormRequest{Name: "B", Code: "ROLES"})
	assert.NoError(t, err)
}

func TestUpdateFormPartial(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateForm(ctx, CreateFormRequest{
		Name: "Reportes",
		Code: "REPORTES",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateForm(ctx, created.ID, UpdateFormRequest{
		Active: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Reportes", updated.Name)
	assert.Equal(t, "REPORTES", updated.Code)
	assert.False(t, updated.Active)
}

func TestGetFormInvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.GetForm(context.Background(), 0)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAssignFormToMissingModule(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	form, err := svc.CreateForm(ctx, CreateFormRequest{Name: "A", Code: "A"})
	require.NoError(t, err)

	_, err = svc.AssignFormToModule(ctx, AssignFormRequest{
		FormID:   form.ID,
		ModuleID: 999,
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFormsInModuleRoundTrip(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	module, err := svc.CreateModule(ctx, CreateModuleRequest{Code: "seguridad"})
	require.NoError(t, err)
	assert.Equal(t, "SEGURIDAD", module.Code)

	form, err := svc.CreateForm(ctx, CreateFormRequest{
		Name: "Usuarios",
		Code: "USUARIOS",
	})
	require.NoError(t, err)

	link, err := svc.AssignFormToModule(ctx, AssignFormRequest{
		FormID:   form.ID,
		ModuleID: module.ID,
	})
	require.NoError(t, err)

	forms, err := svc.FormsInModule(ctx, module.ID)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "USUARIOS", forms[0].Code)

	require.NoError(t, svc.RemoveFormFromModule(ctx, link.ID))

	forms, err = svc.FormsInModule(ctx, module.ID)
	require.NoError(t, err)
	assert.Empty(t, forms)
}
