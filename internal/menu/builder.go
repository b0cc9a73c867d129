// AngelaMos | 2026
// builder.go

package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/backoffice/internal/authz"
	"github.com/carterperez-dev/backoffice/internal/config"
	"github.com/carterperez-dev/backoffice/internal/core"
)

// Item is one navigation node. Children is always present in JSON, empty
// when the node is a leaf.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	URL      string `json:"url"`
	Active   bool   `json:"isActive"`
	Children []Item `json:"children"`
}

// PermissionSource is what the builder needs from the resolver.
type PermissionSource interface {
	ResolveRolePermissions(ctx context.Context, rolID int64) ([]authz.ResolvedPermission, error)
	IsAdministrator(ctx context.Context, rolID int64) (bool, error)
}

// Builder produces the navigation tree for a role. Administrator roles get
// a fixed template; everyone else gets Profile plus whatever their
// resolved read permissions allow. Icons, the profile entry, and the
// administrator template all come from configuration so new forms need no
// code changes.
type Builder struct {
	source PermissionSource
	cfg    config.MenuConfig
	logger *slog.Logger
}

func NewBuilder(
	source PermissionSource,
	cfg config.MenuConfig,
	logger *slog.Logger,
) *Builder {
	return &Builder{
		source: source,
		cfg:    cfg,
		logger: logger,
	}
}

// BuildMenu returns the ordered navigation items for the role.
//
// An administrator role is defined as "has access to everything", so its
// menu is the static template rather than anything derived from
// assignment rows. A non-administrator menu starts with Profile and then
// one item per resolved entry with the read flag set, in resolution
// order. The form's own active flag only affects how the item displays;
// read permission alone decides inclusion.
func (b *Builder) BuildMenu(ctx context.Context, rolID int64) ([]Item, error) {
	if rolID <= 0 {
		return nil, fmt.Errorf("build menu: %w", core.ErrInvalidInput)
	}

	isAdmin, err := b.source.IsAdministrator(ctx, rolID)
	if err != nil {
		return nil, fmt.Errorf("build menu: %w", err)
	}

	if isAdmin {
		b.logger.DebugContext(ctx, "serving administrator menu template",
			slog.Int64("rol_id", rolID),
		)
		return b.adminMenu(), nil
	}

	return b.roleMenu(ctx, rolID)
}

func (b *Builder) adminMenu() []Item {
	items := make([]Item, 0, len(b.cfg.AdminTemplate))
	for i, entry := range b.cfg.AdminTemplate {
		items = append(items, Item{
			ID:       int64(b.cfg.IDBase + i),
			Name:     entry.Name,
			Icon:     b.iconFor(entry.Code),
			URL:      "/" + strings.ToLower(entry.Code),
			Active:   true,
			Children: []Item{},
		})
	}
	return items
}

func (b *Builder) roleMenu(ctx context.Context, rolID int64) ([]Item, error) {
	nextID := int64(b.cfg.IDBase)

	items := []Item{{
		ID:       nextID,
		Name:     b.cfg.ProfileName,
		Icon:     b.iconFor(b.cfg.ProfileCode),
		URL:      "/" + strings.ToLower(b.cfg.ProfileCode),
		Active:   true,
		Children: []Item{},
	}}
	nextID++

	resolved, err := b.source.ResolveRolePermissions(ctx, rolID)
	if err != nil {
		return nil, fmt.Errorf("build menu: %w", err)
	}

	for _, entry := range resolved {
		if !entry.CanRead {
			continue
		}
		// Profile is already first; an explicit row for it would
		// duplicate the entry.
		if strings.EqualFold(entry.FormCode, b.cfg.ProfileCode) {
			continue
		}

		items = append(items, Item{
			ID:       nextID,
			Name:     entry.FormName,
			Icon:     b.iconFor(entry.FormCode),
			URL:      "/" + strings.ToLower(entry.FormCode),
			Active:   entry.FormActive,
			Children: []Item{},
		})
		nextID++
	}

	return items, nil
}

func (b *Builder) iconFor(code string) string {
	if icon, ok := b.cfg.Icons[strings.ToUpper(code)]; ok {
		return icon
	}
	return b.cfg.DefaultIcon
}
