// AngelaMos | 2026
// handler.go

package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type Handler struct {
	builder *Builder
}

func NewHandler(builder *Builder) *Handler {
	return &Handler{builder: builder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/menu/byrol/{rolID}", h.MenuByRol)
}

func (h *Handler) MenuByRol(w http.ResponseWriter, r *http.Request) {
	rolID, err := strconv.ParseInt(chi.URLParam(r, "rolID"), 10, 64)
	if err != nil || rolID <= 0 {
		core.BadRequest(w, "rolID must be a positive integer")
		return
	}

	items, err := h.builder.BuildMenu(r.Context(), rolID)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "rolID must be a positive integer")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}
