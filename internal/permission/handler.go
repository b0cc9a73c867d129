// AngelaMos | 2026
// handler.go

package permission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/backoffice/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/permissions", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListPermissions)
		r.Post("/", h.CreatePermission)
		r.Get("/{permissionID}", h.GetPermission)
		r.Put("/{permissionID}", h.UpdatePermission)
		r.Delete("/{permissionID}", h.DeletePermission)
		r.Delete("/{permissionID}/purge", h.HardDeletePermission)
	})

	r.Route("/rolformpermission", func(r chi.Router) {
		// Raw resolved rows for clients that build their own views
		// rather than consuming the menu.
		r.Get("/rol/{rolID}", h.AssignmentsByRol)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.AssignPermission)
			r.Get("/{assignmentID}", h.GetAssignment)
			r.Delete("/{assignmentID}", h.DeleteAssignment)
			r.Delete("/{assignmentID}/purge", h.HardDeleteAssignment)
		})
	})
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req CreatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	perm, err := h.service.CreatePermission(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPermissionResponse(perm))
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "permissionID")
	if !ok {
		return
	}

	perm, err := h.service.GetPermission(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "permission")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPermissionResponse(perm))
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	perms, total, err := h.service.ListPermissions(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToPermissionResponseList(perms),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "permissionID")
	if !ok {
		return
	}

	var req UpdatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	perm, err := h.service.UpdatePermission(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "permission")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPermissionResponse(perm))
}

func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "permissionID")
	if !ok {
		return
	}

	if err := h.service.DeletePermission(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "permission")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) HardDeletePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "permissionID")
	if !ok {
		return
	}

	if err := h.service.HardDeletePermission(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "permission")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AssignPermission(w http.ResponseWriter, r *http.Request) {
	var req AssignPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rfp, err := h.service.AssignPermission(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("role-form assignment"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToAssignmentResponse(rfp))
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "assignmentID")
	if !ok {
		return
	}

	rfp, err := h.service.GetAssignment(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "assignment")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(rfp))
}

func (h *Handler) AssignmentsByRol(w http.ResponseWriter, r *http.Request) {
	rolID, ok := parseID(w, r, "rolID")
	if !ok {
		return
	}

	details, err := h.service.AssignmentsByRol(r.Context(), rolID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, details)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "assignmentID")
	if !ok {
		return
	}

	if err := h.service.DeleteAssignment(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "assignment")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) HardDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "assignmentID")
	if !ok {
		return
	}

	if err := h.service.HardDeleteAssignment(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "assignment")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		core.BadRequest(w, key+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
