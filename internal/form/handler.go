// AngelaMos | 2026
// handler.go

package form

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
	r.Route("/forms", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListForms)
		r.Post("/", h.CreateForm)
		r.Get("/{formID}", h.GetForm)
		r.Put("/{formID}", h.UpdateForm)
		r.Delete("/{formID}", h.DeleteForm)
		r.Delete("/{formID}/purge", h.HardDeleteForm)
	})

	r.Route("/modules", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListModules)
		r.Post("/", h.CreateModule)
		r.Get("/{moduleID}", h.GetModule)
		r.Get("/{moduleID}/forms", h.FormsInModule)
		r.Put("/{moduleID}", h.UpdateModule)
		r.Delete("/{moduleID}", h.DeleteModule)
		r.Delete("/{moduleID}/purge", h.HardDeleteModule)
	})

	r.Route("/formmodules", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.AssignFormToModule)
		r.Delete("/{linkID}", h.RemoveFormFromModule)
	})
}

func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	form, err := h.service.CreateForm(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("form code"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToFormResponse(form))
}

func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "formID")
	if !ok {
		return
	}

	form, err := h.service.GetForm(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "form")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToFormResponse(form))
}

func (h *Handler) ListForms(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	forms, total, err := h.service.ListForms(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToFormResponseList(forms),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "formID")
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	form, err := h.service.UpdateForm(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "form")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("form code"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToFormResponse(form))
}

func (h *Handler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "formID")
	if !ok {
		return
	}

	if err := h.service.DeleteForm(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "form")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) HardDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "formID")
	if !ok {
		return
	}

	if err := h.service.HardDeleteForm(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "form")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var req CreateModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	module, err := h.service.CreateModule(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("module code"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToModuleResponse(module))
}

func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "moduleID")
	if !ok {
		return
	}

	module, err := h.service.GetModule(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "module")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToModuleResponse(module))
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	modules, total, err := h.service.ListModules(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToModuleResponseList(modules),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) FormsInModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "moduleID")
	if !ok {
		return
	}

	forms, err := h.service.FormsInModule(r.Context(), id)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToFormResponseList(forms))
}

func (h *Handler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "moduleID")
	if !ok {
		return
	}

	var req UpdateModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	module, err := h.service.UpdateModule(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "module")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("module code"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToModuleResponse(module))
}

func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "moduleID")
	if !ok {
		return
	}

	if err := h.service.DeleteModule(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "module")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) HardDeleteModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "moduleID")
	if !ok {
		return
	}

	if err := h.service.HardDeleteModule(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "module")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AssignFormToModule(w http.ResponseWriter, r *http.Request) {
	var req AssignFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	link, err := h.service.AssignFormToModule(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "form or module")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("assignment"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToFormModuleResponse(link))
}

func (h *Handler) RemoveFormFromModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "linkID")
	if !ok {
		return
	}

	if err := h.service.RemoveFormFromModule(r.Context(), id); err != nil {
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
