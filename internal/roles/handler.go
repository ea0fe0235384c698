package roles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// Handler manages role management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gate      *rbac.Gate
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate *rbac.Gate) *Handler {
	return &Handler{logger: logger, service: service, gate: gate, validator: validator.New()}
}

// MountRoutes registers role routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(rbac.PermSettingCreate)).Post("/", h.createRole)
	r.With(h.gate.Require(rbac.PermSettingRead)).Get("/", h.listRoles)
	r.With(h.gate.Require(rbac.PermSettingUpdate)).Patch("/{id}", h.updateRole)
	r.With(h.gate.Require(rbac.PermSettingDelete)).Delete("/{id}", h.deleteRole)
}

type roleRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var body roleRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	role, err := h.service.CreateRole(r.Context(), body.Name)
	if err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, role)
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListRoles(r.Context())
	if err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []Role{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := rbac.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var body roleRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	role, err := h.service.UpdateRole(r.Context(), id, body.Name)
	if err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, role)
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := rbac.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := h.service.DeleteRole(r.Context(), id); err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
