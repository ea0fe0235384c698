package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
)

// PermissionsHandler wires the permission CRUD endpoints.
type PermissionsHandler struct {
	logger  *slog.Logger
	service *Service
	gate    *Gate
}

// NewPermissionsHandler builds a PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, service *Service, gate *Gate) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(PermSettingCreate)).Post("/", h.createPermission)
	r.With(h.gate.Require(PermSettingRead)).Get("/", h.listPermissions)
	r.With(h.gate.Require(PermSettingUpdate)).Patch("/{id}", h.updatePermission)
	r.With(h.gate.Require(PermSettingDelete)).Delete("/{id}", h.deletePermission)
}

type permissionRequest struct {
	Name string `json:"name"`
}

func (h *PermissionsHandler) createPermission(w http.ResponseWriter, r *http.Request) {
	var body permissionRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	perm, err := h.service.CreatePermission(r.Context(), body.Name)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, perm)
}

func (h *PermissionsHandler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.ListPermissions(r.Context())
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	if perms == nil {
		perms = []Permission{}
	}
	httpx.JSON(w, http.StatusOK, perms)
}

func (h *PermissionsHandler) updatePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var body permissionRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	perm, err := h.service.UpdatePermission(r.Context(), id, body.Name)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, perm)
}

func (h *PermissionsHandler) deletePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := h.service.DeletePermission(r.Context(), id); err != nil {
		RespondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
