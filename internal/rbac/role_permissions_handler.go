package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
)

// RolePermissionsHandler wires the role-has-permission link endpoints.
type RolePermissionsHandler struct {
	logger  *slog.Logger
	service *Service
	gate    *Gate
}

// NewRolePermissionsHandler builds a RolePermissionsHandler instance.
func NewRolePermissionsHandler(logger *slog.Logger, service *Service, gate *Gate) *RolePermissionsHandler {
	return &RolePermissionsHandler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers role-permission link routes.
func (h *RolePermissionsHandler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(PermSettingCreate)).Post("/", h.createLink)
	r.With(h.gate.Require(PermSettingRead)).Get("/{id}", h.listPermissionsOfRole)
	r.With(h.gate.Require(PermSettingUpdate)).Patch("/{id}", h.updateLink)
	r.With(h.gate.Require(PermSettingDelete)).Delete("/{role_id}/{permission_id}", h.deleteLink)
}

type rolePermissionRequest struct {
	RoleID       uuid.UUID `json:"role_id"`
	PermissionID uuid.UUID `json:"permission_id"`
}

type rolePermissionUpdateRequest struct {
	OldPermissionID uuid.UUID `json:"old_permission_id"`
	NewPermissionID uuid.UUID `json:"new_permission_id"`
}

func (h *RolePermissionsHandler) createLink(w http.ResponseWriter, r *http.Request) {
	var body rolePermissionRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	link, err := h.service.CreateRolePermission(r.Context(), body.RoleID, body.PermissionID)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, link)
}

func (h *RolePermissionsHandler) listPermissionsOfRole(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	perms, err := h.service.PermissionsOfRole(r.Context(), id)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	if perms == nil {
		perms = []Permission{}
	}
	httpx.JSON(w, http.StatusOK, perms)
}

func (h *RolePermissionsHandler) updateLink(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var body rolePermissionUpdateRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	link, err := h.service.UpdateRolePermission(r.Context(), id, body.OldPermissionID, body.NewPermissionID)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, link)
}

func (h *RolePermissionsHandler) deleteLink(w http.ResponseWriter, r *http.Request) {
	roleID, ok := ParseID(w, chi.URLParam(r, "role_id"))
	if !ok {
		return
	}
	permissionID, ok := ParseID(w, chi.URLParam(r, "permission_id"))
	if !ok {
		return
	}
	if err := h.service.DeleteRolePermission(r.Context(), roleID, permissionID); err != nil {
		RespondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
