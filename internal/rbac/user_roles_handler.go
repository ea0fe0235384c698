package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
)

// UserRolesHandler wires the user-has-role link endpoints.
type UserRolesHandler struct {
	logger  *slog.Logger
	service *Service
	gate    *Gate
}

// NewUserRolesHandler builds a UserRolesHandler instance.
func NewUserRolesHandler(logger *slog.Logger, service *Service, gate *Gate) *UserRolesHandler {
	return &UserRolesHandler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers user-role link routes.
func (h *UserRolesHandler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(PermSettingCreate)).Post("/", h.createLink)
	r.With(h.gate.Require(PermSettingRead)).Get("/{id}", h.listRolesOfUser)
	r.With(h.gate.Require(PermSettingUpdate)).Patch("/{id}", h.updateLink)
	r.With(h.gate.Require(PermSettingDelete)).Delete("/{user_id}/{role_id}", h.deleteLink)
}

type userRoleRequest struct {
	UserID uuid.UUID `json:"user_id"`
	RoleID uuid.UUID `json:"role_id"`
}

type userRoleUpdateRequest struct {
	OldRoleID uuid.UUID `json:"old_role_id"`
	NewRoleID uuid.UUID `json:"new_role_id"`
}

func (h *UserRolesHandler) createLink(w http.ResponseWriter, r *http.Request) {
	var body userRoleRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	link, err := h.service.CreateUserRole(r.Context(), body.UserID, body.RoleID)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, link)
}

func (h *UserRolesHandler) listRolesOfUser(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	roles, err := h.service.RolesOfUser(r.Context(), id)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	if roles == nil {
		roles = []Role{}
	}
	httpx.JSON(w, http.StatusOK, roles)
}

func (h *UserRolesHandler) updateLink(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var body userRoleUpdateRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	link, err := h.service.UpdateUserRole(r.Context(), id, body.OldRoleID, body.NewRoleID)
	if err != nil {
		RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, link)
}

func (h *UserRolesHandler) deleteLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseID(w, chi.URLParam(r, "user_id"))
	if !ok {
		return
	}
	roleID, ok := ParseID(w, chi.URLParam(r, "role_id"))
	if !ok {
		return
	}
	if err := h.service.DeleteUserRole(r.Context(), userID, roleID); err != nil {
		RespondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
