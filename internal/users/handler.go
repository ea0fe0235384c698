package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// Handler manages user management endpoints.
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

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.gate.Require(rbac.PermSettingCreate)).Post("/", h.createUser)
	r.With(h.gate.Require(rbac.PermSettingRead)).Get("/", h.listUsers)
	r.With(h.gate.Require(rbac.PermSettingUpdate)).Patch("/{id}", h.updateUser)
	r.With(h.gate.Require(rbac.PermSettingDelete)).Delete("/{id}", h.deleteUser)
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var body createUserRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	user, err := h.service.CreateUser(r.Context(), body.Email, body.Password)
	if err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	if users == nil {
		users = []User{}
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := rbac.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var body updateUserRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	user, err := h.service.UpdateUser(r.Context(), id, body.Email)
	if err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := rbac.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		rbac.RespondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
