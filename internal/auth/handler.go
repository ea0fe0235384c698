package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// Handler wires the HTTP endpoints for login and token checking.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gate      *rbac.Gate
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate *rbac.Gate) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		gate:      gate,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/", h.handleCheck)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type checkRequest struct {
	Permissions []string `json:"permissions"`
	Token       string   `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validator.Struct(body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Error(w, http.StatusBadRequest, "Incorrect email or password", "")
			return
		}
		h.logger.Error("login failed", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, result)
}

// handleCheck verifies a token from the request body and confirms it covers
// every named permission. It is the same two-step check the gate middleware
// runs against the authorization header.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body checkRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	err := h.gate.CheckToken(r.Context(), body.Token, body.Permissions)
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusCreated, map[string]string{"message": "success"})
	case errors.Is(err, rbac.ErrPermissionDenied):
		httpx.Error(w, http.StatusUnauthorized, "user does not have permission", "")
	default:
		var tokenErr *rbac.TokenError
		if errors.As(err, &tokenErr) {
			httpx.Error(w, http.StatusUnauthorized, "user is not authorized", tokenErr.Error())
			return
		}
		h.logger.Error("token check failed", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "internal server error", "")
	}
}
