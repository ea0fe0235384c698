package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/full-stack-rbac/full-stack-rbac/internal/auth"
	"github.com/full-stack-rbac/full-stack-rbac/internal/observability"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
	"github.com/full-stack-rbac/full-stack-rbac/internal/roles"
	"github.com/full-stack-rbac/full-stack-rbac/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler            *auth.Handler
	UsersHandler           *users.Handler
	RolesHandler           *roles.Handler
	PermissionsHandler     *rbac.PermissionsHandler
	UserRolesHandler       *rbac.UserRolesHandler
	RolePermissionsHandler *rbac.RolePermissionsHandler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(g chi.Router) {
			params.AuthHandler.MountRoutes(g)
		})
		api.Route("/rbac", func(g chi.Router) {
			g.Route("/user", func(gr chi.Router) {
				params.UsersHandler.MountRoutes(gr)
			})
			g.Route("/role", func(gr chi.Router) {
				params.RolesHandler.MountRoutes(gr)
			})
			g.Route("/permission", func(gr chi.Router) {
				params.PermissionsHandler.MountRoutes(gr)
			})
			g.Route("/user-has-role", func(gr chi.Router) {
				params.UserRolesHandler.MountRoutes(gr)
			})
			g.Route("/role-has-permission", func(gr chi.Router) {
				params.RolePermissionsHandler.MountRoutes(gr)
			})
		})
	})

	return r
}
