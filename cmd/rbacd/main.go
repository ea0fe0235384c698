package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/full-stack-rbac/full-stack-rbac/internal/app"
	"github.com/full-stack-rbac/full-stack-rbac/internal/auth"
	"github.com/full-stack-rbac/full-stack-rbac/internal/observability"
	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/db"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
	"github.com/full-stack-rbac/full-stack-rbac/internal/roles"
	"github.com/full-stack-rbac/full-stack-rbac/internal/token"
	"github.com/full-stack-rbac/full-stack-rbac/internal/users"
	"github.com/full-stack-rbac/full-stack-rbac/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN, migrations.Files); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	codec := token.NewCodec(cfg.SecretKey)

	store := rbac.NewPGStore(pool)
	resolver := rbac.NewResolver(store)
	gate := rbac.NewGate(codec, resolver)
	rbacService := rbac.NewService(store)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, resolver, codec)
	authHandler := auth.NewHandler(logger, authService, gate)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, gate)

	rolesRepo := roles.NewRepository(pool)
	rolesService := roles.NewService(rolesRepo)
	rolesHandler := roles.NewHandler(logger, rolesService, gate)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:                 logger,
		Config:                 cfg,
		AuthHandler:            authHandler,
		UsersHandler:           usersHandler,
		RolesHandler:           rolesHandler,
		PermissionsHandler:     rbac.NewPermissionsHandler(logger, rbacService, gate),
		UserRolesHandler:       rbac.NewUserRolesHandler(logger, rbacService, gate),
		RolePermissionsHandler: rbac.NewRolePermissionsHandler(logger, rbacService, gate),
		Metrics:                metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
