package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/firedept-portal/internal/application"
	"github.com/frahmantamala/firedept-portal/internal/auth"
	"github.com/frahmantamala/firedept-portal/internal/dashboard"
	"github.com/frahmantamala/firedept-portal/internal/inspection"
	"github.com/frahmantamala/firedept-portal/internal/noc"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/transport/middleware"
	"github.com/frahmantamala/firedept-portal/internal/transport/swagger"
	"github.com/frahmantamala/firedept-portal/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Application *application.Handler
	Inspection  *inspection.Handler
	NOC         *noc.Handler
	Dashboard   *dashboard.Handler
}

type RouterConfig struct {
	AllowedOrigins string
	// DatabaseName labels the database component in health reports.
	DatabaseName string
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, cfg RouterConfig, logger *slog.Logger) {
	base := transport.NewBaseHandler(logger)
	healthHandler := NewHealthHandler(db, cfg.DatabaseName)

	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.BodyLimit(base, middleware.MaxRequestBody))
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware(base))

	router.Get(swagger.SpecPath, swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/applications", func(ar chi.Router) {
				ar.With(middleware.RequireRole(base, user.RoleApplicant)).Post("/", h.Application.SubmitApplication)
				ar.Get("/", h.Application.ListMyApplications)
				ar.Get("/{id}", h.Application.GetApplication)
			})

			pr.Route("/admin", func(adm chi.Router) {
				adm.Use(middleware.RequireAdmin(base))

				adm.Get("/applications", h.Application.ListApplications)
				adm.Patch("/applications/{id}/status", h.Application.UpdateStatus)

				adm.Get("/inspections", h.Inspection.ListInspections)
				adm.Post("/inspections", h.Inspection.ScheduleInspection)

				adm.Get("/nocs", h.NOC.ListNOCs)
				adm.Post("/nocs", h.NOC.IssueNOC)

				adm.Get("/dashboard", h.Dashboard.GetSummary)
			})
		})
	})
}
