package server

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/application"
	applicationPostgres "github.com/frahmantamala/firedept-portal/internal/application/postgres"
	"github.com/frahmantamala/firedept-portal/internal/auth"
	"github.com/frahmantamala/firedept-portal/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/firedept-portal/internal/dashboard/postgres"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/inspection"
	inspectionPostgres "github.com/frahmantamala/firedept-portal/internal/inspection/postgres"
	"github.com/frahmantamala/firedept-portal/internal/noc"
	nocPostgres "github.com/frahmantamala/firedept-portal/internal/noc/postgres"
	"github.com/frahmantamala/firedept-portal/internal/transport"
	"github.com/frahmantamala/firedept-portal/internal/transport/rest"
	"github.com/frahmantamala/firedept-portal/internal/user"
	userPostgres "github.com/frahmantamala/firedept-portal/internal/user/postgres"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Dependencies holds the wired services and the router serving them.
type Dependencies struct {
	Config      *internal.Config
	DB          *gorm.DB
	Router      *chi.Mux
	Logger      *slog.Logger
	AuthService *auth.Service
	UserService *user.Service
}

// NewDependencies builds every repository, service and handler on top of an
// open database and registers the routes.
func NewDependencies(cfg *internal.Config, db *gorm.DB, logger *slog.Logger) (*Dependencies, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	reporting := sqlx.NewDb(sqlDB, database.SQLDriverName(cfg.Database.Driver))

	userService := user.NewService(userPostgres.NewUserRepository(db), logger)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.SessionSecret, cfg.Security.SessionDuration)
	authService := auth.NewService(userService, tokens, cfg.Security.BCryptCost, logger)
	applicationService := application.NewService(applicationPostgres.NewApplicationRepository(db), logger)
	inspectionService := inspection.NewService(inspectionPostgres.NewInspectionRepository(db), logger)
	nocService := noc.NewService(nocPostgres.NewNOCRepository(db), logger)
	dashboardService := dashboard.NewService(dashboardPostgres.NewDashboardRepository(reporting), logger)

	base := transport.NewBaseHandler(logger)
	handlers := rest.Handlers{
		Auth:        auth.NewHandler(base, authService, cfg.Security.CookieSecure),
		User:        user.NewHandler(base, userService),
		Application: application.NewHandler(base, applicationService),
		Inspection:  inspection.NewHandler(base, inspectionService),
		NOC:         noc.NewHandler(base, nocService),
		Dashboard:   dashboard.NewHandler(base, dashboardService),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, handlers, rest.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DatabaseName:   cfg.Database.Driver,
	}, logger)

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		Router:      router,
		Logger:      logger,
		AuthService: authService,
		UserService: userService,
	}, nil
}
