package database

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/firedept-portal/internal"
	applicationDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/application"
	inspectionDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/inspection"
	nocDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/noc"
	userDatamodel "github.com/frahmantamala/firedept-portal/internal/core/datamodel/user"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLDriverName returns the database/sql driver name backing the gorm
// dialector for the configured store.
func SQLDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// Open connects to the configured store and applies pool settings.
func Open(cfg internal.DatabaseConfig, sqlDebug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.GetDSN())
	case internal.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.GetDSN()))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig(sqlDebug))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.Driver == internal.DriverSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenInMemory returns a private in-memory SQLite database with the schema
// already migrated. The pool is pinned to one connection so every query
// sees the same database.
func OpenInMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), gormConfig(false))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates the schema from the datamodel structs. Postgres
// deployments use the goose migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userDatamodel.User{},
		&applicationDatamodel.Application{},
		&inspectionDatamodel.Inspection{},
		&nocDatamodel.NOC{},
	)
}

func gormConfig(sqlDebug bool) *gorm.Config {
	level := logger.Silent
	if sqlDebug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

func sqliteDSN(source string) string {
	source = strings.TrimPrefix(source, "sqlite:///")
	if strings.Contains(source, "_foreign_keys") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&_foreign_keys=1"
	}
	return source + "?_foreign_keys=1"
}
