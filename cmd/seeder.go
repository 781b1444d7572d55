package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/frahmantamala/firedept-portal/internal"
	"github.com/frahmantamala/firedept-portal/internal/auth"
	"github.com/frahmantamala/firedept-portal/internal/database"
	"github.com/frahmantamala/firedept-portal/internal/server"
	"github.com/frahmantamala/firedept-portal/internal/user"
	"github.com/frahmantamala/firedept-portal/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedUsername string
	seedEmail    string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial administrator account",
	Long:  `Create the first admin account so applications can be reviewed. Existing accounts are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		if err := runSeed(context.Background(), cfg); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func runSeed(ctx context.Context, cfg *internal.Config) error {
	db, err := database.Open(cfg.Database, false)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if cfg.Database.Driver == internal.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	deps, err := server.NewDependencies(cfg, db, logger.LoggerWrapper())
	if err != nil {
		return fmt.Errorf("failed to wire services: %w", err)
	}

	if err := seedAdmin(ctx, deps.AuthService); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}

func seedAdmin(ctx context.Context, svc auth.ServiceAPI) error {
	u, err := svc.Register(ctx, auth.RegisterDTO{
		Username: seedUsername,
		Email:    seedEmail,
		Password: seedPassword,
		Role:     string(user.RoleAdmin),
	})
	if errors.Is(err, internal.ErrDuplicateUsername) || errors.Is(err, internal.ErrDuplicateEmail) {
		fmt.Println("admin account already exists:", seedUsername)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println("Seeded admin user:", u.Username)
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedUsername, "username", "admin", "admin username")
	seedCmd.Flags().StringVar(&seedEmail, "email", "admin@firedept.local", "admin email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "admin password")
	_ = seedCmd.MarkFlagRequired("password")
}
