// Command ledger_seed creates the default users against the configured PostgreSQL database.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/loan_ledger_app/internal/core/domain"
	"github.com/SscSPs/loan_ledger_app/internal/core/services"
	"github.com/SscSPs/loan_ledger_app/internal/dto"
	"github.com/SscSPs/loan_ledger_app/internal/platform/config"
	"github.com/SscSPs/loan_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/loan_ledger_app/pkg/database"
)

const defaultPassword = "@dmin123"

var defaultUsers = []dto.CreateUserRequest{
	{Username: "admin", Name: "Administrator", Role: domain.RoleBankPersonnel, IsAdmin: true},
	{Username: "borrower_1", Name: "Borrower 1", Role: domain.RoleBorrower},
	{Username: "borrower_2", Name: "Borrower 2", Role: domain.RoleBorrower},
	{Username: "borrower_3", Name: "Borrower 3", Role: domain.RoleBorrower},
	{Username: "provider_1", Name: "Provider 1", Role: domain.RoleProvider},
	{Username: "provider_2", Name: "Provider 2", Role: domain.RoleProvider},
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Error("Seeding requires STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userService := services.NewUserService(pgsql.NewRepositoryProvider(dbPool).UserRepo)
	for _, req := range defaultUsers {
		req.Password = defaultPassword
		user, err := userService.CreateUser(ctx, req)
		if err != nil {
			logger.Error("Failed to seed user", slog.String("username", req.Username), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Seeded user", slog.String("username", user.Username), slog.String("user_id", user.UserID))
	}
}
