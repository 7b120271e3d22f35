package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/config"
	"github.com/oksasatya/go-hbnb/internal/container"
	"github.com/oksasatya/go-hbnb/internal/domain/entity"
	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	"github.com/oksasatya/go-hbnb/pkg/apperrors"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
)

// seed creates the bootstrap admin through the facade. Running it again
// against the same store is a no-op.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("seeding the memory store only lasts for this process")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer func() { _ = app.Close() }()

	// The seed runs with the authority of the system itself.
	system := policy.Caller{Role: policy.RoleAdmin}
	u, err := app.Facade.CreateUser(ctx, system, entity.UserInput{
		FirstName: cfg.AdminFirstName,
		LastName:  cfg.AdminLastName,
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		IsAdmin:   true,
	})
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		existing, gerr := app.Facade.GetUserByEmail(ctx, cfg.AdminEmail)
		if gerr != nil {
			log.Fatalf("failed to load existing admin: %v", gerr)
		}
		if !existing.IsAdmin {
			log.Fatalf("user %s exists but is not an admin", existing.Email)
		}
		helpers.LogInfo(logger, "admin already seeded", logrus.Fields{"id": existing.ID, "email": existing.Email})
	case err != nil:
		log.Fatalf("failed to seed admin: %v", err)
	default:
		helpers.LogInfo(logger, "seeded admin", logrus.Fields{"id": u.ID, "email": u.Email})
	}
}
