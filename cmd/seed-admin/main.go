// Command seed-admin creates the initial admin account when none exists.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD; the run is
// idempotent and leaves an existing account untouched.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/service"
	"github.com/ynov-backend/accounts-api/internal/infrastructure/config"
	mongostore "github.com/ynov-backend/accounts-api/internal/infrastructure/db/mongo"
	"github.com/ynov-backend/accounts-api/pkg/logger"
)

type seedConfig struct {
	Username string `env:"ADMIN_USERNAME, required"`
	Password string `env:"ADMIN_PASSWORD, required"`
	Name     string `env:"ADMIN_NAME,     default=Admin"`
	LastName string `env:"ADMIN_LASTNAME, default=User"`
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx := context.Background()

	var seed seedConfig
	if err := envconfig.Process(ctx, &seed); err != nil {
		log.Fatal().Err(err).Msg("failed to load admin credentials")
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongostore.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	if _, err := repo.FindByUsername(ctx, seed.Username); err == nil {
		log.Info().Str("username", seed.Username).Msg("admin user already exists")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("failed to check for existing admin")
	}

	hash, err := service.HashPassword(seed.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := &domain.User{
		Username:     seed.Username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Name:         seed.Name,
		LastName:     seed.LastName,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := repo.Insert(ctx, admin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}
	log.Info().Str("username", created.Username).Str("id", created.ID).Msg("admin user created")
}
