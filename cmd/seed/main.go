package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/rewearhq/rewear-backend/config"
	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	pginfra "github.com/rewearhq/rewear-backend/internal/infrastructure/postgres"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
)

// Seeds the administrator account. Idempotent: exits cleanly when the
// account already exists.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)

	existing, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil && !errors.Is(err, errs.ErrUserNotFound) {
		log.Fatalf("lookup failed: %v", err)
	}
	if existing != nil {
		log.Printf("administrator %s already exists, nothing to do", cfg.AdminEmail)
		return
	}

	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}

	admin := &entity.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Points:       cfg.StartingPoints,
		Role:         entity.RoleAdministrator,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create failed: %v", err)
	}
	log.Printf("administrator %s created (id=%s)", admin.Email, admin.ID)
}
