// Command seed prepares a database with the default admin, the share link setting and sample invitations.
// It is safe to run repeatedly.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"invitationgallery/config"
	"invitationgallery/internal/adapters/auth"
	"invitationgallery/internal/repository/postgres"
	"invitationgallery/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()

	if err := postgres.Migrate(cfg.DBUrl); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	seeder := &services.Seeder{
		Users:       postgres.NewAdminUserRepository(db),
		Settings:    postgres.NewSettingRepository(db),
		Invitations: postgres.NewInvitationRepository(db),
		Hasher:      auth.NewBcryptHasher(auth.DefaultBcryptCost),
		Logger:      logger,
	}
	if err := seeder.Run(ctx); err != nil {
		logger.Error("seeding failed", "err", err)
		os.Exit(1)
	}
	logger.Info("database seeded")
}
