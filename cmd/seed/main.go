package main

import (
	"context"
	"os"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/logging"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	log.Info(ctx, "starting seed", "driver", cfg.DBDriver)

	gormDB, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	seeder := service.NewSeedService(
		repository.NewUserRepository(gormDB),
		repository.NewProjectRepository(gormDB),
		auth.NewArgon2Hasher(auth.DefaultPasswordParams()),
		log,
	)

	result, err := seeder.SeedDemo(ctx)
	if err != nil {
		return err
	}

	log.Info(ctx, "seed completed",
		"user_created", result.UserCreated,
		"projects_created", result.ProjectsCreated,
		"projects_skipped", result.ProjectsSkipped,
		"technologies_created", result.TechnologiesCreated,
	)
	return nil
}
