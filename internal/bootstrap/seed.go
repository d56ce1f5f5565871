package bootstrap

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"provenance.com/innovationhub/internal/entity"
	categoryService "provenance.com/innovationhub/internal/modules/category/service"
	userService "provenance.com/innovationhub/internal/modules/user/service"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Suggestion{},
		&entity.Upvote{},
		&entity.Comment{},
	)
}

func SeedCategories(ctx context.Context, categories categoryService.CategoryService) error {
	result, err := categories.SeedDefaults(ctx)
	if err != nil {
		return err
	}

	slog.Info("default categories seeded",
		slog.Int("created", len(result.Created)),
		slog.Int("skipped", len(result.Skipped)),
	)
	return nil
}

// SeedAdminUser promotes the configured address to admin, creating the account if it has never signed in.
func SeedAdminUser(ctx context.Context, users userService.UserService, email string) error {
	if email == "" {
		slog.Info("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}

	admin, err := users.PromoteAdmin(ctx, email, "Administrator")
	if err != nil {
		return err
	}

	slog.Info("admin user ready", slog.String("user_id", admin.ID.String()))
	return nil
}
