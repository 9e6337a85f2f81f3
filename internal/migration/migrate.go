package migration

import (
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/sortmyai/sortmyai-backend/internal/repository"
	"github.com/sortmyai/sortmyai-backend/internal/service"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables and seeds badge definitions.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Creator{},
		&domain.Follow{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Tool{},
		&domain.ToolUpvote{},
		&domain.PortfolioItem{},
		&domain.XPEvent{},
		&domain.Badge{},
		&domain.CreatorBadge{},
	); err != nil {
		return err
	}

	return seedBadges(db)
}

// seedBadges inserts the built-in badge definitions. Existing rows are
// left alone, so re-running is safe.
func seedBadges(db *gorm.DB) error {
	repo := repository.NewXPRepository(db)
	return repo.SeedBadges(service.DefaultBadges())
}
