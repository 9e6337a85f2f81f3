package repository

import (
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// XPRepository XP ledger and badge data access
type XPRepository interface {
	// AddXP appends a ledger entry and updates the cached xp/level columns
	// in one transaction
	AddXP(uid string, amount int, reason, refID string, newLevel int) (totalXP int, err error)
	TotalXP(uid string) (int, error)
	GetHistory(uid string, page, limit int) ([]domain.XPEvent, int64, error)
	HasEventToday(uid, reason string, dayStart string) (bool, error)

	GrantBadge(uid, badgeID string) (granted bool, err error)
	ListBadges(uid string) ([]domain.BadgeResponse, error)
	SeedBadges(badges []domain.Badge) error
}

type xpRepository struct {
	db *gorm.DB
}

// NewXPRepository creates a new XPRepository
func NewXPRepository(db *gorm.DB) XPRepository {
	return &xpRepository{db: db}
}

func (r *xpRepository) AddXP(uid string, amount int, reason, refID string, newLevel int) (int, error) {
	var total int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		event := &domain.XPEvent{
			CreatorUID: uid,
			Amount:     amount,
			Reason:     reason,
			RefID:      refID,
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Creator{}).Where("uid = ?", uid).
			UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error; err != nil {
			return err
		}

		if newLevel > 0 {
			if err := tx.Model(&domain.Creator{}).Where("uid = ? AND level < ?", uid, newLevel).
				UpdateColumn("level", newLevel).Error; err != nil {
				return err
			}
		}

		var creator domain.Creator
		if err := tx.Select("xp").Where("uid = ?", uid).First(&creator).Error; err != nil {
			return err
		}
		total = creator.XP
		return nil
	})
	return total, err
}

func (r *xpRepository) TotalXP(uid string) (int, error) {
	var creator domain.Creator
	if err := r.db.Select("xp").Where("uid = ?", uid).First(&creator).Error; err != nil {
		return 0, err
	}
	return creator.XP, nil
}

func (r *xpRepository) GetHistory(uid string, page, limit int) ([]domain.XPEvent, int64, error) {
	var total int64
	if err := r.db.Model(&domain.XPEvent{}).
		Where("creator_uid = ?", uid).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var events []domain.XPEvent
	err := r.db.Where("creator_uid = ?", uid).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, total, err
}

// HasEventToday checks for a ledger entry with the reason since dayStart
// (UTC midnight, "2006-01-02 15:04:05" format). Used to keep daily
// awards idempotent.
func (r *xpRepository) HasEventToday(uid, reason string, dayStart string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.XPEvent{}).
		Where("creator_uid = ? AND reason = ? AND created_at >= ?", uid, reason, dayStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantBadge inserts a grant; returns false without error when the
// creator already holds the badge
func (r *xpRepository) GrantBadge(uid, badgeID string) (bool, error) {
	grant := &domain.CreatorBadge{CreatorUID: uid, BadgeID: badgeID}
	if err := r.db.Create(grant).Error; err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *xpRepository) ListBadges(uid string) ([]domain.BadgeResponse, error) {
	var rows []struct {
		domain.Badge
		GrantedAt string `gorm:"column:granted_at"`
	}
	err := r.db.Model(&domain.CreatorBadge{}).
		Select("badges.id, badges.name, badges.description, badges.icon, creator_badges.granted_at").
		Joins("JOIN badges ON badges.id = creator_badges.badge_id").
		Where("creator_badges.creator_uid = ?", uid).
		Order("creator_badges.granted_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	badges := make([]domain.BadgeResponse, len(rows))
	for i, row := range rows {
		badges[i] = domain.BadgeResponse{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Icon:        row.Icon,
			GrantedAt:   row.GrantedAt,
		}
	}
	return badges, nil
}

// SeedBadges inserts badge definitions, skipping ones that already exist
func (r *xpRepository) SeedBadges(badges []domain.Badge) error {
	for i := range badges {
		if err := r.db.Where("id = ?", badges[i].ID).
			FirstOrCreate(&badges[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
