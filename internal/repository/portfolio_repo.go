package repository

import (
	"errors"

	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// PortfolioRepository portfolio item data access
type PortfolioRepository interface {
	Create(item *domain.PortfolioItem) error
	FindByID(id string) (*domain.PortfolioItem, error)
	ListByCreator(creatorUID string, page, limit int) ([]*domain.PortfolioItem, int64, error)
	Update(item *domain.PortfolioItem) error
	Delete(id, creatorUID string) error
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(item *domain.PortfolioItem) error {
	return r.db.Create(item).Error
}

func (r *portfolioRepository) FindByID(id string) (*domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *portfolioRepository) ListByCreator(creatorUID string, page, limit int) ([]*domain.PortfolioItem, int64, error) {
	var total int64
	if err := r.db.Model(&domain.PortfolioItem{}).
		Where("creator_uid = ?", creatorUID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var items []*domain.PortfolioItem
	err := r.db.Where("creator_uid = ?", creatorUID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *portfolioRepository) Update(item *domain.PortfolioItem) error {
	return r.db.Save(item).Error
}

// Delete removes an item; ownership enforced by the creator_uid filter
func (r *portfolioRepository) Delete(id, creatorUID string) error {
	result := r.db.Where("id = ? AND creator_uid = ?", id, creatorUID).
		Delete(&domain.PortfolioItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
