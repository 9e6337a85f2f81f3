package repository

import (
	"errors"

	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// CreatorRepository creator account data access
type CreatorRepository interface {
	Create(creator *domain.Creator) error
	FindByUID(uid string) (*domain.Creator, error)
	FindByHandle(handle string) (*domain.Creator, error)
	FindByEmail(email string) (*domain.Creator, error)
	FindByUIDs(uids []string) ([]*domain.Creator, error)
	UpdateFields(uid string, fields map[string]interface{}) error
}

type creatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository creates a new CreatorRepository
func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) Create(creator *domain.Creator) error {
	return r.db.Create(creator).Error
}

func (r *creatorRepository) FindByUID(uid string) (*domain.Creator, error) {
	var creator domain.Creator
	err := r.db.Where("uid = ?", uid).First(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

func (r *creatorRepository) FindByHandle(handle string) (*domain.Creator, error) {
	var creator domain.Creator
	err := r.db.Where("handle = ?", handle).First(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

func (r *creatorRepository) FindByEmail(email string) (*domain.Creator, error) {
	var creator domain.Creator
	err := r.db.Where("email = ?", email).First(&creator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

// FindByUIDs batch-loads creators for preview fan-out
func (r *creatorRepository) FindByUIDs(uids []string) ([]*domain.Creator, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	var creators []*domain.Creator
	err := r.db.Where("uid IN ?", uids).Find(&creators).Error
	return creators, err
}

func (r *creatorRepository) UpdateFields(uid string, fields map[string]interface{}) error {
	result := r.db.Model(&domain.Creator{}).Where("uid = ?", uid).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
