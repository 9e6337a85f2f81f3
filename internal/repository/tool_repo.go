package repository

import (
	"errors"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// ToolRepository tool catalog data access
type ToolRepository interface {
	Create(tool *domain.Tool) error
	FindByID(id string) (*domain.Tool, error)
	FindBySlug(slug string) (*domain.Tool, error)
	FindByIDs(ids []string) ([]*domain.Tool, error)
	List(category string, page, limit int) ([]*domain.Tool, int64, error)
	SearchLike(query string, page, limit int) ([]*domain.Tool, int64, error)
	AddUpvote(toolID, voterUID string) error
	RemoveUpvote(toolID, voterUID string) error
	HasUpvoted(toolID, voterUID string) (bool, error)
}

type toolRepository struct {
	db *gorm.DB
}

// NewToolRepository creates a new ToolRepository
func NewToolRepository(db *gorm.DB) ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(tool *domain.Tool) error {
	return r.db.Create(tool).Error
}

func (r *toolRepository) FindByID(id string) (*domain.Tool, error) {
	var tool domain.Tool
	err := r.db.Where("id = ?", id).First(&tool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

func (r *toolRepository) FindBySlug(slug string) (*domain.Tool, error) {
	var tool domain.Tool
	err := r.db.Where("slug = ?", slug).First(&tool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tool, nil
}

func (r *toolRepository) FindByIDs(ids []string) ([]*domain.Tool, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tools []*domain.Tool
	err := r.db.Where("id IN ?", ids).Find(&tools).Error
	return tools, err
}

// List returns tools most-upvoted first, optionally filtered by category
func (r *toolRepository) List(category string, page, limit int) ([]*domain.Tool, int64, error) {
	query := r.db.Model(&domain.Tool{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var tools []*domain.Tool
	err := query.Order("upvotes_count DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&tools).Error
	return tools, total, err
}

// SearchLike is the database fallback when Elasticsearch is not configured
func (r *toolRepository) SearchLike(query string, page, limit int) ([]*domain.Tool, int64, error) {
	pattern := "%" + query + "%"
	q := r.db.Model(&domain.Tool{}).
		Where("name LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var tools []*domain.Tool
	err := q.Order("upvotes_count DESC").
		Offset(offset).Limit(limit).
		Find(&tools).Error
	return tools, total, err
}

// AddUpvote inserts the vote edge and increments upvotes_count in a transaction
func (r *toolRepository) AddUpvote(toolID, voterUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		vote := &domain.ToolUpvote{ToolID: toolID, VoterUID: voterUID}
		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
				return common.ErrAlreadyUpvoted
			}
			return err
		}

		return tx.Model(&domain.Tool{}).Where("id = ?", toolID).
			UpdateColumn("upvotes_count", gorm.Expr("upvotes_count + 1")).Error
	})
}

// RemoveUpvote deletes the vote edge and decrements upvotes_count in a transaction
func (r *toolRepository) RemoveUpvote(toolID, voterUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tool_id = ? AND voter_uid = ?", toolID, voterUID).
			Delete(&domain.ToolUpvote{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotUpvoted
		}

		return tx.Model(&domain.Tool{}).Where("id = ?", toolID).
			UpdateColumn("upvotes_count", decrementFloored("upvotes_count")).Error
	})
}

func (r *toolRepository) HasUpvoted(toolID, voterUID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ToolUpvote{}).
		Where("tool_id = ? AND voter_uid = ?", toolID, voterUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
