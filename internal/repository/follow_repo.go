package repository

import (
	"errors"
	"strings"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// FollowRepository follow graph data access. Edge insert/delete and the
// two denormalized counters are updated in one transaction; the unique
// edge index turns concurrent duplicate follows into a constraint error
// instead of a lost-update race.
type FollowRepository interface {
	Create(followerUID, followeeUID string) error
	Delete(followerUID, followeeUID string) error
	Exists(followerUID, followeeUID string) (bool, error)
	ListFollowers(followeeUID string, page, limit int) ([]*domain.Creator, int64, error)
	ListFollowing(followerUID string, page, limit int) ([]*domain.Creator, int64, error)
	RecountCounters(uid string) (*domain.CounterRecount, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// decrementFloored decrements a counter column without going below zero.
// CASE WHEN instead of GREATEST so the expression also runs on SQLite.
func decrementFloored(column string) interface{} {
	return gorm.Expr("CASE WHEN " + column + " > 0 THEN " + column + " - 1 ELSE 0 END")
}

// Create inserts the edge and bumps both counters atomically
func (r *followRepository) Create(followerUID, followeeUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		edge := &domain.Follow{
			FollowerUID: followerUID,
			FolloweeUID: followeeUID,
		}
		if err := tx.Create(edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
				return common.ErrAlreadyFollowing
			}
			return err
		}

		if err := tx.Model(&domain.Creator{}).Where("uid = ?", followerUID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Creator{}).Where("uid = ?", followeeUID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// Delete removes the edge and lowers both counters atomically
func (r *followRepository) Delete(followerUID, followeeUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("follower_uid = ? AND followee_uid = ?", followerUID, followeeUID).
			Delete(&domain.Follow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFollowing
		}

		if err := tx.Model(&domain.Creator{}).Where("uid = ?", followerUID).
			UpdateColumn("following_count", decrementFloored("following_count")).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Creator{}).Where("uid = ?", followeeUID).
			UpdateColumn("followers_count", decrementFloored("followers_count")).Error
	})
}

func (r *followRepository) Exists(followerUID, followeeUID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Follow{}).
		Where("follower_uid = ? AND followee_uid = ?", followerUID, followeeUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowers returns creators following followeeUID, newest first
func (r *followRepository) ListFollowers(followeeUID string, page, limit int) ([]*domain.Creator, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Follow{}).
		Where("followee_uid = ?", followeeUID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var creators []*domain.Creator
	err := r.db.Model(&domain.Creator{}).
		Joins("JOIN follows ON follows.follower_uid = creators.uid").
		Where("follows.followee_uid = ?", followeeUID).
		Order("follows.id DESC").
		Offset(offset).Limit(limit).
		Find(&creators).Error
	return creators, total, err
}

// ListFollowing returns creators followed by followerUID, newest first
func (r *followRepository) ListFollowing(followerUID string, page, limit int) ([]*domain.Creator, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Follow{}).
		Where("follower_uid = ?", followerUID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var creators []*domain.Creator
	err := r.db.Model(&domain.Creator{}).
		Joins("JOIN follows ON follows.followee_uid = creators.uid").
		Where("follows.follower_uid = ?", followerUID).
		Order("follows.id DESC").
		Offset(offset).Limit(limit).
		Find(&creators).Error
	return creators, total, err
}

// RecountCounters recomputes both counters from the edge table. The
// counters are a cache; this is the idempotent reconciliation for drift
// left behind by partial failures.
func (r *followRepository) RecountCounters(uid string) (*domain.CounterRecount, error) {
	var recount domain.CounterRecount
	recount.UID = uid

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var creator domain.Creator
		if err := tx.Where("uid = ?", uid).First(&creator).Error; err != nil {
			return err
		}
		recount.FollowersBefore = creator.FollowersCount
		recount.FollowingBefore = creator.FollowingCount

		var followers, following int64
		if err := tx.Model(&domain.Follow{}).Where("followee_uid = ?", uid).Count(&followers).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Follow{}).Where("follower_uid = ?", uid).Count(&following).Error; err != nil {
			return err
		}

		recount.FollowersAfter = int(followers)
		recount.FollowingAfter = int(following)
		recount.Drifted = recount.FollowersBefore != recount.FollowersAfter ||
			recount.FollowingBefore != recount.FollowingAfter

		if !recount.Drifted {
			return nil
		}

		return tx.Model(&domain.Creator{}).Where("uid = ?", uid).
			UpdateColumns(map[string]interface{}{
				"followers_count": followers,
				"following_count": following,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &recount, nil
}

// isUniqueViolation catches duplicate-key errors from drivers that gorm
// does not translate (sqlite in tests, older mysql driver versions).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
