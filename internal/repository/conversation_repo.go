package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepository conversation data access
type ConversationRepository interface {
	GetOrCreate(userA, userB string) (*domain.Conversation, error)
	FindByID(id string) (*domain.Conversation, error)
	ListForUser(uid string) ([]*domain.Conversation, error)
	UpdateStatus(id, status string) error
	CountPendingFor(uid string) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// GetOrCreate returns the conversation for the unordered pair, creating
// it if absent. The pair key's unique index makes this a conditional
// insert: two racing calls collide on the index and the loser re-reads.
func (r *conversationRepository) GetOrCreate(userA, userB string) (*domain.Conversation, error) {
	pairKey := domain.PairKey(userA, userB)

	var conv domain.Conversation
	err := r.db.Where("pair_key = ?", pairKey).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = domain.Conversation{
		ID:       uuid.New().String(),
		PairKey:  pairKey,
		UserAUID: userA,
		UserBUID: userB,
	}
	if err := r.db.Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			// Lost the race: the other side created it first
			var existing domain.Conversation
			if ferr := r.db.Where("pair_key = ?", pairKey).First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			return &existing, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) FindByID(id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// ListForUser returns all conversations the user participates in,
// most recently active first
func (r *conversationRepository) ListForUser(uid string) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	err := r.db.Where("user_a_uid = ? OR user_b_uid = ?", uid, uid).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *conversationRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountPendingFor counts conversation requests awaiting a decision from
// uid (pending and not initiated by uid)
func (r *conversationRepository) CountPendingFor(uid string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Conversation{}).
		Where("(user_a_uid = ? OR user_b_uid = ?) AND status = ? AND requester_uid <> ?",
			uid, uid, domain.ConversationPending, uid).
		Count(&count).Error
	return count, err
}
