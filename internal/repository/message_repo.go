package repository

import (
	"time"

	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"gorm.io/gorm"
)

// UnreadCount is the per-conversation unread tally for one viewer
type UnreadCount struct {
	ConversationID string `gorm:"column:conversation_id"`
	Count          int64  `gorm:"column:count"`
}

// MessageRepository message data access
type MessageRepository interface {
	Create(msg *domain.Message, firstMessage bool) error
	ListByConversation(conversationID string, page, limit int) ([]*domain.Message, int64, error)
	MarkConversationRead(conversationID, receiverUID string) (int64, error)
	UnreadByConversation(receiverUID string) ([]UnreadCount, error)
	TotalUnread(receiverUID string) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create appends the message and refreshes the conversation's lastMessage
// snapshot in one transaction. The first message of a fresh conversation
// also stamps pending status and the requester. The stamp is guarded by
// the status column itself: the caller's status read happens before the
// transaction, so two racing first sends both arrive with firstMessage
// set, and only the guard keeps the loser from overwriting the requester.
func (r *messageRepository) Create(msg *domain.Message, firstMessage bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&domain.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Updates(map[string]interface{}{
				"last_message_text":   msg.Content,
				"last_message_sender": msg.SenderUID,
				"last_message_at":     now,
				"updated_at":          now,
			}).Error; err != nil {
			return err
		}

		if firstMessage {
			return tx.Model(&domain.Conversation{}).
				Where("id = ? AND (status = '' OR status IS NULL)", msg.ConversationID).
				Updates(map[string]interface{}{
					"status":        domain.ConversationPending,
					"requester_uid": msg.SenderUID,
				}).Error
		}
		return nil
	})
}

// ListByConversation returns messages oldest first
func (r *messageRepository) ListByConversation(conversationID string, page, limit int) ([]*domain.Message, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var messages []*domain.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

// MarkConversationRead flips read on all messages addressed to the
// viewer in one conversation; returns how many were flipped
func (r *messageRepository) MarkConversationRead(conversationID, receiverUID string) (int64, error) {
	result := r.db.Model(&domain.Message{}).
		Where("conversation_id = ? AND receiver_uid = ? AND is_read = ?", conversationID, receiverUID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// UnreadByConversation returns unread counts grouped by conversation
func (r *messageRepository) UnreadByConversation(receiverUID string) ([]UnreadCount, error) {
	var counts []UnreadCount
	err := r.db.Model(&domain.Message{}).
		Select("conversation_id, COUNT(*) as count").
		Where("receiver_uid = ? AND is_read = ?", receiverUID, false).
		Group("conversation_id").
		Find(&counts).Error
	return counts, err
}

func (r *messageRepository) TotalUnread(receiverUID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Message{}).
		Where("receiver_uid = ? AND is_read = ?", receiverUID, false).
		Count(&count).Error
	return count, err
}
