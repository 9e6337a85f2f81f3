package domain

import (
	"strings"
	"time"
)

// Conversation statuses. A conversation starts pending when the first
// message is sent and only the non-requester may move it on.
const (
	ConversationPending  = "pending"
	ConversationAccepted = "accepted"
	ConversationRejected = "rejected"
)

// Conversation is a pairwise thread. PairKey is the sorted "min:max" of
// the two participant uids with a unique index, so get-or-create is a
// single conditional insert and at most one conversation can ever exist
// per unordered pair.
type Conversation struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	ID          string `gorm:"column:id;primaryKey;size:36" json:"id"`
	PairKey     string `gorm:"column:pair_key;uniqueIndex;size:80" json:"-"`
	UserAUID    string `gorm:"column:user_a_uid;size:36;index" json:"user_a_uid"`
	UserBUID    string `gorm:"column:user_b_uid;size:36;index" json:"user_b_uid"`
	Status      string `gorm:"column:status;size:16;default:''" json:"status,omitempty"`
	RequesterID string `gorm:"column:requester_uid;size:36" json:"requester_uid,omitempty"`

	LastMessageText   string     `gorm:"column:last_message_text;type:text" json:"last_message_text,omitempty"`
	LastMessageSender string     `gorm:"column:last_message_sender;size:36" json:"last_message_sender,omitempty"`
	LastMessageAt     *time.Time `gorm:"column:last_message_at" json:"last_message_at,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// HasParticipant reports whether uid is one of the two participants
func (c *Conversation) HasParticipant(uid string) bool {
	return c.UserAUID == uid || c.UserBUID == uid
}

// Counterpart returns the other participant's uid
func (c *Conversation) Counterpart(uid string) string {
	if c.UserAUID == uid {
		return c.UserBUID
	}
	return c.UserAUID
}

// PairKey builds the deterministic unordered-pair key for two uids
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}

// RespondRequest is the accept/reject request body
type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// MessagePreview is the derived per-conversation summary for a viewer.
// Never persisted; recomputed from conversations and messages on demand.
type MessagePreview struct {
	ConversationID string `json:"conversation_id"`
	Status         string `json:"status"`
	IsRequester    bool   `json:"is_requester"`
	UnreadCount    int64  `json:"unread_count"`

	CounterpartUID    string `json:"counterpart_uid"`
	CounterpartHandle string `json:"counterpart_handle"`
	CounterpartName   string `json:"counterpart_name"`
	CounterpartAvatar string `json:"counterpart_avatar,omitempty"`

	LastMessageText string `json:"last_message_text,omitempty"`
	LastMessageAt   string `json:"last_message_at,omitempty"`
}

// NotificationSummary is the live unread/pending view for one creator.
// Always recomputed whole from the store; the latest recompute wins.
type NotificationSummary struct {
	UnreadConversationCount int64 `json:"unread_conversation_count"`
	TotalUnreadMessages     int64 `json:"total_unread_messages"`
	PendingRequestsCount    int64 `json:"pending_requests_count"`
}
