package domain

import "time"

// Message is one message row. Mutated only to flip Read; never deleted
// in the normal flow.
type Message struct {
	SentAt time.Time `gorm:"column:sent_at;autoCreateTime" json:"sent_at"`

	ID             string `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConversationID string `gorm:"column:conversation_id;size:36;index" json:"conversation_id"`
	SenderUID      string `gorm:"column:sender_uid;size:36;index" json:"sender_uid"`
	ReceiverUID    string `gorm:"column:receiver_uid;size:36;index" json:"receiver_uid"`
	Content        string `gorm:"column:content;type:text" json:"content"`
	AttachmentKey  string `gorm:"column:attachment_key" json:"attachment_key,omitempty"`

	Read bool `gorm:"column:is_read;default:false" json:"read"`
}

func (Message) TableName() string {
	return "messages"
}

// SendMessageRequest is the send-message request body
type SendMessageRequest struct {
	ToUID         string `json:"to_uid" binding:"required"`
	Content       string `json:"content" binding:"required,max=4000"`
	AttachmentKey string `json:"attachment_key,omitempty"`
}

// MessageResponse is a message in API responses
type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderUID      string `json:"sender_uid"`
	ReceiverUID    string `json:"receiver_uid"`
	Content        string `json:"content"`
	AttachmentKey  string `json:"attachment_key,omitempty"`
	AttachmentURL  string `json:"attachment_url,omitempty"`
	SentAt         string `json:"sent_at"`
	Read           bool   `json:"read"`
}

// ToResponse converts Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderUID:      m.SenderUID,
		ReceiverUID:    m.ReceiverUID,
		Content:        m.Content,
		AttachmentKey:  m.AttachmentKey,
		SentAt:         m.SentAt.Format(time.RFC3339),
		Read:           m.Read,
	}
}
