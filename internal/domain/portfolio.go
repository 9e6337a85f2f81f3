package domain

import "time"

// PortfolioItem is one media item in a creator's portfolio. MediaKey is
// an object-storage key; the blob itself lives in S3.
type PortfolioItem struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	ID          string `gorm:"column:id;primaryKey;size:36" json:"id"`
	CreatorUID  string `gorm:"column:creator_uid;size:36;index" json:"creator_uid"`
	Title       string `gorm:"column:title" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	MediaKey    string `gorm:"column:media_key" json:"media_key"`
	MediaType   string `gorm:"column:media_type;size:40" json:"media_type"`
	ToolID      string `gorm:"column:tool_id;size:36;index" json:"tool_id,omitempty"`
}

func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

// CreatePortfolioItemRequest is the add-item request body
type CreatePortfolioItemRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=160"`
	Description string `json:"description" binding:"omitempty,max=4000"`
	MediaKey    string `json:"media_key" binding:"required"`
	MediaType   string `json:"media_type" binding:"required,oneof=image video audio text"`
	ToolID      string `json:"tool_id,omitempty"`
}

// UpdatePortfolioItemRequest is the edit-item request body
type UpdatePortfolioItemRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=1,max=160"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=4000"`
}

// PortfolioItemResponse is an item in API responses
type PortfolioItemResponse struct {
	ID          string `json:"id"`
	CreatorUID  string `json:"creator_uid"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	MediaKey    string `json:"media_key"`
	MediaURL    string `json:"media_url,omitempty"`
	MediaType   string `json:"media_type"`
	ToolID      string `json:"tool_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ToResponse converts PortfolioItem to PortfolioItemResponse
func (p *PortfolioItem) ToResponse() *PortfolioItemResponse {
	return &PortfolioItemResponse{
		ID:          p.ID,
		CreatorUID:  p.CreatorUID,
		Title:       p.Title,
		Description: p.Description,
		MediaKey:    p.MediaKey,
		MediaType:   p.MediaType,
		ToolID:      p.ToolID,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
