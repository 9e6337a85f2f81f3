package domain

import "time"

// Tool pricing models
const (
	PricingFree     = "free"
	PricingFreemium = "freemium"
	PricingPaid     = "paid"
)

// Tool is a cataloged AI tool. UpvotesCount is denormalized from
// tool_upvotes rows, maintained with the same edge-plus-atomic-counter
// transaction as follows.
type Tool struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	ID           string `gorm:"column:id;primaryKey;size:36" json:"id"`
	Slug         string `gorm:"column:slug;uniqueIndex;size:80" json:"slug"`
	Name         string `gorm:"column:name" json:"name"`
	Category     string `gorm:"column:category;size:40;index" json:"category"`
	Pricing      string `gorm:"column:pricing;size:16" json:"pricing"`
	URL          string `gorm:"column:url" json:"url"`
	Description  string `gorm:"column:description;type:text" json:"description"`
	SubmitterUID string `gorm:"column:submitter_uid;size:36;index" json:"submitter_uid"`

	UpvotesCount int `gorm:"column:upvotes_count;default:0" json:"upvotes_count"`
}

func (Tool) TableName() string {
	return "tools"
}

// ToolUpvote is one upvote edge
type ToolUpvote struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ToolID    string    `gorm:"column:tool_id;size:36;uniqueIndex:idx_tool_upvote" json:"tool_id"`
	VoterUID  string    `gorm:"column:voter_uid;size:36;uniqueIndex:idx_tool_upvote" json:"voter_uid"`
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (ToolUpvote) TableName() string {
	return "tool_upvotes"
}

// SubmitToolRequest is the tool submission request body
type SubmitToolRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Category    string `json:"category" binding:"required,min=1,max=40"`
	Pricing     string `json:"pricing" binding:"required,oneof=free freemium paid"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description" binding:"required,max=4000"`
}

// ToolResponse is a tool in API responses
type ToolResponse struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Pricing      string `json:"pricing"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	SubmitterUID string `json:"submitter_uid"`
	UpvotesCount int    `json:"upvotes_count"`
	Upvoted      bool   `json:"upvoted"`
	CreatedAt    string `json:"created_at"`
}

// ToResponse converts Tool to ToolResponse
func (t *Tool) ToResponse() *ToolResponse {
	return &ToolResponse{
		ID:           t.ID,
		Slug:         t.Slug,
		Name:         t.Name,
		Category:     t.Category,
		Pricing:      t.Pricing,
		URL:          t.URL,
		Description:  t.Description,
		SubmitterUID: t.SubmitterUID,
		UpvotesCount: t.UpvotesCount,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
