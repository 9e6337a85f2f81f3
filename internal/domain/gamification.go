package domain

import "time"

// XP event reasons
const (
	XPReasonDailyLogin        = "daily_login"
	XPReasonToolSubmitted     = "tool_submitted"
	XPReasonPortfolioItem     = "portfolio_item"
	XPReasonFollowerMilestone = "follower_milestone"
)

// XPEvent is one append-only XP ledger entry. The creator row's xp/level
// columns are a cache of the ledger sum.
type XPEvent struct {
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatorUID string    `gorm:"column:creator_uid;size:36;index" json:"creator_uid"`
	Reason     string    `gorm:"column:reason;size:40" json:"reason"`
	RefID      string    `gorm:"column:ref_id;size:36" json:"ref_id,omitempty"`
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Amount     int       `gorm:"column:amount" json:"amount"`
}

func (XPEvent) TableName() string {
	return "xp_events"
}

// Badge is an earnable badge definition
type Badge struct {
	ID          string `gorm:"column:id;primaryKey;size:40" json:"id"`
	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Icon        string `gorm:"column:icon" json:"icon,omitempty"`
}

func (Badge) TableName() string {
	return "badges"
}

// CreatorBadge is one grant. The unique index makes grants idempotent.
type CreatorBadge struct {
	GrantedAt  time.Time `gorm:"column:granted_at;autoCreateTime" json:"granted_at"`
	CreatorUID string    `gorm:"column:creator_uid;size:36;uniqueIndex:idx_creator_badge" json:"creator_uid"`
	BadgeID    string    `gorm:"column:badge_id;size:40;uniqueIndex:idx_creator_badge" json:"badge_id"`
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

func (CreatorBadge) TableName() string {
	return "creator_badges"
}

// XPSummary is the progression view for one creator
type XPSummary struct {
	TotalXP       int `json:"total_xp"`
	CurrentLevel  int `json:"current_level"`
	NextLevel     int `json:"next_level"`
	NextLevelXP   int `json:"next_level_xp"`
	XPToNext      int `json:"xp_to_next"`
	Progress      int `json:"progress"` // percentage 0-100
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// BadgeResponse is a granted badge in API responses
type BadgeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	GrantedAt   string `json:"granted_at"`
}
